package db

import (
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

const ctxDBKey = "zenith_db"

// SetDBtoContext injeta a conexão gorm no contexto de cada request.
// Registre no setup do gin, antes das rotas.
func SetDBtoContext(database *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxDBKey, database)
		c.Next()
	}
}

// DBInstance recupera a conexão injetada; nil se o middleware não rodou.
func DBInstance(c *gin.Context) *gorm.DB {
	v, ok := c.Get(ctxDBKey)
	if !ok {
		return nil
	}
	conn, _ := v.(*gorm.DB)
	return conn
}
