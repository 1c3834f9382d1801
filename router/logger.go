package router

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger loga método, rota, status e latência de cada request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s -> %d (%s) ip=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			time.Since(start), c.ClientIP())
	}
}
