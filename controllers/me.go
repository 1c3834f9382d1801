package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Me devolve o usuário autenticado (com saldo), útil para smoke tests.
func Me(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	user.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"balance": user.Balance.StringFixed(2),
	})
}
