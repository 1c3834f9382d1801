package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
