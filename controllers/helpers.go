package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

func getQueryInt(c *gin.Context, name string, def int) int {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// dayExpr devolve a expressão SQL de "dia" conforme o dialeto.
func dayExpr(db *gorm.DB) string {
	dialect := strings.ToLower(db.Dialect().GetName())
	if strings.Contains(dialect, "postgres") {
		return "to_char(date_trunc('day', created_at), 'YYYY-MM-DD')"
	}
	// sqlite
	return "strftime('%Y-%m-%d', created_at, 'localtime')"
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
