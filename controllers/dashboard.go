package controllers

import (
	"net/http"
	"time"

	dbpkg "zenith/db"

	"github.com/gin-gonic/gin"
)

type spendingPerDayRow struct {
	Day   string `json:"day"`
	Total string `json:"total"`
	Count int64  `json:"count"`
}

// GET /api/dashboard/spending-per-day?days=N
// Série diária do total gasto (ledger) e número de compras executadas.
// Inclui dias com 0 para o front não ter que preencher buraco.
func GetSpendingPerDay(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	days := clampInt(getQueryInt(c, "days", 7), 1, 90)
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).
		AddDate(0, 0, -(days - 1))

	type rawRow struct {
		Day   string
		Total float64
		Count int64
	}
	var rows []rawRow
	if err := db.Table("transactions").
		Select(dayExpr(db)+" as day, sum(amount) as total, count(*) as count").
		Where("user_id = ? AND created_at >= ?", user.ID, from).
		Group("day").
		Order("day asc").
		Scan(&rows).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	byDay := map[string]rawRow{}
	for _, r := range rows {
		byDay[r.Day] = r
	}

	series := make([]spendingPerDayRow, 0, days)
	for cur := from; !cur.After(now); cur = cur.AddDate(0, 0, 1) {
		key := cur.Format("2006-01-02")
		row := spendingPerDayRow{Day: key, Total: "0.00"}
		if r, ok := byDay[key]; ok {
			row.Total = formatMoney(r.Total)
			row.Count = r.Count
		}
		series = append(series, row)
	}

	RespondSuccess(c, gin.H{
		"from":   from.Format("2006-01-02"),
		"to":     now.Format("2006-01-02"),
		"series": series,
	})
}
