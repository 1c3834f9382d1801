package controllers

import (
	"net/http"
	"time"

	dbpkg "zenith/db"
	"zenith/models"

	"github.com/gin-gonic/gin"
)

type StressPulseRequest struct {
	Level int    `json:"level" form:"level"`
	Note  string `json:"note" form:"note"`
}

// POST /api/stress
func LogStressPulse(c *gin.Context) {
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

	var req StressPulseRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Level < 1 || req.Level > 10 {
		RespondError(c, "level must be between 1 and 10", http.StatusBadRequest)
		return
	}

	pulse := models.StressPulse{UserID: user.ID, Level: req.Level, Note: req.Note}
	if err := db.Create(&pulse).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondCreated(c, pulse)
}

type stressHeatmapRow struct {
	Day   string  `json:"day"`
	Avg   float64 `json:"avg"`
	Count int64   `json:"count"`
}

// GET /api/stress/heatmap?days=N
// Série diária de média e contagem de pulsos (inclui dias com 0).
func GetStressHeatmap(c *gin.Context) {
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

	days := clampInt(getQueryInt(c, "days", 28), 1, 365)
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).
		AddDate(0, 0, -(days - 1))

	var rows []stressHeatmapRow
	if err := db.Table("stress_pulses").
		Select(dayExpr(db)+" as day, avg(level) as avg, count(*) as count").
		Where("user_id = ? AND created_at >= ?", user.ID, from).
		Group("day").
		Order("day asc").
		Scan(&rows).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	// preenche dias sem registro
	byDay := map[string]stressHeatmapRow{}
	for _, r := range rows {
		byDay[r.Day] = r
	}
	series := make([]stressHeatmapRow, 0, days)
	for cur := from; !cur.After(now); cur = cur.AddDate(0, 0, 1) {
		key := cur.Format("2006-01-02")
		if r, ok := byDay[key]; ok {
			series = append(series, r)
		} else {
			series = append(series, stressHeatmapRow{Day: key})
		}
	}

	RespondSuccess(c, gin.H{
		"from":   from.Format("2006-01-02"),
		"to":     now.Format("2006-01-02"),
		"series": series,
	})
}
