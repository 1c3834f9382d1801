package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"zenith/ai"
	dbpkg "zenith/db"
	"zenith/models"

	"github.com/gin-gonic/gin"
)

// ParamSection lê e valida o :section da rota.
func ParamSection(c *gin.Context) (string, bool) {
	section := strings.ToLower(strings.TrimSpace(c.Param("section")))
	if !models.IsValidSection(section) {
		RespondError(c, "invalid section (use guardian, scholar or vitals)", http.StatusBadRequest)
		return "", false
	}
	return section, true
}

// GET /api/survey/:section
func GetSurvey(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	section, ok := ParamSection(c)
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var survey models.Survey
	if err := db.Where("user_id = ? AND section = ?", user.ID, section).
		First(&survey).Error; err != nil {
		RespondSuccess(c, gin.H{"section": section, "answers": gin.H{}})
		return
	}

	RespondSuccess(c, gin.H{"section": section, "answers": survey.AnswerMap()})
}

// PUT /api/survey/:section
// Body: objeto JSON livre com as respostas da seção.
// Salvar invalida o brief cacheado do par (o contexto mudou).
func SaveSurvey(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	section, ok := ParamSection(c)
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var answers map[string]any
	if err := c.BindJSON(&answers); err != nil {
		RespondError(c, "invalid answers payload", http.StatusBadRequest)
		return
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		RespondError(c, "invalid answers payload", http.StatusBadRequest)
		return
	}

	now := time.Now()
	var survey models.Survey
	if err := db.Where("user_id = ? AND section = ?", user.ID, section).
		First(&survey).Error; err == nil {
		survey.Answers = string(raw)
		survey.UpdatedAt = &now
		if err := db.Save(&survey).Error; err != nil {
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}
	} else {
		survey = models.Survey{UserID: user.ID, Section: section, Answers: string(raw)}
		if err := db.Create(&survey).Error; err != nil {
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	if svc := ai.ServiceInstance(c); svc != nil {
		if err := svc.InvalidateBrief(user.ID, section); err != nil {
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	RespondSuccess(c, gin.H{"section": section, "answers": answers})
}
