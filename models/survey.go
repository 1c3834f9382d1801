package models

import (
	"encoding/json"
	"strings"
	"time"
)

/************************************************
/**** MARK: AI SECTIONS ****/
/************************************************/
const SECTION_GUARDIAN = "guardian" // finance
const SECTION_SCHOLAR = "scholar"   // academic
const SECTION_VITALS = "vitals"     // health

func IsValidSection(section string) bool {
	switch strings.ToLower(strings.TrimSpace(section)) {
	case SECTION_GUARDIAN, SECTION_SCHOLAR, SECTION_VITALS:
		return true
	}
	return false
}

// Survey guarda as respostas de onboarding de um usuário para uma seção.
// Regra: um usuário só pode ter 1 Survey por seção (unique(user_id, section)).
type Survey struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID    int64      `gorm:"not null;index;unique_index:ux_user_survey" json:"user_id"`
	Section   string     `gorm:"not null;unique_index:ux_user_survey" json:"section"`
	Answers   string     `gorm:"type:text" json:"answers"` // JSON object (ex: {"name":"...","age_range":"..."})
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// AnswerMap decodes the Answers JSON. Returns an empty map on malformed data
// so callers can degrade to partial context instead of failing.
func (s Survey) AnswerMap() map[string]any {
	out := map[string]any{}
	raw := strings.TrimSpace(s.Answers)
	if raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return map[string]any{}
	}
	return out
}
