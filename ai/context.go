package ai

import (
	"fmt"
	"strings"

	"zenith/models"
	"zenith/tools"
)

// Montagem de contexto por chamada: survey da seção + saldo + últimas
// transações. Só leitura; campo ausente é pulado em vez de falhar o request.

func stringAnswer(answers map[string]any, key string) string {
	v, ok := answers[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func listAnswer(answers map[string]any, key string) string {
	v, ok := answers[key]
	if !ok {
		return ""
	}
	items, ok := v.([]any)
	if !ok {
		return ""
	}
	var parts []string
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return strings.Join(parts, ", ")
}

func appendPart(parts []string, label, value string) []string {
	if value == "" {
		return parts
	}
	return append(parts, label+": "+value)
}

// profileLine monta a linha "User: X | Age: Y | ..." com os campos relevantes
// da seção, no formato que o assistant recebe como memória de perfil.
// O nome é PII estrutural e o regex de redação não pega nome solto, então
// vai mascarado já na origem; o vendor nunca vê o nome real.
func profileLine(user models.User, section string, answers map[string]any) string {
	parts := []string{"User: " + tools.PLACEHOLDER_NAME}
	parts = appendPart(parts, "Age", stringAnswer(answers, "age_range"))
	parts = appendPart(parts, "Occupation", stringAnswer(answers, "occupation"))

	switch section {
	case models.SECTION_SCHOLAR:
		parts = appendPart(parts, "Education", stringAnswer(answers, "education_level"))
		parts = appendPart(parts, "Interests", listAnswer(answers, "subjects"))
		parts = appendPart(parts, "Learning style", stringAnswer(answers, "learning_style"))
		parts = appendPart(parts, "Study goals", listAnswer(answers, "study_goals"))

	case models.SECTION_GUARDIAN:
		parts = appendPart(parts, "Spending profile", stringAnswer(answers, "spending_profile"))
		parts = appendPart(parts, "Income", stringAnswer(answers, "income_range"))
		parts = appendPart(parts, "Savings", stringAnswer(answers, "savings"))
		parts = appendPart(parts, "Financial goals", listAnswer(answers, "financial_goals"))
		parts = append(parts, "Balance: $"+user.Balance.StringFixed(2))

	case models.SECTION_VITALS:
		parts = appendPart(parts, "Exercise", stringAnswer(answers, "exercise_frequency"))
		parts = appendPart(parts, "Sleep", stringAnswer(answers, "sleep_quality"))
		parts = appendPart(parts, "Diet", stringAnswer(answers, "diet_quality"))
		parts = appendPart(parts, "Health goals", listAnswer(answers, "health_goals"))
		parts = appendPart(parts, "Stress", stringAnswer(answers, "stress_level"))
	}

	return strings.Join(parts, " | ")
}

// AssembleContext junta perfil, saldo e atividade recente num payload único.
// Qualquer leitura que falhe só reduz o contexto; nunca devolve erro.
func (s *Service) AssembleContext(user models.User, section string) string {
	var answers map[string]any
	var survey models.Survey
	if err := s.db.Where("user_id = ? AND section = ?", user.ID, section).
		First(&survey).Error; err == nil {
		answers = survey.AnswerMap()
	} else {
		answers = map[string]any{}
	}

	var b strings.Builder
	b.WriteString(profileLine(user, section, answers))

	if section == models.SECTION_GUARDIAN {
		var recent []models.Transaction
		if err := s.db.Where("user_id = ?", user.ID).
			Order("created_at desc, id desc").
			Limit(s.recentTransactions).
			Find(&recent).Error; err == nil && len(recent) > 0 {
			b.WriteString("\nRecent purchases:")
			for _, tr := range recent {
				b.WriteString(fmt.Sprintf("\n- $%s (balance after: $%s)",
					tr.Amount.StringFixed(2), tr.BalanceAfter.StringFixed(2)))
			}
		}
	}

	if section == models.SECTION_VITALS {
		var pulses []models.StressPulse
		if err := s.db.Where("user_id = ?", user.ID).
			Order("created_at desc, id desc").
			Limit(s.recentTransactions).
			Find(&pulses).Error; err == nil && len(pulses) > 0 {
			sum := 0
			for _, p := range pulses {
				sum += p.Level
			}
			b.WriteString(fmt.Sprintf("\nRecent stress average: %.1f/10 (%d check-ins)",
				float64(sum)/float64(len(pulses)), len(pulses)))
		}
	}

	return b.String()
}
