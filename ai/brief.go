package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"zenith/models"
	"zenith/tools"
)

// Brief é o resumo de boas-vindas de uma seção: insights numerados e
// perguntas de exemplo que o usuário pode fazer.
type Brief struct {
	Insights         []string `json:"insights"`
	ExampleQuestions []string `json:"example_questions"`
}

const briefInsights = 3
const briefQuestions = 2

// GetBrief devolve o brief do par (user, section), do cache se houver.
// Cache hit não faz chamada de IA. O cache só é invalidado por mudança de
// survey ou reset explícito, nunca por idade.
func (s *Service) GetBrief(ctx context.Context, user models.User, section string) (Brief, error) {
	section = strings.ToLower(strings.TrimSpace(section))
	if !models.IsValidSection(section) {
		return Brief{}, ValidationError("invalid section")
	}

	unlock := s.pairs.Lock(pairKey(user.ID, section))
	defer unlock()

	var cached models.BriefCache
	if err := s.db.Where("user_id = ? AND section = ?", user.ID, section).
		First(&cached).Error; err == nil {
		var brief Brief
		if err := json.Unmarshal([]byte(cached.Content), &brief); err == nil &&
			(len(brief.Insights) > 0 || len(brief.ExampleQuestions) > 0) {
			return brief, nil
		}
		// cache corrompido: regenera
	}

	threadID, assistantID, err := s.ensureThread(ctx, user, section)
	if err != nil {
		return Brief{}, err
	}

	prompt := briefPrompt(section, tools.Redact(s.AssembleContext(user, section)))
	reply, err := s.send(ctx, assistantID, threadID, prompt)
	if err != nil {
		return Brief{}, err
	}

	brief := parseBrief(reply)

	content, _ := json.Marshal(brief)
	now := time.Now()
	entry := models.BriefCache{
		UserID:      user.ID,
		Section:     section,
		Content:     string(content),
		GeneratedAt: timePtr(now),
	}
	// upsert manual: apaga entrada velha (se sobrou de um cache corrompido)
	tx := s.db.Begin()
	if err := tx.Where("user_id = ? AND section = ?", user.ID, section).
		Delete(models.BriefCache{}).Error; err != nil {
		tx.Rollback()
		return Brief{}, err
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return Brief{}, err
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return Brief{}, err
	}

	return brief, nil
}

func briefPrompt(section, context string) string {
	var b strings.Builder
	b.WriteString("Write a short welcome brief for this user.\n")
	if context != "" {
		b.WriteString("[Context] " + context + "\n")
	}
	b.WriteString(fmt.Sprintf("Give exactly %d numbered insights about their ", briefInsights))
	switch section {
	case models.SECTION_SCHOLAR:
		b.WriteString("study habits and learning goals")
	case models.SECTION_VITALS:
		b.WriteString("health habits and wellness goals")
	default:
		b.WriteString("financial situation and spending habits")
	}
	b.WriteString(fmt.Sprintf(", then exactly %d example questions they could ask you, ", briefQuestions))
	b.WriteString("each on its own numbered line ending with a question mark. ")
	b.WriteString("No other text.")
	return b.String()
}

// linha de lista: "1. foo", "2) foo" ou "- foo"
var listItemPattern = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*])\s+(.+)$`)

// parseBrief separa a resposta em insights e perguntas de exemplo.
// Tolerante a formatação: linhas de lista que terminam em "?" viram
// perguntas, o resto vira insight. Se nada parece lista, o texto inteiro
// vira um insight único (fail-safe, nunca erro).
func parseBrief(reply string) Brief {
	var brief Brief
	for _, line := range strings.Split(reply, "\n") {
		m := listItemPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		item := strings.TrimSpace(m[1])
		if item == "" {
			continue
		}
		if strings.HasSuffix(item, "?") {
			brief.ExampleQuestions = append(brief.ExampleQuestions, item)
		} else {
			brief.Insights = append(brief.Insights, item)
		}
	}

	if len(brief.Insights) == 0 && len(brief.ExampleQuestions) == 0 {
		raw := strings.TrimSpace(reply)
		if raw != "" {
			brief.Insights = []string{raw}
		}
	}
	return brief
}
