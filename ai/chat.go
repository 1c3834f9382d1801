package ai

import (
	"context"
	"strings"

	"zenith/models"
	"zenith/tools"
)

// Chat envia uma mensagem do usuário para a thread da seção e devolve a
// resposta do assistant. A mensagem é redigida antes de sair; o contexto
// atual vai junto no mesmo payload. O lock do par garante que conversas
// concorrentes do mesmo (user, section) não se intercalam na thread.
func (s *Service) Chat(ctx context.Context, user models.User, section, message string) (string, error) {
	section = strings.ToLower(strings.TrimSpace(section))
	if !models.IsValidSection(section) {
		return "", ValidationError("invalid section")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ValidationError("message is required")
	}

	unlock := s.pairs.Lock(pairKey(user.ID, section))
	defer unlock()

	threadID, assistantID, err := s.ensureThread(ctx, user, section)
	if err != nil {
		return "", err
	}

	payload := tools.Redact(message)
	if current := tools.Redact(s.AssembleContext(user, section)); current != "" {
		payload = "[Context] " + current + "\n\n" + payload
	}

	return s.send(ctx, assistantID, threadID, payload)
}
