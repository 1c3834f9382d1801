package ai

import (
	"context"
	"log"
	"time"

	"zenith/models"
	"zenith/tools"
)

// getOrCreateAssistant devolve o assistant da seção, criando no vendor se
// necessário. O lock por seção garante que dois requests concorrentes não
// disparem duas criações; a linha do cache só é escrita depois que o vendor
// confirma o id.
func (s *Service) getOrCreateAssistant(ctx context.Context, section string) (string, error) {
	unlock := s.pairs.Lock("assistant:" + section)
	defer unlock()

	var binding models.AssistantBinding
	if err := s.db.Where("section = ?", section).First(&binding).Error; err == nil {
		return binding.AssistantID, nil
	}

	assistantID, err := s.dispatch.Call(ctx, func(ctx context.Context) (string, error) {
		return s.client.CreateAssistant(ctx, DisplayName(section), Instructions(section))
	})
	if err != nil {
		return "", err
	}

	binding = models.AssistantBinding{Section: section, AssistantID: assistantID}
	if err := s.db.Create(&binding).Error; err != nil {
		return "", err
	}

	log.Printf("ai cache: created assistant section=%s id=%s", section, assistantID)
	return assistantID, nil
}

// getOrCreateThread devolve (threadID, assistantID, initialized).
// Pressupõe o lock do par (user, section) já tomado pelo caller.
func (s *Service) getOrCreateThread(ctx context.Context, userID int64, section string) (string, string, bool, error) {
	assistantID, err := s.getOrCreateAssistant(ctx, section)
	if err != nil {
		return "", "", false, err
	}

	var binding models.ThreadBinding
	if err := s.db.Where("user_id = ? AND section = ?", userID, section).First(&binding).Error; err == nil {
		return binding.ThreadID, assistantID, binding.Initialized, nil
	}

	threadID, err := s.dispatch.Call(ctx, func(ctx context.Context) (string, error) {
		return s.client.CreateThread(ctx, assistantID)
	})
	if err != nil {
		return "", "", false, err
	}

	binding = models.ThreadBinding{UserID: userID, Section: section, ThreadID: threadID}
	if err := s.db.Create(&binding).Error; err != nil {
		return "", "", false, err
	}

	log.Printf("ai cache: created thread user=%d section=%s id=%s", userID, section, threadID)
	return threadID, assistantID, false, nil
}

// markThreadInitialized registra que o perfil já foi enviado à thread.
func (s *Service) markThreadInitialized(userID int64, section string) {
	_ = s.db.Model(&models.ThreadBinding{}).
		Where("user_id = ? AND section = ?", userID, section).
		Update("initialized", true).Error
}

// ResetThread descarta a thread do par (assistant fica) e limpa o brief
// cacheado. A próxima conversa ou brief cria uma thread nova.
func (s *Service) ResetThread(userID int64, section string) error {
	if !models.IsValidSection(section) {
		return ValidationError("invalid section")
	}

	unlock := s.pairs.Lock(pairKey(userID, section))
	defer unlock()

	tx := s.db.Begin()
	if err := tx.Where("user_id = ? AND section = ?", userID, section).
		Delete(models.ThreadBinding{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("user_id = ? AND section = ?", userID, section).
		Delete(models.BriefCache{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	log.Printf("ai cache: reset thread user=%d section=%s", userID, section)
	return nil
}

// InvalidateBrief apaga o brief cacheado do par. Chamado quando o survey
// muda (o contexto que gerou o brief ficou velho).
func (s *Service) InvalidateBrief(userID int64, section string) error {
	unlock := s.pairs.Lock(pairKey(userID, section))
	defer unlock()

	return s.db.Where("user_id = ? AND section = ?", userID, section).
		Delete(models.BriefCache{}).Error
}

// ensureThread garante thread criada e perfil enviado para o par.
// Em thread nova o perfil do usuário vai como primeira mensagem, uma vez só.
// Pressupõe o lock do par já tomado pelo caller.
func (s *Service) ensureThread(ctx context.Context, user models.User, section string) (string, string, error) {
	threadID, assistantID, initialized, err := s.getOrCreateThread(ctx, user.ID, section)
	if err != nil {
		return "", "", err
	}

	if !initialized {
		profile := tools.Redact(s.AssembleContext(user, section))
		if profile != "" {
			if _, err := s.send(ctx, assistantID, threadID,
				"[User Profile] "+profile+". Remember this about me for all our conversations."); err != nil {
				return "", "", err
			}
		}
		s.markThreadInitialized(user.ID, section)
	}
	return threadID, assistantID, nil
}

// send manda texto para a thread via dispatcher. O texto já deve estar
// redigido pelo caller.
func (s *Service) send(ctx context.Context, assistantID, threadID, content string) (string, error) {
	return s.dispatch.Call(ctx, func(ctx context.Context) (string, error) {
		return s.client.SendMessage(ctx, assistantID, threadID, content)
	})
}

func timePtr(t time.Time) *time.Time { return &t }
