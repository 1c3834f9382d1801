package models

import "time"

// AssistantBinding mapeia uma seção para o assistant criado no vendor de IA.
// Assistants são compartilhados por seção (um "Zenith Guardian" para todos),
// então a chave é só a seção. Criado uma vez, imutável depois.
type AssistantBinding struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Section     string     `gorm:"not null;unique_index" json:"section"`
	AssistantID string     `gorm:"not null" json:"assistant_id"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// ThreadBinding mapeia (user, section) para a thread de conversa no vendor.
// Regra: no máximo 1 thread viva por (user_id, section); um reset apaga a
// linha e a próxima conversa cria uma thread nova.
// Initialized marca se o perfil do usuário já foi enviado como primeira
// mensagem da thread.
type ThreadBinding struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID      int64      `gorm:"not null;index;unique_index:ux_user_thread" json:"user_id"`
	Section     string     `gorm:"not null;unique_index:ux_user_thread" json:"section"`
	ThreadID    string     `gorm:"not null" json:"thread_id"`
	Initialized bool       `gorm:"not null;default:false" json:"initialized"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// BriefCache guarda o brief de boas-vindas gerado para (user, section).
// Invalidado por: mudança de survey, reset explícito. Nunca expira por tempo.
type BriefCache struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID      int64      `gorm:"not null;index;unique_index:ux_user_brief" json:"user_id"`
	Section     string     `gorm:"not null;unique_index:ux_user_brief" json:"section"`
	Content     string     `gorm:"type:text" json:"content"` // JSON {insights, example_questions}
	GeneratedAt *time.Time `json:"generated_at"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
