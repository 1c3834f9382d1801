package models

import "time"

// StressPulse é um registro pontual de nível de estresse (1-10) do usuário.
// Alimenta o heatmap do dashboard e o contexto da seção vitals.
type StressPulse struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID    int64      `gorm:"not null;index" json:"user_id"`
	Level     int        `gorm:"not null" json:"level" form:"level"`
	Note      string     `gorm:"type:text" json:"note" form:"note"`
	CreatedAt *time.Time `gorm:"index" json:"created_at"`
}
