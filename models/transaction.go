package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction é uma entrada do ledger de saldo, append-only.
// Criada apenas quando um PurchaseAttempt aprovado (ou warned confirmado)
// é executado; AttemptID referencia a tentativa de origem.
type Transaction struct {
	ID           int64           `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID       int64           `gorm:"not null;index" json:"user_id"`
	AttemptID    string          `gorm:"not null;size:36;index" json:"attempt_id"`
	Amount       decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	BalanceAfter decimal.Decimal `gorm:"type:numeric;not null" json:"balance_after"`
	CreatedAt    *time.Time      `json:"created_at"`
}
