package models

import (
	"time"

	"github.com/shopspring/decimal"
)

/************************************************
/**** MARK: PURCHASE VERDICTS ****/
/************************************************/
const VERDICT_APPROVED = "approved"
const VERDICT_DENIED = "denied"
const VERDICT_WARNED = "warned"

// PurchaseAttempt representa uma intenção de compra avaliada pela IA.
// Depois que o veredito é gravado a linha é imutável, exceto a flag Executed
// (false -> true exatamente uma vez, via execute).
// Description e Rationale são persistidos já redigidos (sem PII).
type PurchaseAttempt struct {
	ID          string          `gorm:"primary_key;size:36" json:"id"`
	UserID      int64           `gorm:"not null;index" json:"user_id"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Category    string          `gorm:"default:''" json:"category"`
	Verdict     string          `gorm:"not null;index" json:"verdict"`
	Rationale   string          `gorm:"type:text" json:"rationale"`
	Executed    bool            `gorm:"not null;default:false" json:"executed"`
	CreatedAt   *time.Time      `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at"`
}

// Executable diz se o veredito permite execução (denied nunca executa).
func (p PurchaseAttempt) Executable() bool {
	return p.Verdict == VERDICT_APPROVED || p.Verdict == VERDICT_WARNED
}
