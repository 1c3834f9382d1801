package ai

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"zenith/models"
	"zenith/tools"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

// Avaliador de compras. Fluxo: valida -> monta prompt de decisão -> conversa
// com o Guardian -> grava a tentativa com o veredito. A execução (débito no
// ledger) é uma chamada separada e explícita.

// EvaluatePurchase valida a intenção de compra e pede o veredito à IA.
// Valor não-positivo ou descrição vazia nem chegam na IA (ValidationError).
// Se a IA falha, nenhuma tentativa é gravada.
func (s *Service) EvaluatePurchase(ctx context.Context, user models.User, description string, amount decimal.Decimal, category string) (*models.PurchaseAttempt, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ValidationError("description is required")
	}
	if !amount.IsPositive() {
		return nil, ValidationError("amount must be a positive number")
	}
	amount = amount.Round(2)
	category = strings.TrimSpace(category)

	redactedDesc := tools.Redact(description)

	unlock := s.pairs.Lock(pairKey(user.ID, models.SECTION_GUARDIAN))
	defer unlock()

	threadID, assistantID, err := s.ensureThread(ctx, user, models.SECTION_GUARDIAN)
	if err != nil {
		return nil, err
	}

	prompt := decisionPrompt(redactedDesc, amount, category,
		tools.Redact(s.AssembleContext(user, models.SECTION_GUARDIAN)))

	reply, err := s.send(ctx, assistantID, threadID, prompt)
	if err != nil {
		return nil, err
	}

	verdict, rationale := parseVerdict(reply)

	attempt := &models.PurchaseAttempt{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Description: redactedDesc,
		Amount:      amount,
		Category:    category,
		Verdict:     verdict,
		Rationale:   tools.Redact(rationale),
	}
	if err := s.db.Create(attempt).Error; err != nil {
		return nil, err
	}

	log.Printf("evaluator: attempt=%s user=%d amount=%s verdict=%s",
		attempt.ID, user.ID, amount.StringFixed(2), verdict)
	return attempt, nil
}

func decisionPrompt(description string, amount decimal.Decimal, category, context string) string {
	var b strings.Builder
	b.WriteString("The user wants to make a purchase and asked you to judge it.\n")
	if context != "" {
		b.WriteString("[Context] " + context + "\n")
	}
	b.WriteString("Purchase: " + description + "\n")
	b.WriteString("Amount: $" + amount.StringFixed(2) + "\n")
	if category != "" {
		b.WriteString("Category: " + category + "\n")
	}
	b.WriteString("Reply with a single line 'VERDICT: APPROVED', 'VERDICT: DENIED' or ")
	b.WriteString("'VERDICT: WARNED', followed by a short rationale for the user.")
	return b.String()
}

var verdictTokens = map[string]string{
	"APPROVED": models.VERDICT_APPROVED,
	"DENIED":   models.VERDICT_DENIED,
	"WARNED":   models.VERDICT_WARNED,
}

// marcador que o prompt pede: "VERDICT: APPROVED" etc.
var verdictMarkerPattern = regexp.MustCompile(`(?i)\bVERDICT\b\s*[:\-]?\s*(APPROVED|DENIED|WARNED)\b`)

// parseVerdict extrai o veredito da resposta. O token logo após o marcador
// "VERDICT" manda; sem marcador, só vale um token que abre a resposta.
// Token solto no meio de prosa ("should not be approved...") não conta, e
// sem veredito claro o default é WARNED, nunca APPROVED: resposta ambígua
// não pode autorizar gasto sozinha.
func parseVerdict(reply string) (string, string) {
	rationale := strings.TrimSpace(reply)

	verdict := ""
	if m := verdictMarkerPattern.FindStringSubmatch(reply); m != nil {
		verdict = verdictTokens[strings.ToUpper(m[1])]
	} else {
		upper := strings.ToUpper(rationale)
		for token, v := range verdictTokens {
			if strings.HasPrefix(upper, token) {
				verdict = v
				break
			}
		}
	}
	if verdict == "" {
		return models.VERDICT_WARNED, rationale
	}

	// tira a linha "VERDICT: X" do rationale quando dá
	if lines := strings.SplitN(rationale, "\n", 2); len(lines) == 2 &&
		strings.Contains(strings.ToUpper(lines[0]), "VERDICT") {
		if rest := strings.TrimSpace(lines[1]); rest != "" {
			rationale = rest
		}
	}
	return verdict, rationale
}

// SetBalance grava o saldo direto (onboarding / ajuste manual), serializado
// com os débitos do execute pelo mesmo lock de usuário.
func (s *Service) SetBalance(userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, ValidationError("balance cannot be negative")
	}

	unlock := s.balances.Lock(userKey(userID))
	defer unlock()

	newBalance := amount.Round(2)
	if err := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("balance", newBalance).Error; err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

// ExecutePurchase comete uma tentativa aprovada (ou warned confirmada) no
// ledger: debita o saldo e grava a transação. Exatamente uma vez por
// tentativa; o lock por usuário + guarda de saldo no UPDATE impedem dois
// executes concorrentes de gastarem o mesmo saldo.
func (s *Service) ExecutePurchase(userID int64, attemptID string) (decimal.Decimal, error) {
	unlock := s.balances.Lock(userKey(userID))
	defer unlock()

	var attempt models.PurchaseAttempt
	if err := s.db.Where("id = ? AND user_id = ?", attemptID, userID).
		First(&attempt).Error; err != nil {
		return decimal.Zero, ErrAttemptNotFound
	}

	if !attempt.Executable() {
		return decimal.Zero, ErrDeniedAttempt
	}
	if attempt.Executed {
		return decimal.Zero, ErrAlreadyExecuted
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return decimal.Zero, err
	}
	if user.Balance.LessThan(attempt.Amount) {
		return decimal.Zero, ErrInsufficientFunds
	}

	tx := s.db.Begin()

	// flag executed: false -> true exatamente uma vez (lock otimista)
	res := tx.Model(&models.PurchaseAttempt{}).
		Where("id = ? AND executed = ?", attempt.ID, false).
		Update("executed", true)
	if res.Error != nil {
		tx.Rollback()
		return decimal.Zero, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return decimal.Zero, ErrAlreadyExecuted
	}

	// débito relativo com guarda de saldo no próprio UPDATE: escrita
	// concorrente de saldo nunca é sobrescrita com valor velho
	debit := tx.Model(&models.User{}).
		Where("id = ? AND balance >= ?", userID, attempt.Amount).
		Update("balance", gorm.Expr("balance - ?", attempt.Amount))
	if debit.Error != nil {
		tx.Rollback()
		return decimal.Zero, debit.Error
	}
	if debit.RowsAffected == 0 {
		tx.Rollback()
		return decimal.Zero, ErrInsufficientFunds
	}

	var debited models.User
	if err := tx.First(&debited, userID).Error; err != nil {
		tx.Rollback()
		return decimal.Zero, err
	}
	newBalance := debited.Balance.Round(2)

	now := time.Now()
	entry := models.Transaction{
		UserID:       userID,
		AttemptID:    attempt.ID,
		Amount:       attempt.Amount,
		BalanceAfter: newBalance,
		CreatedAt:    &now,
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return decimal.Zero, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return decimal.Zero, fmt.Errorf("commit execute: %w", err)
	}

	log.Printf("evaluator: executed attempt=%s user=%d new_balance=%s",
		attempt.ID, userID, newBalance.StringFixed(2))
	return newBalance, nil
}
