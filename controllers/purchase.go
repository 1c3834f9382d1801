package controllers

import (
	"errors"
	"net/http"

	"zenith/ai"
	dbpkg "zenith/db"
	"zenith/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type EvaluatePurchaseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

// POST /api/purchases/evaluate
// Manda a intenção de compra para o Guardian e devolve o veredito.
func EvaluatePurchase(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	svc := ai.ServiceInstance(c)
	if svc == nil {
		RespondError(c, "ai service não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var req EvaluatePurchaseRequest
	if err := c.BindJSON(&req); err != nil {
		RespondError(c, "invalid purchase payload", http.StatusBadRequest)
		return
	}

	attempt, err := svc.EvaluatePurchase(c.Request.Context(), user, req.Description, req.Amount, req.Category)
	if err != nil {
		respondAIError(c, err)
		return
	}

	RespondSuccess(c, gin.H{
		"attempt_id": attempt.ID,
		"verdict":    attempt.Verdict,
		"rationale":  attempt.Rationale,
	})
}

// POST /api/purchases/:id/execute
// Comete uma tentativa aprovada/warned no ledger. Rejeições de negócio
// voltam tipadas: 402 saldo insuficiente, 409 já executada, 403 negada.
func ExecutePurchase(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	svc := ai.ServiceInstance(c)
	if svc == nil {
		RespondError(c, "ai service não configurado no contexto", http.StatusInternalServerError)
		return
	}

	attemptID := c.Param("id")
	if attemptID == "" {
		RespondError(c, "id é obrigatório", http.StatusBadRequest)
		return
	}

	newBalance, err := svc.ExecutePurchase(user.ID, attemptID)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrAttemptNotFound):
			RespondError(c, "attempt not found", http.StatusNotFound)
		case errors.Is(err, ai.ErrInsufficientFunds):
			c.JSON(http.StatusPaymentRequired, gin.H{"rejection": "insufficient-funds"})
		case errors.Is(err, ai.ErrAlreadyExecuted):
			c.JSON(http.StatusConflict, gin.H{"rejection": "already-executed"})
		case errors.Is(err, ai.ErrDeniedAttempt):
			c.JSON(http.StatusForbidden, gin.H{"rejection": "denied"})
		default:
			RespondError(c, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	RespondSuccess(c, gin.H{"new_balance": newBalance.StringFixed(2)})
}

// GET /api/purchases
func GetPurchases(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var attempts []models.PurchaseAttempt
	if err := db.Where("user_id = ?", user.ID).
		Order("created_at desc, id desc").
		Limit(100).
		Find(&attempts).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"purchases": attempts})
}

// respondAIError traduz os erros do núcleo de IA para HTTP:
// validação -> 400, IA indisponível -> 503 (retryable), resto -> 500.
func respondAIError(c *gin.Context, err error) {
	var validation ai.ValidationError
	switch {
	case errors.As(err, &validation):
		RespondError(c, validation.Error(), http.StatusBadRequest)
	case errors.Is(err, ai.ErrUnavailable):
		RespondError(c, "ai service unavailable, try again later", http.StatusServiceUnavailable)
	default:
		RespondError(c, err.Error(), http.StatusInternalServerError)
	}
}
