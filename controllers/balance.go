package controllers

import (
	"net/http"

	"zenith/ai"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GET /api/balance
func GetBalance(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	RespondSuccess(c, gin.H{"balance": user.Balance.StringFixed(2)})
}

type SetBalanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
}

// PUT /api/balance
// Set direto do saldo (onboarding / ajuste manual), serializado com os
// débitos de compra pelo lock de saldo do usuário. Débitos de compra NÃO
// passam por aqui; só pelo execute do avaliador.
func SetBalance(c *gin.Context) {
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

	var req SetBalanceRequest
	if err := c.BindJSON(&req); err != nil {
		RespondError(c, "invalid balance payload", http.StatusBadRequest)
		return
	}

	newBalance, err := svc.SetBalance(user.ID, req.Balance)
	if err != nil {
		respondAIError(c, err)
		return
	}

	RespondSuccess(c, gin.H{"balance": newBalance.StringFixed(2)})
}
