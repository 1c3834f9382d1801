package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// Client é o contrato com o vendor de IA. Exatamente três operações;
// qualquer vendor concreto (Backboard hoje) vira um adapter, e os testes
// usam um fake.
type Client interface {
	CreateAssistant(ctx context.Context, name, systemPrompt string) (string, error)
	CreateThread(ctx context.Context, assistantID string) (string, error)
	SendMessage(ctx context.Context, assistantID, threadID, content string) (string, error)
}

// Rejeições de negócio do execute. São resultado tipado, não falha:
// os controllers traduzem para 402/409/403 sem log de erro.
var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrAlreadyExecuted = errors.New("attempt already executed")
var ErrDeniedAttempt = errors.New("attempt was denied")
var ErrAttemptNotFound = errors.New("attempt not found")

// ValidationError é input malformado, rejeitado antes de qualquer chamada de IA.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// Service é o núcleo de IA: cache de assistant/thread, briefs, chat e o
// avaliador de compras. Todo estado mutável fica no banco; aqui só os locks.
type Service struct {
	db       *gorm.DB
	client   Client
	dispatch *Dispatcher

	// serializa criação/reset/conversa por (user, section)
	pairs *keyedMutex
	// serializa mutação de saldo por usuário
	balances *keyedMutex

	// quantas transações recentes entram no contexto
	recentTransactions int
}

func NewService(db *gorm.DB, client Client, dispatch *Dispatcher) *Service {
	return &Service{
		db:                 db,
		client:             client,
		dispatch:           dispatch,
		pairs:              newKeyedMutex(),
		balances:           newKeyedMutex(),
		recentTransactions: 5,
	}
}

func pairKey(userID int64, section string) string {
	return fmt.Sprintf("%d:%s", userID, section)
}

func userKey(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

const serviceKey = "ai_service"

// SetServiceToContext injeta o Service no contexto do gin (mesmo esquema do db).
func SetServiceToContext(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(serviceKey, svc)
		c.Next()
	}
}

func ServiceInstance(c *gin.Context) *Service {
	v, ok := c.Get(serviceKey)
	if !ok {
		return nil
	}
	svc, _ := v.(*Service)
	return svc
}
