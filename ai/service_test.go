package ai

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	dbpkg "zenith/db"
	"zenith/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeClient implementa o contrato do vendor em memória para os testes do
// núcleo; conta chamadas e guarda tudo que foi enviado.
type fakeClient struct {
	mu             sync.Mutex
	assistantCalls int
	threadCalls    int
	sent           []string
	replies        []string // consumidas em ordem; vazio -> defaultReply
	defaultReply   string
	err            error
	delay          time.Duration
}

func (f *fakeClient) CreateAssistant(ctx context.Context, name, systemPrompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.assistantCalls++
	return fmt.Sprintf("asst-%d", f.assistantCalls), nil
}

func (f *fakeClient) CreateThread(ctx context.Context, assistantID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.threadCalls++
	return fmt.Sprintf("thread-%d", f.threadCalls), nil
}

func (f *fakeClient) SendMessage(ctx context.Context, assistantID, threadID, content string) (string, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, content)
	if len(f.replies) > 0 {
		reply := f.replies[0]
		f.replies = f.replies[1:]
		return reply, nil
	}
	if f.defaultReply != "" {
		return f.defaultReply, nil
	}
	return "ok", nil
}

func (f *fakeClient) sendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeClient) sentMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	copy(out, f.sent)
	return out
}

func newTestService(t *testing.T, client Client) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// uma conexão só, senão cada conexão do pool vê um :memory: diferente
	db.DB().SetMaxOpenConns(1)
	db.LogMode(false)
	dbpkg.AutoMigrate(db)
	t.Cleanup(func() { db.Close() })

	return NewService(db, client, NewDispatcher(4, 2*time.Second)), db
}

func createTestUser(t *testing.T, db *gorm.DB, balance string) models.User {
	t.Helper()

	amount, err := decimal.NewFromString(balance)
	require.NoError(t, err)

	user := models.User{
		Name:     "Test User",
		Email:    fmt.Sprintf("user%d@test.io", time.Now().UnixNano()),
		Password: "hashed",
		Balance:  amount,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}
