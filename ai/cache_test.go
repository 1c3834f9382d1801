package ai

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"zenith/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentChatsCreateOneAssistantAndThread(t *testing.T) {
	client := &fakeClient{defaultReply: "hello there"}
	svc, db := newTestService(t, client)
	user := createTestUser(t, db, "50.00")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Chat(context.Background(), user, models.SECTION_GUARDIAN, "how am I doing?")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, client.assistantCalls)
	assert.Equal(t, 1, client.threadCalls)

	var assistants, threads int
	require.NoError(t, db.Model(&models.AssistantBinding{}).Count(&assistants).Error)
	require.NoError(t, db.Model(&models.ThreadBinding{}).Count(&threads).Error)
	assert.Equal(t, 1, assistants)
	assert.Equal(t, 1, threads)

	// perfil enviado uma única vez, e antes de qualquer mensagem
	sent := client.sentMessages()
	require.NotEmpty(t, sent)
	assert.Contains(t, sent[0], "[User Profile]")
	for _, msg := range sent[1:] {
		assert.NotContains(t, msg, "[User Profile]")
	}
}

func TestSectionsGetSeparateAssistants(t *testing.T) {
	client := &fakeClient{defaultReply: "hi"}
	svc, db := newTestService(t, client)
	user := createTestUser(t, db, "50.00")
	ctx := context.Background()

	_, err := svc.Chat(ctx, user, models.SECTION_GUARDIAN, "money question")
	require.NoError(t, err)
	_, err = svc.Chat(ctx, user, models.SECTION_VITALS, "health question")
	require.NoError(t, err)

	assert.Equal(t, 2, client.assistantCalls)
	assert.Equal(t, 2, client.threadCalls)
}

func TestVendorFailureWritesNoBinding(t *testing.T) {
	client := &fakeClient{err: errors.New("backboard down")}
	svc, db := newTestService(t, client)
	user := createTestUser(t, db, "50.00")

	_, err := svc.Chat(context.Background(), user, models.SECTION_GUARDIAN, "hello")
	assert.True(t, errors.Is(err, ErrUnavailable))

	var assistants, threads int
	require.NoError(t, db.Model(&models.AssistantBinding{}).Count(&assistants).Error)
	require.NoError(t, db.Model(&models.ThreadBinding{}).Count(&threads).Error)
	assert.Equal(t, 0, assistants)
	assert.Equal(t, 0, threads)
}

func TestResetThreadKeepsAssistant(t *testing.T) {
	client := &fakeClient{defaultReply: "hi"}
	svc, db := newTestService(t, client)
	user := createTestUser(t, db, "50.00")
	ctx := context.Background()

	_, err := svc.Chat(ctx, user, models.SECTION_GUARDIAN, "first")
	require.NoError(t, err)
	require.Equal(t, 1, client.threadCalls)

	require.NoError(t, svc.ResetThread(user.ID, models.SECTION_GUARDIAN))

	var threads int
	require.NoError(t, db.Model(&models.ThreadBinding{}).Count(&threads).Error)
	assert.Equal(t, 0, threads)

	_, err = svc.Chat(ctx, user, models.SECTION_GUARDIAN, "second")
	require.NoError(t, err)

	// thread nova, mesmo assistant
	assert.Equal(t, 2, client.threadCalls)
	assert.Equal(t, 1, client.assistantCalls)
}

func TestResetInvalidatesBriefCache(t *testing.T) {
	client := &fakeClient{defaultReply: "1. Insight one\n2. Insight two\n3. What should I save?"}
	svc, db := newTestService(t, client)
	user := createTestUser(t, db, "50.00")
	ctx := context.Background()

	_, err := svc.GetBrief(ctx, user, models.SECTION_GUARDIAN)
	require.NoError(t, err)
	callsAfterFirst := client.sendCount()
	require.True(t, callsAfterFirst > 0)

	// cache hit: nenhuma chamada nova
	_, err = svc.GetBrief(ctx, user, models.SECTION_GUARDIAN)
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, client.sendCount())

	require.NoError(t, svc.ResetThread(user.ID, models.SECTION_GUARDIAN))

	// cache invalidado: brief novo vai na IA de novo
	_, err = svc.GetBrief(ctx, user, models.SECTION_GUARDIAN)
	require.NoError(t, err)
	assert.True(t, client.sendCount() > callsAfterFirst)
}

func TestSurveyChangeInvalidatesBrief(t *testing.T) {
	client := &fakeClient{defaultReply: "1. Insight\n2. Question?"}
	svc, db := newTestService(t, client)
	user := createTestUser(t, db, "50.00")
	ctx := context.Background()

	_, err := svc.GetBrief(ctx, user, models.SECTION_GUARDIAN)
	require.NoError(t, err)
	before := client.sendCount()

	require.NoError(t, svc.InvalidateBrief(user.ID, models.SECTION_GUARDIAN))

	_, err = svc.GetBrief(ctx, user, models.SECTION_GUARDIAN)
	require.NoError(t, err)
	assert.True(t, client.sendCount() > before)
}

func TestChatRedactsOutboundMessage(t *testing.T) {
	client := &fakeClient{defaultReply: "noted"}
	svc, db := newTestService(t, client)
	user := createTestUser(t, db, "50.00")

	_, err := svc.Chat(context.Background(), user, models.SECTION_GUARDIAN,
		"my email is bob@example.com, can I buy a bike?")
	require.NoError(t, err)

	for _, msg := range client.sentMessages() {
		assert.False(t, strings.Contains(msg, "bob@example.com"), "raw pii leaked: %q", msg)
	}
	_ = db
}

func TestChatRejectsInvalidSection(t *testing.T) {
	svc, db := newTestService(t, &fakeClient{})
	user := createTestUser(t, db, "50.00")

	_, err := svc.Chat(context.Background(), user, "astrology", "hello")
	var validation ValidationError
	assert.ErrorAs(t, err, &validation)
}
