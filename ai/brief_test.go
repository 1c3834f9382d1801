package ai

import (
	"context"
	"testing"

	"zenith/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBriefNumberedList(t *testing.T) {
	reply := "Welcome!\n" +
		"1. You spend most on eating out.\n" +
		"2. Your savings rate improved this month.\n" +
		"3) You have no emergency fund yet.\n" +
		"1. How can I build an emergency fund?\n" +
		"2. Should I cut back on restaurants?"

	brief := parseBrief(reply)
	require.Len(t, brief.Insights, 3)
	require.Len(t, brief.ExampleQuestions, 2)
	assert.Equal(t, "You spend most on eating out.", brief.Insights[0])
	assert.Equal(t, "How can I build an emergency fund?", brief.ExampleQuestions[0])
}

func TestParseBriefBulletList(t *testing.T) {
	reply := "- keep an eye on subscriptions\n* set a weekly budget\n- What is my biggest expense?"
	brief := parseBrief(reply)
	assert.Len(t, brief.Insights, 2)
	assert.Len(t, brief.ExampleQuestions, 1)
}

func TestParseBriefFallsBackToRawText(t *testing.T) {
	reply := "You're doing fine overall, nothing to flag this week."
	brief := parseBrief(reply)
	require.Len(t, brief.Insights, 1)
	assert.Equal(t, reply, brief.Insights[0])
	assert.Empty(t, brief.ExampleQuestions)
}

func TestParseBriefEmptyReply(t *testing.T) {
	brief := parseBrief("   \n  ")
	assert.Empty(t, brief.Insights)
	assert.Empty(t, brief.ExampleQuestions)
}

func TestBriefCacheHitWithOnlyQuestions(t *testing.T) {
	client := &fakeClient{defaultReply: "1. How can I save more?\n2. Should I track my spending?"}
	svc, db := newTestService(t, client)
	user := createTestUser(t, db, "30.00")
	ctx := context.Background()

	first, err := svc.GetBrief(ctx, user, models.SECTION_GUARDIAN)
	require.NoError(t, err)
	require.Empty(t, first.Insights)
	require.Len(t, first.ExampleQuestions, 2)
	calls := client.sendCount()

	// brief só de perguntas ainda é cache válido: nenhuma ida nova à IA
	second, err := svc.GetBrief(ctx, user, models.SECTION_GUARDIAN)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, calls, client.sendCount())
}
