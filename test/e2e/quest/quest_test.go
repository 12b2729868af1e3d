package quest_test

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/cardquest/pkg/questsdk"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	client := setupQuestContainer(t)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "ok", health.Checks.QuestionBank)
}

func TestRegistrationTokenIssuance(t *testing.T) {
	client := setupQuestContainer(t)
	hash := strings.Repeat("c0ffee", 10) + "beef"

	first, err := client.BeginRegistration(t.Context(), hash)
	require.NoError(t, err)
	require.Equal(t, "c0ffeec0", first.Token)
	require.Equal(t, testBotURL, first.BotURL)

	// An outstanding token is handed out again rather than replaced.
	second, err := client.BeginRegistration(t.Context(), strings.ToUpper(hash))
	require.NoError(t, err)
	require.Equal(t, first.Token, second.Token)

	_, err = client.BeginRegistration(t.Context(), "not-a-card")
	require.True(t, questsdk.IsBadRequest(err), "got %v", err)

	// Issuing a token does not create the account.
	_, err = client.GetUserByCardHash(t.Context(), hash)
	require.True(t, questsdk.IsNotFound(err), "got %v", err)
}

func TestQuizRequiresRegisteredUser(t *testing.T) {
	client := setupQuestContainer(t)

	categories, err := client.ListCategories(t.Context())
	require.NoError(t, err)
	require.Equal(t, []string{"math"}, categories.Categories)

	_, err = client.GetQuestion(t.Context(), "0195f0a4-6a7e-7c1a-9f3e-3f6d2b0c9a11", "math")
	require.True(t, questsdk.IsNotFound(err), "got %v", err)

	_, err = client.GetQuestion(t.Context(), "not-a-uuid", "math")
	require.True(t, questsdk.IsBadRequest(err), "got %v", err)

	_, err = client.Answer(t.Context(), "0195f0a4-6a7e-7c1a-9f3e-3f6d2b0c9a11", 0)
	require.True(t, questsdk.IsNotFound(err), "got %v", err)
}
