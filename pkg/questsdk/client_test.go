package questsdk_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/cardquest/pkg/questsdk"
	"github.com/stretchr/testify/require"
)

func TestClientDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/user/register/abc":
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			_, _ = w.Write([]byte(`{"success":true,"token":"abcdef01","bot_url":"https://t.me/x"}`))
		case "/quiz/answer/q1/1":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":"question not found"}`))
		case "/categories":
			_, _ = w.Write([]byte(`{"success":false,"error":"odd"}`))
		default:
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte(`not json`))
		}
	}))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	client := questsdk.NewSDKClient(srv.URL + "/")

	reg, err := client.BeginRegistration(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, "abcdef01", reg.Token)
	require.Equal(t, "https://t.me/x", reg.BotURL)

	_, err = client.Answer(ctx, "q1", 1)
	require.True(t, questsdk.IsNotFound(err))
	require.EqualError(t, err, "cardquest: 404: question not found")

	_, err = client.ListCategories(ctx)
	require.Error(t, err, "a 200 without success is still a failure")

	_, err = client.GetLiveness(ctx)
	var apiErr *questsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusTeapot, apiErr.StatusCode)
	require.Equal(t, "I'm a teapot", apiErr.Message)
	require.False(t, questsdk.IsConflict(err))
}
