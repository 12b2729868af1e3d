package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/cardquest/internal/quest/service"
	"github.com/aussiebroadwan/cardquest/internal/quest/store"
	"github.com/aussiebroadwan/cardquest/pkg/httpx"
	"github.com/aussiebroadwan/cardquest/pkg/questsdk"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe. Always 200 while the process is serving.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	questsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get]
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteSuccess(w, http.StatusOK, questsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database and the question bank
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	questsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	questsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get]
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	quiz *service.QuizService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &questsdk.HealthChecks{
			Database:     "ok",
			QuestionBank: "ok",
		}
		ready := true

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			ready = false
		}
		if _, err := quiz.ListCategories(r.Context()); err != nil {
			checks.QuestionBank = "error: " + err.Error()
			ready = false
		}

		response := questsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		if ready {
			httpx.WriteSuccess(w, http.StatusOK, response)
			return
		}

		response.Status = "degraded"
		httpx.WriteJSON(w, http.StatusServiceUnavailable, struct {
			questsdk.ErrorResponse
			questsdk.HealthResponse
		}{
			ErrorResponse:  questsdk.ErrorResponse{Success: false, Error: "service not ready"},
			HealthResponse: response,
		})
	}
}
