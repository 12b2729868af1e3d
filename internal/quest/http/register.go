package http

import (
	"net/http"

	"github.com/aussiebroadwan/cardquest/internal/quest/service"
	"github.com/aussiebroadwan/cardquest/pkg/httpx"
	"github.com/aussiebroadwan/cardquest/pkg/questsdk"
)

type RegisterHandler struct {
	RegistrationService *service.RegistrationService
	BotURL              string
}

// ServeHTTP godoc
//
//	@Summary		Begin Registration
//	@Description	Issue a one-time registration token for a card. The participant sends the token to the chat bot to pick a username.
//	@Description	Repeating the request for a card that already holds a token returns the same token.
//	@Tags			Users
//	@Produce		json
//	@Param			sha256	path		string							true	"64 hex characters"
//	@Success		200		{object}	questsdk.RegistrationResponse	"token, bot_url"
//	@Failure		400		{object}	questsdk.ErrorResponse			"malformed hash"
//	@Failure		409		{object}	questsdk.ErrorResponse			"card already registered or token collision"
//	@Failure		500		{object}	questsdk.ErrorResponse			"store failure"
//	@Router			/user/register/{sha256} [post]
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reg, err := h.RegistrationService.Issue(r.Context(), r.PathValue("sha256"))
	if err != nil {
		writeServiceError(w, r, err, "failed to begin registration")
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, questsdk.RegistrationResponse{
		Token:  reg.Prefix,
		BotURL: h.BotURL,
	})
}
