package http

import (
	"net/http"

	"github.com/aussiebroadwan/cardquest/internal/quest/domain"
	"github.com/aussiebroadwan/cardquest/internal/quest/service"
	"github.com/aussiebroadwan/cardquest/pkg/httpx"
	"github.com/aussiebroadwan/cardquest/pkg/questsdk"
)

type UserHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Get User
//	@Description	Look up a registered account by its id
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string					true	"Account UUID"
//	@Success		200	{object}	questsdk.UserResponse	"uuid, username, card_hash"
//	@Failure		400	{object}	questsdk.ErrorResponse	"malformed id"
//	@Failure		404	{object}	questsdk.ErrorResponse	"no such user"
//	@Router			/user/{id} [get]
func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetUserByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "failed to fetch user")
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, userResponse(user))
}

type UserByCardHashHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Get User By Card
//	@Description	Look up a registered account by the hex SHA-256 of its card
//	@Tags			Users
//	@Produce		json
//	@Param			hash	path		string					true	"64 hex characters"
//	@Success		200		{object}	questsdk.UserResponse	"uuid, username, card_hash"
//	@Failure		400		{object}	questsdk.ErrorResponse	"malformed hash"
//	@Failure		404		{object}	questsdk.ErrorResponse	"no such user"
//	@Router			/user/sha/{hash} [get]
func (h *UserByCardHashHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetUserByCardHash(r.Context(), r.PathValue("hash"))
	if err != nil {
		writeServiceError(w, r, err, "failed to fetch user")
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, userResponse(user))
}

func userResponse(u domain.User) questsdk.UserResponse {
	return questsdk.UserResponse{
		UUID:     u.ID,
		Username: u.Username,
		CardHash: u.CardHash,
	}
}
