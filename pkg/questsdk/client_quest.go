package questsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// GetUser fetches an account by id.
func (c *SDKClient) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	return call[UserResponse](ctx, c, http.MethodGet, "/user/"+url.PathEscape(id), http.StatusOK)
}

// GetUserByCardHash fetches an account by the hex SHA-256 of its card.
func (c *SDKClient) GetUserByCardHash(ctx context.Context, cardHash string) (*UserResponse, error) {
	return call[UserResponse](ctx, c, http.MethodGet, "/user/sha/"+url.PathEscape(cardHash), http.StatusOK)
}

// BeginRegistration issues a registration token for a card.
func (c *SDKClient) BeginRegistration(ctx context.Context, cardHash string) (*RegistrationResponse, error) {
	return call[RegistrationResponse](ctx, c, http.MethodPost, "/user/register/"+url.PathEscape(cardHash), http.StatusOK)
}

// GetQuestion draws a question from category for the user.
func (c *SDKClient) GetQuestion(ctx context.Context, userID, category string) (*QuestionResponse, error) {
	path := "/user/" + url.PathEscape(userID) + "/question/" + url.PathEscape(category)
	return call[QuestionResponse](ctx, c, http.MethodGet, path, http.StatusOK)
}

// Answer submits the variant index chosen for a question.
func (c *SDKClient) Answer(ctx context.Context, questionID string, answer int) (*AnswerResponse, error) {
	path := "/quiz/answer/" + url.PathEscape(questionID) + "/" + strconv.Itoa(answer)
	return call[AnswerResponse](ctx, c, http.MethodPost, path, http.StatusOK)
}

func (c *SDKClient) ListCategories(ctx context.Context) (*CategoriesResponse, error) {
	return call[CategoriesResponse](ctx, c, http.MethodGet, "/categories", http.StatusOK)
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return call[HealthResponse](ctx, c, http.MethodGet, "/livez", http.StatusOK)
}

// GetReadiness checks if the service can reach its dependencies.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return call[HealthResponse](ctx, c, http.MethodGet, "/readyz", http.StatusOK)
}
