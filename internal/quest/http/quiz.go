package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/cardquest/internal/quest/service"
	"github.com/aussiebroadwan/cardquest/pkg/httpx"
	"github.com/aussiebroadwan/cardquest/pkg/idx"
	"github.com/aussiebroadwan/cardquest/pkg/questsdk"
)

type QuestionHandler struct {
	UserService *service.UserService
	QuizService *service.QuizService
}

// ServeHTTP godoc
//
//	@Summary		Get Question
//	@Description	Draw a random question from a category and bind it to the user. The answer key is never returned.
//	@Tags			Quiz
//	@Produce		json
//	@Param			user		path		string						true	"Account UUID"
//	@Param			category	path		string						true	"Category name"
//	@Success		200			{object}	questsdk.QuestionResponse	"id, bound_to, category, question, variants"
//	@Failure		400			{object}	questsdk.ErrorResponse		"malformed user id"
//	@Failure		404			{object}	questsdk.ErrorResponse		"unknown user or category"
//	@Failure		422			{object}	questsdk.ErrorResponse		"category has no questions"
//	@Router			/user/{user}/question/{category} [get]
func (h *QuestionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.UserService.GetUserByID(ctx, r.PathValue("user"))
	if err != nil {
		writeServiceError(w, r, err, "failed to fetch user")
		return
	}

	inst, err := h.QuizService.GetFromCategory(ctx, user.ID, r.PathValue("category"))
	if err != nil {
		writeServiceError(w, r, err, "failed to draw question")
		return
	}

	c := inst.Challenge()
	httpx.WriteSuccess(w, http.StatusOK, questsdk.QuestionResponse{
		ID:       c.ID,
		BoundTo:  c.BoundTo,
		Category: c.Category,
		Question: c.Text,
		Variants: c.Variants,
	})
}

type AnswerHandler struct {
	QuizService *service.QuizService
}

// ServeHTTP godoc
//
//	@Summary		Answer Question
//	@Description	Score an answer and consume the question. Any second answer to the same question is 404.
//	@Tags			Quiz
//	@Produce		json
//	@Param			question	path		string					true	"Question UUID"
//	@Param			answer		path		int						true	"Chosen variant index"
//	@Success		200			{object}	questsdk.AnswerResponse	"correct, correct_answer"
//	@Failure		400			{object}	questsdk.ErrorResponse	"malformed question id or answer"
//	@Failure		404			{object}	questsdk.ErrorResponse	"unknown or already answered question"
//	@Router			/quiz/answer/{question}/{answer} [post]
func (h *AnswerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	qid, err := idx.Parse(r.PathValue("question"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid question id")
		return
	}
	answer, err := strconv.Atoi(r.PathValue("answer"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "answer must be an integer")
		return
	}

	correct, correctIndex, err := h.QuizService.Answer(r.Context(), qid.String(), answer)
	if err != nil {
		writeServiceError(w, r, err, "failed to score answer")
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, questsdk.AnswerResponse{
		Correct:       correct,
		CorrectAnswer: correctIndex,
	})
}

type CategoriesHandler struct {
	QuizService *service.QuizService
}

// ServeHTTP godoc
//
//	@Summary		List Categories
//	@Description	List the question categories currently available
//	@Tags			Quiz
//	@Produce		json
//	@Success		200	{object}	questsdk.CategoriesResponse	"categories"
//	@Failure		500	{object}	questsdk.ErrorResponse		"question bank unreadable"
//	@Router			/categories [get]
func (h *CategoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cats, err := h.QuizService.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list categories")
		return
	}
	if cats == nil {
		cats = []string{}
	}
	httpx.WriteSuccess(w, http.StatusOK, questsdk.CategoriesResponse{Categories: cats})
}
