package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/aussiebroadwan/cardquest/internal/quest/domain"
	"github.com/aussiebroadwan/cardquest/internal/quest/questionbank"
	"github.com/aussiebroadwan/cardquest/internal/quest/session"
	"github.com/aussiebroadwan/cardquest/pkg/idx"
	"github.com/aussiebroadwan/cardquest/pkg/slogx"
)

// QuestionBank is the read side of the category files.
type QuestionBank interface {
	Categories(ctx context.Context) ([]string, error)
	// Questions returns questionbank.ErrUnknownCategory for a category that
	// has no file.
	Questions(ctx context.Context, category string) ([]domain.Question, error)
}

// QuizService hands out single-use question instances bound to an account
// and scores answers to them. Instances live in process memory only.
type QuizService struct {
	Bank QuestionBank
	Now  func() time.Time

	randMu sync.Mutex
	rand   *rand.Rand

	instances *session.Registry[string, domain.QuestionInstance]
}

// NewQuizService builds a QuizService drawing questions from src. Tests pass
// a seeded source to make draws reproducible.
func NewQuizService(bank QuestionBank, src rand.Source) *QuizService {
	return &QuizService{
		Bank:      bank,
		rand:      rand.New(src),
		instances: session.NewRegistry[string, domain.QuestionInstance](),
	}
}

func (s *QuizService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *QuizService) ListCategories(ctx context.Context) ([]string, error) {
	cats, err := s.Bank.Categories(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list categories", slog.Any("error", err))
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// GetFromCategory draws a question from category uniformly at random and binds
// it to userID. The caller is responsible for userID referring to an account.
func (s *QuizService) GetFromCategory(ctx context.Context, userID, category string) (domain.QuestionInstance, error) {
	log := slogx.FromContext(ctx)

	questions, err := s.Bank.Questions(ctx, category)
	if err != nil {
		if errors.Is(err, questionbank.ErrUnknownCategory) {
			log.Warn("question requested from unknown category", slog.String("category", category))
			return domain.QuestionInstance{}, ErrCategoryNotFound
		}
		log.Error("failed to load category",
			slog.String("category", category),
			slog.Any("error", err),
		)
		return domain.QuestionInstance{}, fmt.Errorf("load category %q: %w", category, err)
	}
	if len(questions) == 0 {
		log.Warn("question requested from empty category", slog.String("category", category))
		return domain.QuestionInstance{}, ErrCategoryEmpty
	}

	s.randMu.Lock()
	i := s.rand.IntN(len(questions))
	s.randMu.Unlock()

	inst := domain.QuestionInstance{
		ID:       idx.New().String(),
		BoundTo:  userID,
		Category: category,
		Question: questions[i],
		IssuedAt: s.now(),
	}
	s.instances.Put(inst.ID, inst)

	log.Debug("question issued",
		slog.String("question_id", inst.ID),
		slog.String("user_id", userID),
		slog.String("category", category),
	)
	return inst, nil
}

// Answer consumes the question instance and scores submitted against it.
// A second answer to the same instance reports ErrQuestionNotFound.
func (s *QuizService) Answer(ctx context.Context, questionID string, submitted int) (correct bool, correctIndex int, err error) {
	inst, ok := s.instances.Take(questionID)
	if !ok {
		slogx.FromContext(ctx).Warn("answer for unknown question", slog.String("question_id", questionID))
		return false, 0, ErrQuestionNotFound
	}

	correctIndex = inst.Question.CorrectAnswer
	correct = submitted == correctIndex

	slogx.FromContext(ctx).Info("question answered",
		slog.String("question_id", inst.ID),
		slog.String("user_id", inst.BoundTo),
		slog.Bool("correct", correct),
	)
	return correct, correctIndex, nil
}

// Outstanding reports the number of unanswered instances.
func (s *QuizService) Outstanding() int {
	return s.instances.Len()
}

// PurgeInstances drops unanswered instances issued before cutoff.
func (s *QuizService) PurgeInstances(cutoff time.Time) int {
	return s.instances.Sweep(func(inst domain.QuestionInstance) bool {
		return inst.IssuedAt.Before(cutoff)
	})
}
