package service

import (
	"context"
	"log/slog"
	"time"
)

// HousekeepingService periodically drops abandoned state: registration tokens
// nobody redeemed, quiz instances nobody answered and dialogues left halfway.
// A zero TTL disables the corresponding sweep.
type HousekeepingService struct {
	Registrations *RegistrationService
	Quiz          *QuizService
	Dialogues     *DialogueService
	Logger        *slog.Logger
	Interval      time.Duration

	RegistrationTTL time.Duration
	QuizInstanceTTL time.Duration
	DialogueIdleTTL time.Duration

	Now func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// SweepResult counts what one cleanup pass removed.
type SweepResult struct {
	Registrations int64
	QuizInstances int
	Dialogues     int
}

// NewHousekeepingService creates a housekeeping worker. If interval is 0 or
// negative, it defaults to 1 hour.
func NewHousekeepingService(
	registrations *RegistrationService,
	quiz *QuizService,
	dialogues *DialogueService,
	logger *slog.Logger,
	interval time.Duration,
) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HousekeepingService{
		Registrations: registrations,
		Quiz:          quiz,
		Dialogues:     dialogues,
		Logger:        logger,
		Interval:      interval,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", slog.Duration("interval", s.Interval))
}

// Stop blocks until an in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep performs one cleanup pass. Each sweep is independent, a failure in
// one does not stop the others.
func (s *HousekeepingService) Sweep(ctx context.Context) SweepResult {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	var res SweepResult

	if s.Registrations != nil && s.RegistrationTTL > 0 {
		n, err := s.Registrations.PurgeRegistrations(ctx, now.Add(-s.RegistrationTTL))
		if err != nil {
			s.Logger.Error("failed to purge stale registrations", slog.Any("error", err))
		} else {
			res.Registrations = n
		}
	}

	if s.Quiz != nil && s.QuizInstanceTTL > 0 {
		res.QuizInstances = s.Quiz.PurgeInstances(now.Add(-s.QuizInstanceTTL))
	}

	if s.Dialogues != nil && s.DialogueIdleTTL > 0 {
		res.Dialogues = s.Dialogues.PurgeIdle(now.Add(-s.DialogueIdleTTL))
	}

	s.Logger.Debug("housekeeping sweep completed",
		slog.Int64("registrations", res.Registrations),
		slog.Int("quiz_instances", res.QuizInstances),
		slog.Int("dialogues", res.Dialogues),
	)
	return res
}
