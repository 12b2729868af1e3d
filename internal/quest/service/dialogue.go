package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/cardquest/internal/quest/domain"
	"github.com/aussiebroadwan/cardquest/internal/quest/session"
	"github.com/aussiebroadwan/cardquest/pkg/cryptox"
	"github.com/aussiebroadwan/cardquest/pkg/slogx"
)

// Outcome is what a dialogue step resolved to. The chat transport turns it
// into a reply.
type Outcome int

const (
	OutcomeTokenMalformed Outcome = iota
	OutcomeTokenInvalid
	OutcomeAwaitingUsername
	OutcomeAlreadyInProgress
	OutcomeUsernameInvalid
	OutcomeUsernameTaken
	OutcomeRegistered
	OutcomeRegistrationFailed
	OutcomeCancelled
	OutcomeNoRegistration
)

var outcomeNames = [...]string{
	OutcomeTokenMalformed:     "token_malformed",
	OutcomeTokenInvalid:       "token_invalid",
	OutcomeAwaitingUsername:   "awaiting_username",
	OutcomeAlreadyInProgress:  "already_in_progress",
	OutcomeUsernameInvalid:    "username_invalid",
	OutcomeUsernameTaken:      "username_taken",
	OutcomeRegistered:         "registered",
	OutcomeRegistrationFailed: "registration_failed",
	OutcomeCancelled:          "cancelled",
	OutcomeNoRegistration:     "no_registration",
}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// Reply carries the outcome plus whatever the transport needs to render it.
type Reply struct {
	Outcome  Outcome
	Username string      // candidate username, for taken/invalid/registered
	User     domain.User // set when Outcome is OutcomeRegistered
}

// DialogueService drives the per-conversation registration state machine:
// Start, then AwaitingUsername once a valid token has been presented, then
// back to Start on completion or cancellation.
//
// The token is only checked when presented and consumed in the transaction
// that creates the account, so abandoning a dialogue never burns a token.
type DialogueService struct {
	Registrations *RegistrationService
	Now           func() time.Time

	states *session.Registry[int64, domain.DialogueState]
}

func NewDialogueService(registrations *RegistrationService) *DialogueService {
	return &DialogueService{
		Registrations: registrations,
		states:        session.NewRegistry[int64, domain.DialogueState](),
	}
}

func (s *DialogueService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// State returns the conversation's current state. Unknown conversations are
// in Start.
func (s *DialogueService) State(conversation int64) domain.DialogueState {
	st, ok := s.states.Get(conversation)
	if !ok {
		return domain.DialogueState{Step: domain.DialogueStart}
	}
	return st
}

// Register handles "/register <token>".
func (s *DialogueService) Register(ctx context.Context, conversation int64, token string) Reply {
	log := slogx.FromContext(ctx)

	if s.State(conversation).Step == domain.DialogueAwaitingUsername {
		return Reply{Outcome: OutcomeAlreadyInProgress}
	}

	if _, err := cryptox.NormalizeTokenPrefix(token); err != nil {
		log.Warn("malformed registration token presented")
		return Reply{Outcome: OutcomeTokenMalformed}
	}

	reg, err := s.Registrations.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			log.Warn("unknown registration token presented")
			return Reply{Outcome: OutcomeTokenInvalid}
		}
		return Reply{Outcome: OutcomeRegistrationFailed}
	}

	s.states.Put(conversation, domain.DialogueState{
		Step:      domain.DialogueAwaitingUsername,
		Pending:   reg,
		UpdatedAt: s.now(),
	})

	log.Info("registration dialogue started", slog.String("token", reg.Prefix))
	return Reply{Outcome: OutcomeAwaitingUsername}
}

// SubmitUsername handles a username candidate, typed or picked from the
// suggestion button.
func (s *DialogueService) SubmitUsername(ctx context.Context, conversation int64, username string) Reply {
	st := s.State(conversation)
	if st.Step != domain.DialogueAwaitingUsername {
		return Reply{Outcome: OutcomeNoRegistration}
	}

	name, err := NormalizeUsername(username)
	if err != nil {
		return Reply{Outcome: OutcomeUsernameInvalid, Username: username}
	}

	// Cancel and PurgeIdle may run while Complete is in flight. Every write
	// below only applies to the state this call started from.
	user, err := s.Registrations.Complete(ctx, st.Pending, name)
	switch {
	case err == nil:
		s.states.DeleteIf(conversation, sameDialogue(st))
		return Reply{Outcome: OutcomeRegistered, Username: user.Username, User: user}
	case errors.Is(err, ErrUsernameTaken):
		s.touch(conversation, st)
		return Reply{Outcome: OutcomeUsernameTaken, Username: name}
	case errors.Is(err, ErrInvalidUsername):
		s.touch(conversation, st)
		return Reply{Outcome: OutcomeUsernameInvalid, Username: name}
	case errors.Is(err, ErrInvalidToken):
		// Someone else completed registration with this token first.
		s.states.DeleteIf(conversation, sameDialogue(st))
		return Reply{Outcome: OutcomeTokenInvalid}
	default:
		s.touch(conversation, st)
		return Reply{Outcome: OutcomeRegistrationFailed, Username: name}
	}
}

// Cancel resets the conversation to Start. Nothing persistent is touched;
// the token stays redeemable.
func (s *DialogueService) Cancel(ctx context.Context, conversation int64) Reply {
	if s.states.Delete(conversation) {
		slogx.FromContext(ctx).Info("registration dialogue cancelled")
	}
	return Reply{Outcome: OutcomeCancelled}
}

// Active reports the number of conversations awaiting a username.
func (s *DialogueService) Active() int {
	return s.states.Len()
}

// PurgeIdle drops conversations that have not progressed since cutoff.
func (s *DialogueService) PurgeIdle(cutoff time.Time) int {
	return s.states.Sweep(func(st domain.DialogueState) bool {
		return st.UpdatedAt.Before(cutoff)
	})
}

// touch refreshes the idle timer of st. A conversation that was cancelled,
// purged or restarted in the meantime is left alone.
func (s *DialogueService) touch(conversation int64, st domain.DialogueState) {
	same := sameDialogue(st)
	s.states.Update(conversation, func(cur domain.DialogueState) (domain.DialogueState, bool) {
		if !same(cur) {
			return cur, false
		}
		cur.UpdatedAt = s.now()
		return cur, true
	})
}

func sameDialogue(st domain.DialogueState) func(domain.DialogueState) bool {
	return func(cur domain.DialogueState) bool {
		return cur.Step == st.Step &&
			cur.Pending.PendingID == st.Pending.PendingID &&
			cur.UpdatedAt.Equal(st.UpdatedAt)
	}
}
