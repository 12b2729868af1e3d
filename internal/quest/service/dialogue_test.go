package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/cardquest/internal/quest/domain"
	"github.com/stretchr/testify/require"
)

type dialogueFixture struct {
	regs      *RegistrationService
	dialogues *DialogueService
}

func newDialogueFixture(t *testing.T) dialogueFixture {
	t.Helper()
	regs := &RegistrationService{Store: newTestStore(t)}
	return dialogueFixture{regs: regs, dialogues: NewDialogueService(regs)}
}

func (f dialogueFixture) issue(t *testing.T, c string) domain.Registration {
	t.Helper()
	reg, err := f.regs.Issue(context.Background(), hashOf(c))
	require.NoError(t, err)
	return reg
}

func TestDialogueHappyPath(t *testing.T) {
	ctx := context.Background()
	f := newDialogueFixture(t)
	reg := f.issue(t, "a")

	require.Equal(t, domain.DialogueStart, f.dialogues.State(1).Step)

	r := f.dialogues.Register(ctx, 1, "AAAAAAAA")
	require.Equal(t, OutcomeAwaitingUsername, r.Outcome)

	st := f.dialogues.State(1)
	require.Equal(t, domain.DialogueAwaitingUsername, st.Step)
	require.Equal(t, reg.PendingID, st.Pending.PendingID)
	require.Equal(t, reg.CardHash, st.Pending.CardHash)

	r = f.dialogues.SubmitUsername(ctx, 1, "alice")
	require.Equal(t, OutcomeRegistered, r.Outcome)
	require.Equal(t, reg.PendingID, r.User.ID)
	require.Equal(t, "alice", r.User.Username)
	require.Equal(t, domain.DialogueStart, f.dialogues.State(1).Step)
	require.Zero(t, f.dialogues.Active())

	r = f.dialogues.Register(ctx, 1, "aaaaaaaa")
	require.Equal(t, OutcomeTokenInvalid, r.Outcome)
}

func TestDialogueRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	f := newDialogueFixture(t)

	for _, tok := range []string{"", "aaaa", "aaaaaaaaa", "zzzzzzzz"} {
		r := f.dialogues.Register(ctx, 1, tok)
		require.Equal(t, OutcomeTokenMalformed, r.Outcome, "token %q", tok)
	}

	r := f.dialogues.Register(ctx, 1, "bbbbbbbb")
	require.Equal(t, OutcomeTokenInvalid, r.Outcome)
	require.Equal(t, domain.DialogueStart, f.dialogues.State(1).Step)
}

func TestDialogueUsernameConflict(t *testing.T) {
	ctx := context.Background()
	f := newDialogueFixture(t)

	f.issue(t, "a")
	f.issue(t, "b")

	require.Equal(t, OutcomeAwaitingUsername, f.dialogues.Register(ctx, 1, "aaaaaaaa").Outcome)
	require.Equal(t, OutcomeRegistered, f.dialogues.SubmitUsername(ctx, 1, "bob").Outcome)

	require.Equal(t, OutcomeAwaitingUsername, f.dialogues.Register(ctx, 2, "bbbbbbbb").Outcome)
	r := f.dialogues.SubmitUsername(ctx, 2, "bob")
	require.Equal(t, OutcomeUsernameTaken, r.Outcome)
	require.Equal(t, "bob", r.Username)
	require.Equal(t, domain.DialogueAwaitingUsername, f.dialogues.State(2).Step)

	r = f.dialogues.SubmitUsername(ctx, 2, "bobby")
	require.Equal(t, OutcomeRegistered, r.Outcome)
	require.Equal(t, "bobby", r.User.Username)
}

func TestDialogueInvalidUsernameStaysAwaiting(t *testing.T) {
	ctx := context.Background()
	f := newDialogueFixture(t)
	f.issue(t, "c")

	require.Equal(t, OutcomeAwaitingUsername, f.dialogues.Register(ctx, 1, "cccccccc").Outcome)
	require.Equal(t, OutcomeUsernameInvalid, f.dialogues.SubmitUsername(ctx, 1, "   ").Outcome)
	require.Equal(t, domain.DialogueAwaitingUsername, f.dialogues.State(1).Step)
}

func TestDialogueAlreadyInProgress(t *testing.T) {
	ctx := context.Background()
	f := newDialogueFixture(t)
	f.issue(t, "c")
	f.issue(t, "d")

	require.Equal(t, OutcomeAwaitingUsername, f.dialogues.Register(ctx, 1, "cccccccc").Outcome)
	require.Equal(t, OutcomeAlreadyInProgress, f.dialogues.Register(ctx, 1, "dddddddd").Outcome)
	require.Equal(t, hashOf("c"), f.dialogues.State(1).Pending.CardHash)
}

func TestDialogueUsernameWithoutRegistration(t *testing.T) {
	f := newDialogueFixture(t)
	r := f.dialogues.SubmitUsername(context.Background(), 9, "alice")
	require.Equal(t, OutcomeNoRegistration, r.Outcome)
}

func TestDialogueCancelKeepsToken(t *testing.T) {
	ctx := context.Background()
	f := newDialogueFixture(t)
	f.issue(t, "e")

	require.Equal(t, OutcomeAwaitingUsername, f.dialogues.Register(ctx, 1, "eeeeeeee").Outcome)
	require.Equal(t, OutcomeCancelled, f.dialogues.Cancel(ctx, 1).Outcome)
	require.Equal(t, domain.DialogueStart, f.dialogues.State(1).Step)

	require.Equal(t, OutcomeCancelled, f.dialogues.Cancel(ctx, 1).Outcome)

	require.Equal(t, OutcomeAwaitingUsername, f.dialogues.Register(ctx, 2, "eeeeeeee").Outcome)
	require.Equal(t, OutcomeRegistered, f.dialogues.SubmitUsername(ctx, 2, "erin").Outcome)
}

func TestDialoguePersistenceFailure(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	healthy := &RegistrationService{Store: st}
	reg, err := healthy.Issue(ctx, hashOf("f"))
	require.NoError(t, err)

	failing := NewDialogueService(&RegistrationService{Store: failingStore(st)})

	require.Equal(t, OutcomeAwaitingUsername, failing.Register(ctx, 1, reg.Prefix).Outcome)
	r := failing.SubmitUsername(ctx, 1, "frank")
	require.Equal(t, OutcomeRegistrationFailed, r.Outcome)
	require.Equal(t, domain.DialogueAwaitingUsername, failing.State(1).Step)

	_, err = healthy.Lookup(ctx, reg.Prefix)
	require.NoError(t, err, "token must survive a failed commit")

	// Once the store recovers the same conversation can finish.
	recovered := NewDialogueService(healthy)
	require.Equal(t, OutcomeAwaitingUsername, recovered.Register(ctx, 1, reg.Prefix).Outcome)
	require.Equal(t, OutcomeRegistered, recovered.SubmitUsername(ctx, 1, "frank").Outcome)
}

func TestDialogueCancelDuringSubmitStaysCancelled(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	healthy := &RegistrationService{Store: st}
	reg, err := healthy.Issue(ctx, hashOf("c"))
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	dialogues := NewDialogueService(&RegistrationService{Store: gatedStore(st, entered, release)})
	require.Equal(t, OutcomeAwaitingUsername, dialogues.Register(ctx, 1, reg.Prefix).Outcome)

	done := make(chan Reply, 1)
	go func() { done <- dialogues.SubmitUsername(ctx, 1, "carol") }()

	<-entered
	require.Equal(t, OutcomeCancelled, dialogues.Cancel(ctx, 1).Outcome)
	require.Equal(t, domain.DialogueStart, dialogues.State(1).Step)
	close(release)

	r := <-done
	require.Equal(t, OutcomeUsernameTaken, r.Outcome)
	require.Equal(t, domain.DialogueStart, dialogues.State(1).Step, "cancel must not be undone")
	require.Zero(t, dialogues.Active())
}

func TestDialoguePurgeDuringSubmitStaysPurged(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	healthy := &RegistrationService{Store: st}
	reg, err := healthy.Issue(ctx, hashOf("d"))
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	dialogues := NewDialogueService(&RegistrationService{Store: gatedStore(st, entered, release)})
	require.Equal(t, OutcomeAwaitingUsername, dialogues.Register(ctx, 1, reg.Prefix).Outcome)

	done := make(chan Reply, 1)
	go func() { done <- dialogues.SubmitUsername(ctx, 1, "dave") }()

	<-entered
	require.Equal(t, 1, dialogues.PurgeIdle(time.Now().Add(time.Hour)))
	close(release)

	require.Equal(t, OutcomeUsernameTaken, (<-done).Outcome)
	require.Zero(t, dialogues.Active())
}

func TestDialogueSameTokenTwoConversations(t *testing.T) {
	ctx := context.Background()
	f := newDialogueFixture(t)
	f.issue(t, "1")

	require.Equal(t, OutcomeAwaitingUsername, f.dialogues.Register(ctx, 1, "11111111").Outcome)
	require.Equal(t, OutcomeAwaitingUsername, f.dialogues.Register(ctx, 2, "11111111").Outcome)

	require.Equal(t, OutcomeRegistered, f.dialogues.SubmitUsername(ctx, 1, "first").Outcome)

	r := f.dialogues.SubmitUsername(ctx, 2, "second")
	require.Equal(t, OutcomeTokenInvalid, r.Outcome)
	require.Equal(t, domain.DialogueStart, f.dialogues.State(2).Step)
}

func TestDialogueConcurrentCompletionSingleWinner(t *testing.T) {
	ctx := context.Background()
	f := newDialogueFixture(t)
	f.issue(t, "2")

	const conversations = 8
	for i := range int64(conversations) {
		require.Equal(t, OutcomeAwaitingUsername, f.dialogues.Register(ctx, i, "22222222").Outcome)
	}

	outcomes := make([]Outcome, conversations)
	var wg sync.WaitGroup
	for i := range conversations {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = f.dialogues.SubmitUsername(ctx, int64(i), "player").Outcome
		}()
	}
	wg.Wait()

	registered := 0
	for _, o := range outcomes {
		switch o {
		case OutcomeRegistered:
			registered++
		default:
			require.Equal(t, OutcomeTokenInvalid, o)
		}
	}
	require.Equal(t, 1, registered)
}

func TestDialoguePurgeIdle(t *testing.T) {
	ctx := context.Background()
	f := newDialogueFixture(t)
	f.issue(t, "3")
	f.issue(t, "4")

	now := time.UnixMilli(1_700_000_000_000)
	f.dialogues.Now = func() time.Time { return now }

	require.Equal(t, OutcomeAwaitingUsername, f.dialogues.Register(ctx, 1, "33333333").Outcome)
	now = now.Add(time.Hour)
	require.Equal(t, OutcomeAwaitingUsername, f.dialogues.Register(ctx, 2, "44444444").Outcome)

	require.Equal(t, 1, f.dialogues.PurgeIdle(now.Add(-time.Minute)))
	require.Equal(t, domain.DialogueStart, f.dialogues.State(1).Step)
	require.Equal(t, domain.DialogueAwaitingUsername, f.dialogues.State(2).Step)
}

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "registered", OutcomeRegistered.String())
	require.Equal(t, "unknown", Outcome(99).String())
}
