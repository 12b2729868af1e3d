package domain

import "time"

type DialogueStep int

const (
	DialogueStart DialogueStep = iota
	DialogueAwaitingUsername
)

func (s DialogueStep) String() string {
	switch s {
	case DialogueAwaitingUsername:
		return "awaiting_username"
	default:
		return "start"
	}
}

// DialogueState is the registration progress of one chat conversation.
// Pending is only meaningful while Step is DialogueAwaitingUsername.
type DialogueState struct {
	Step      DialogueStep
	Pending   Registration
	UpdatedAt time.Time
}
