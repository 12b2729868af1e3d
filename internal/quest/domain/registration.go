package domain

import "time"

// Registration is an outstanding one-time registration token. The token shown
// to the participant is Prefix, the first eight characters of CardHash.
type Registration struct {
	CardHash  string
	PendingID string // account id reserved for the user this token will create
	Prefix    string
	CreatedAt time.Time
}
