package domain

import "time"

type User struct {
	ID        string
	CardHash  string // lowercase hex sha256 of the physical card
	Username  string
	CreatedAt time.Time
}
