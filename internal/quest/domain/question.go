package domain

import "time"

// Question is one entry of a category file. CorrectAnswer indexes Variants.
type Question struct {
	Text          string
	Variants      []string
	CorrectAnswer int
}

// QuestionInstance binds a drawn question to an account until it is answered.
// It carries the answer key and must never be serialised to clients; use
// Challenge for that.
type QuestionInstance struct {
	ID       string
	BoundTo  string
	Category string
	Question Question
	IssuedAt time.Time
}

// Challenge is the client-facing projection of a QuestionInstance.
type Challenge struct {
	ID       string
	BoundTo  string
	Category string
	Text     string
	Variants []string
}

func (q QuestionInstance) Challenge() Challenge {
	variants := make([]string, len(q.Question.Variants))
	copy(variants, q.Question.Variants)
	return Challenge{
		ID:       q.ID,
		BoundTo:  q.BoundTo,
		Category: q.Category,
		Text:     q.Question.Text,
		Variants: variants,
	}
}
