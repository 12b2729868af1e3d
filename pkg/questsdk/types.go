package questsdk

// UserResponse is returned by the user lookup endpoints.
type UserResponse struct {
	UUID     string `json:"uuid"`
	Username string `json:"username"`
	CardHash string `json:"card_hash"`
}

// RegistrationResponse is returned by POST /user/register/{sha256}. Token is
// presented to the bot with /register.
type RegistrationResponse struct {
	Token  string `json:"token"`
	BotURL string `json:"bot_url"`
}

// QuestionResponse is a question challenge. It never carries the answer.
type QuestionResponse struct {
	ID       string   `json:"id"`
	BoundTo  string   `json:"bound_to"`
	Category string   `json:"category"`
	Question string   `json:"question"`
	Variants []string `json:"variants"`
}

// AnswerResponse is the verdict for a submitted answer.
type AnswerResponse struct {
	Correct       bool `json:"correct"`
	CorrectAnswer int  `json:"correct_answer"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// HealthResponse is used by /livez and /readyz; only readyz fills Checks.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database     string `json:"database"`
	QuestionBank string `json:"question_bank"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
