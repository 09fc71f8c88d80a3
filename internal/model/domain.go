package model

import "time"

// User is an operator account allowed to drive the lock controller.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actions recorded against a command.
const (
	ActionLock   = "lock"
	ActionUnlock = "unlock"
	ActionCustom = "custom"
)

// CommandRecord is one dispatched command and its outcome as persisted in
// command history.
type CommandRecord struct {
	ID         int       `json:"id"`
	UserID     *int      `json:"user_id"`
	Action     string    `json:"action"`
	Method     string    `json:"method"`
	URL        string    `json:"url"`
	Payload    *string   `json:"payload"`
	Success    bool      `json:"success"`
	Result     *string   `json:"result"`
	DurationMs int       `json:"duration_ms"`
	ExecutedAt time.Time `json:"executed_at"`
}
