package main

// Exit codes for the planner CLI.
const (
	ExitOK             = 0 // Operation produced text.
	ExitInvalidArgs    = 1 // Invalid flags or trip preferences.
	ExitGenerationFail = 2 // The AI service failed; nothing was written.
)

type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }
