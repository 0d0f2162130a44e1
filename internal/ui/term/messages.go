package term

import (
	"blinkrest/internal/core/session"
	"blinkrest/internal/core/stability"
)

// SessionEventMsg carries one event from a session engine.
type SessionEventMsg struct {
	Event session.Event
}

// StopwatchEventMsg carries one event from the stability stopwatch.
type StopwatchEventMsg struct {
	Event stability.Event
}

// EventsClosedMsg is sent once the engine has closed its event channel.
type EventsClosedMsg struct{}

// ErrorMsg reports a failed engine command.
type ErrorMsg struct {
	Err error
}
