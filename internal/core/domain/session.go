package domain

import (
	"errors"
	"time"
)

// SessionStatus represents the lifecycle state of a focus session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

// validSessionTransitions defines the allowed state machine transitions.
var validSessionTransitions = map[SessionStatus][]SessionStatus{
	SessionActive: {SessionCompleted, SessionAbandoned},
}

var ErrInvalidTransition = errors.New("invalid session transition")
var ErrSessionNotFound = errors.New("session not found")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	for _, allowed := range validSessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// FocusSession is a single timed focus block owned by one user.
type FocusSession struct {
	ID             string        `json:"id" bson:"_id,omitempty"`
	UserID         string        `json:"user_id" bson:"user_id"`
	Status         SessionStatus `json:"status" bson:"status"`
	PlannedMinutes int           `json:"planned_minutes" bson:"planned_minutes"`
	ActualMinutes  int           `json:"actual_minutes" bson:"actual_minutes"`
	StartedAt      time.Time     `json:"started_at" bson:"started_at"`
	EndedAt        *time.Time    `json:"ended_at,omitempty" bson:"ended_at,omitempty"`
}

// GateState is the session-limit gate's decision state.
// A check moves idle → checking → allowed|blocked; a failed check is
// discarded and the next attempt starts again from idle.
type GateState string

const (
	GateIdle     GateState = "idle"
	GateChecking GateState = "checking"
	GateAllowed  GateState = "allowed"
	GateBlocked  GateState = "blocked"
)

var validGateTransitions = map[GateState][]GateState{
	GateIdle:     {GateChecking},
	GateChecking: {GateAllowed, GateBlocked},
}

// CanTransitionTo reports whether the gate may move from the current state to next.
func (g GateState) CanTransitionTo(next GateState) bool {
	for _, allowed := range validGateTransitions[g] {
		if allowed == next {
			return true
		}
	}
	return false
}

// GateDecision is the outcome of a session-start check. The check itself
// never mutates usage; charging the quota happens only when the caller
// actually starts a session.
type GateDecision struct {
	State          GateState `json:"state"`
	SessionsToday  int64     `json:"sessions_today"`
	DailyLimit     int       `json:"daily_limit"` // 0 = unlimited
	UpgradeMessage string    `json:"upgrade_message,omitempty"`
}

// Allowed reports whether the decision permits starting a session.
func (d GateDecision) Allowed() bool {
	return d.State == GateAllowed
}
