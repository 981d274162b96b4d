package handler

import "time"

type startSessionRequest struct {
	PlannedMinutes int `json:"planned_minutes" validate:"omitempty,gt=0,lte=240"`
}

type gateDecisionResponse struct {
	Allowed        bool   `json:"allowed"`
	State          string `json:"state"`
	SessionsToday  int64  `json:"sessions_today"`
	DailyLimit     int    `json:"daily_limit"`
	UpgradeMessage string `json:"upgrade_message,omitempty"`
}

type sessionResponse struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	PlannedMinutes int        `json:"planned_minutes"`
	ActualMinutes  int        `json:"actual_minutes"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
}

type startSessionResponse struct {
	Gate    gateDecisionResponse `json:"gate"`
	Session *sessionResponse     `json:"session,omitempty"`
}

type listSessionsResponse struct {
	Data []sessionResponse `json:"data"`
}
