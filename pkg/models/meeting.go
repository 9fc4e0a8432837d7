package models

import "time"

const (
	TitleInstant   = "Instant Meeting"
	TitleScheduled = "Scheduled Meeting"
)

type Meeting struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	MeetLink  string    `json:"meetLink"`
	IsInstant bool      `json:"isInstant"`
}

type ScheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type EventRequest struct {
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	Duration  int       `json:"duration"`
}

type EventResponse struct {
	MeetLink string `json:"meetLink"`
}
