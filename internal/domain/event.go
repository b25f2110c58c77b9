package domain

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotifyNone       NotificationType = "none"
	NotifyHourBefore NotificationType = "hourBefore"
	NotifyDayBefore  NotificationType = "dayBefore"
)

func ParseNotificationType(s string) (NotificationType, error) {
	switch NotificationType(s) {
	case NotifyNone, NotifyHourBefore, NotifyDayBefore:
		return NotificationType(s), nil
	}
	return "", fmt.Errorf("unknown notification type %q", s)
}

type EventType string

const (
	EventGeneral  EventType = "general"
	EventBirthday EventType = "birthday"
	EventReminder EventType = "reminder"
)

func ParseEventType(s string) (EventType, error) {
	switch EventType(s) {
	case EventGeneral, EventBirthday, EventReminder:
		return EventType(s), nil
	}
	return "", fmt.Errorf("unknown event type %q", s)
}

type Event struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	EventDate        time.Time        `json:"eventDate"`
	EventTime        string           `json:"eventTime,omitempty"`
	NotificationType NotificationType `json:"notificationType"`
	EventType        EventType        `json:"eventType"`
	Author           string           `json:"author"`
	AuthorName       string           `json:"authorName"`
	Team             Team             `json:"team"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

func (e *Event) AuthorID() string { return e.Author }

func (e *Event) TeamTag() Team { return e.Team }

type CreateEventRequest struct {
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description"`
	EventDate        string `json:"eventDate" validate:"required"`
	EventTime        string `json:"eventTime"`
	NotificationType string `json:"notificationType" validate:"required"`
	EventType        string `json:"eventType" validate:"required"`
	Team             string `json:"team" validate:"required"`
}

// UpdateEventRequest carries a partial patch: nil fields are left untouched.
type UpdateEventRequest struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	EventDate        *string `json:"eventDate"`
	EventTime        *string `json:"eventTime"`
	NotificationType *string `json:"notificationType"`
	EventType        *string `json:"eventType"`
	Team             *string `json:"team"`
}

// EventQuery is the storage-facing predicate for event listings. From and To
// bound eventDate inclusively when both are set.
type EventQuery struct {
	AllowedTeams []Team
	From         time.Time
	To           time.Time
}
