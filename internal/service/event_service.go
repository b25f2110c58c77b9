package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"teamboard-server/internal/domain"
	"teamboard-server/internal/policy"
	"teamboard-server/internal/repository"

	"github.com/google/uuid"
)

// eventTimePattern matches 24h HH:MM, with or without a leading zero.
var eventTimePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

type EventService struct {
	repo        repository.EventRepository
	policy      *policy.Policy
	broadcaster Broadcaster
	now         func() time.Time
}

func NewEventService(repo repository.EventRepository, p *policy.Policy, broadcaster Broadcaster) *EventService {
	return &EventService{
		repo:        repo,
		policy:      p,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid event date %q", s)
}

func validEventTime(s string) bool {
	return s == "" || eventTimePattern.MatchString(s)
}

func (s *EventService) Create(actor *domain.Actor, req *domain.CreateEventRequest) (*domain.Event, error) {
	if actor.Role == domain.RoleViewer {
		return nil, fmt.Errorf("%w: viewers cannot create events", ErrForbidden)
	}

	team, err := domain.ParseTeam(req.Team)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !s.policy.CanAuthorInto(actor, team) {
		return nil, fmt.Errorf("%w: no permission to create events for team %q", ErrForbidden, team)
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	eventDate, err := parseEventDate(req.EventDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !validEventTime(req.EventTime) {
		return nil, fmt.Errorf("%w: event time must be HH:MM", ErrInvalidInput)
	}
	notification, err := domain.ParseNotificationType(req.NotificationType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	eventType, err := domain.ParseEventType(req.EventType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now()
	event := &domain.Event{
		ID:               uuid.New().String(),
		Title:            req.Title,
		Description:      req.Description,
		EventDate:        eventDate,
		EventTime:        req.EventTime,
		NotificationType: notification,
		EventType:        eventType,
		Author:           actor.ID,
		AuthorName:       actor.Name,
		Team:             team,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(event); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(MsgEventCreated, event.Team, event)
	}
	return event, nil
}

func (s *EventService) List(actor *domain.Actor, teamView, month, year string) ([]*domain.Event, error) {
	query, err := buildEventQuery(s.policy, actor, teamView, month, year)
	if err != nil {
		return nil, err
	}
	return s.repo.Find(query)
}

func (s *EventService) GetByID(actor *domain.Actor, eventID string) (*domain.Event, error) {
	event, err := s.fetch(eventID)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanAccess(actor, event, policy.ActionRead) {
		return nil, fmt.Errorf("%w: no permission to view this event", ErrForbidden)
	}
	return event, nil
}

// Update applies a partial patch with the same ordering as notes: the
// team-change gate runs first and a rejection discards the whole patch.
func (s *EventService) Update(actor *domain.Actor, eventID string, req *domain.UpdateEventRequest) (*domain.Event, error) {
	event, err := s.fetch(eventID)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanAccess(actor, event, policy.ActionUpdate) {
		return nil, fmt.Errorf("%w: no permission to update this event", ErrForbidden)
	}

	if req.Team != nil && *req.Team != string(event.Team) {
		if !s.policy.CanRetag(actor) {
			return nil, fmt.Errorf("%w: no permission to change the event's team", ErrForbidden)
		}
		team, err := domain.ParseTeam(*req.Team)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		event.Team = team
	}

	if req.EventDate != nil {
		eventDate, err := parseEventDate(*req.EventDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		event.EventDate = eventDate
	}
	if req.EventTime != nil {
		if !validEventTime(*req.EventTime) {
			return nil, fmt.Errorf("%w: event time must be HH:MM", ErrInvalidInput)
		}
		event.EventTime = *req.EventTime
	}
	if req.NotificationType != nil {
		notification, err := domain.ParseNotificationType(*req.NotificationType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		event.NotificationType = notification
	}
	if req.EventType != nil {
		eventType, err := domain.ParseEventType(*req.EventType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		event.EventType = eventType
	}
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	event.UpdatedAt = s.now()

	if err := s.repo.Update(event); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(MsgEventUpdated, event.Team, event)
	}
	return event, nil
}

func (s *EventService) Delete(actor *domain.Actor, eventID string) error {
	event, err := s.fetch(eventID)
	if err != nil {
		return err
	}

	if !s.policy.CanAccess(actor, event, policy.ActionDelete) {
		return fmt.Errorf("%w: no permission to delete this event", ErrForbidden)
	}

	if err := s.repo.Delete(eventID); err != nil {
		return err
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(MsgEventDeleted, event.Team, deletedPayload{ID: event.ID, Team: event.Team})
	}
	return nil
}

func (s *EventService) fetch(eventID string) (*domain.Event, error) {
	event, err := s.repo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: event %s", ErrNotFound, eventID)
		}
		return nil, err
	}
	return event, nil
}
