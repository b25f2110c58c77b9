package repository

import (
	"context"
	"fmt"
	"sort"

	"teamboard-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type EventRepository interface {
	Create(event *domain.Event) error
	FindByID(id string) (*domain.Event, error)
	Find(query domain.EventQuery) ([]*domain.Event, error)
	Update(event *domain.Event) error
	Delete(id string) error
}

type eventRepository struct {
	client *kivik.Client
	dbName string
}

func NewEventRepository(client *kivik.Client, dbName string) EventRepository {
	return &eventRepository{
		client: client,
		dbName: dbName,
	}
}

func eventDocID(id string) string {
	return fmt.Sprintf("event:%s", id)
}

// eventSelector translates the policy-scoped query into a Mango selector.
// eventDate is the field only event documents carry. Timestamps marshal as
// RFC 3339 UTC strings, so range comparison is safe lexicographically.
func eventSelector(q domain.EventQuery) map[string]interface{} {
	dateCond := map[string]interface{}{"$exists": true}
	if !q.From.IsZero() {
		dateCond = map[string]interface{}{
			"$gte": q.From,
			"$lte": q.To,
		}
	}

	selector := map[string]interface{}{
		"eventDate": dateCond,
	}

	if len(q.AllowedTeams) > 0 {
		selector["team"] = map[string]interface{}{"$in": q.AllowedTeams}
	}

	return selector
}

func (r *eventRepository) Create(event *domain.Event) error {
	db := r.client.DB(r.dbName)

	if _, err := db.Put(context.Background(), eventDocID(event.ID), event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *eventRepository) FindByID(id string) (*domain.Event, error) {
	db := r.client.DB(r.dbName)

	var event domain.Event
	if err := db.Get(context.Background(), eventDocID(id)).ScanDoc(&event); err != nil {
		return nil, mapKivikError(err, "failed to find event")
	}
	return &event, nil
}

func (r *eventRepository) Find(query domain.EventQuery) ([]*domain.Event, error) {
	db := r.client.DB(r.dbName)

	rows := db.Find(context.Background(), map[string]interface{}{
		"selector": eventSelector(query),
	})
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.ScanDoc(&event); err != nil {
			continue
		}
		events = append(events, &event)
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].EventDate.Equal(events[j].EventDate) {
			return events[i].EventDate.Before(events[j].EventDate)
		}
		return events[i].EventTime < events[j].EventTime
	})

	return events, nil
}

func (r *eventRepository) Update(event *domain.Event) error {
	db := r.client.DB(r.dbName)
	docID := eventDocID(event.ID)

	var existing map[string]interface{}
	if err := db.Get(context.Background(), docID).ScanDoc(&existing); err != nil {
		return mapKivikError(err, "failed to fetch event for update")
	}

	rev, _ := existing["_rev"].(string)
	doc, err := docWithRev(event, rev)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if _, err := db.Put(context.Background(), docID, doc); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

func (r *eventRepository) Delete(id string) error {
	db := r.client.DB(r.dbName)
	docID := eventDocID(id)

	var existing map[string]interface{}
	if err := db.Get(context.Background(), docID).ScanDoc(&existing); err != nil {
		return mapKivikError(err, "failed to fetch event for delete")
	}

	rev, _ := existing["_rev"].(string)
	if _, err := db.Delete(context.Background(), docID, rev); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
