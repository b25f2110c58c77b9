package repository

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"teamboard-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type NoteRepository interface {
	Create(note *domain.Note) error
	FindByID(id string) (*domain.Note, error)
	Find(query domain.NoteQuery) ([]*domain.Note, error)
	Update(note *domain.Note) error
	Delete(id string) error
}

type noteRepository struct {
	client *kivik.Client
	dbName string
}

func NewNoteRepository(client *kivik.Client, dbName string) NoteRepository {
	return &noteRepository{
		client: client,
		dbName: dbName,
	}
}

func noteDocID(id string) string {
	return fmt.Sprintf("note:%s", id)
}

// noteSelector translates the policy-scoped query into a Mango selector.
// versionHistory is the field only note documents carry, so requiring it
// keeps user and event documents out of the result set.
func noteSelector(q domain.NoteQuery) map[string]interface{} {
	selector := map[string]interface{}{
		"versionHistory": map[string]interface{}{"$exists": true},
	}

	if len(q.AllowedTeams) > 0 {
		selector["team"] = map[string]interface{}{"$in": q.AllowedTeams}
	}

	if q.Tag != "" {
		selector["tags"] = map[string]interface{}{
			"$elemMatch": map[string]interface{}{"$eq": q.Tag},
		}
	}

	if q.Search != "" {
		pattern := "(?i)" + regexp.QuoteMeta(q.Search)
		regex := map[string]interface{}{"$regex": pattern}
		selector["$or"] = []map[string]interface{}{
			{"title": regex},
			{"content": regex},
			{"authorName": regex},
			{"tags": map[string]interface{}{"$elemMatch": regex}},
		}
	}

	return selector
}

func (r *noteRepository) Create(note *domain.Note) error {
	db := r.client.DB(r.dbName)

	if _, err := db.Put(context.Background(), noteDocID(note.ID), note); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (r *noteRepository) FindByID(id string) (*domain.Note, error) {
	db := r.client.DB(r.dbName)

	var note domain.Note
	if err := db.Get(context.Background(), noteDocID(id)).ScanDoc(&note); err != nil {
		return nil, mapKivikError(err, "failed to find note")
	}
	return &note, nil
}

func (r *noteRepository) Find(query domain.NoteQuery) ([]*domain.Note, error) {
	db := r.client.DB(r.dbName)

	rows := db.Find(context.Background(), map[string]interface{}{
		"selector": noteSelector(query),
	})
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.ScanDoc(&note); err != nil {
			continue
		}
		notes = append(notes, &note)
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})

	return notes, nil
}

func (r *noteRepository) Update(note *domain.Note) error {
	db := r.client.DB(r.dbName)
	docID := noteDocID(note.ID)

	var existing map[string]interface{}
	if err := db.Get(context.Background(), docID).ScanDoc(&existing); err != nil {
		return mapKivikError(err, "failed to fetch note for update")
	}

	rev, _ := existing["_rev"].(string)
	doc, err := docWithRev(note, rev)
	if err != nil {
		return fmt.Errorf("failed to encode note: %w", err)
	}

	if _, err := db.Put(context.Background(), docID, doc); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return nil
}

func (r *noteRepository) Delete(id string) error {
	db := r.client.DB(r.dbName)
	docID := noteDocID(id)

	var existing map[string]interface{}
	if err := db.Get(context.Background(), docID).ScanDoc(&existing); err != nil {
		return mapKivikError(err, "failed to fetch note for delete")
	}

	rev, _ := existing["_rev"].(string)
	if _, err := db.Delete(context.Background(), docID, rev); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}
