package repository

import (
	"testing"
	"time"

	"teamboard-server/internal/domain"
)

func TestNoteSelector(t *testing.T) {
	q := domain.NoteQuery{
		AllowedTeams: []domain.Team{domain.TeamSupportTI, domain.TeamGeral},
		Search:       "c++ (draft)",
		Tag:          "infra",
	}

	selector := noteSelector(q)

	discriminator, ok := selector["versionHistory"].(map[string]interface{})
	if !ok || discriminator["$exists"] != true {
		t.Errorf("versionHistory discriminator missing: %v", selector["versionHistory"])
	}

	teamCond, ok := selector["team"].(map[string]interface{})
	if !ok {
		t.Fatalf("team condition missing")
	}
	teams, ok := teamCond["$in"].([]domain.Team)
	if !ok || len(teams) != 2 {
		t.Errorf("team $in = %v", teamCond["$in"])
	}

	tagCond, ok := selector["tags"].(map[string]interface{})
	if !ok {
		t.Fatalf("tags condition missing")
	}
	elemMatch := tagCond["$elemMatch"].(map[string]interface{})
	if elemMatch["$eq"] != "infra" {
		t.Errorf("tag $eq = %v", elemMatch["$eq"])
	}

	or, ok := selector["$or"].([]map[string]interface{})
	if !ok || len(or) != 4 {
		t.Fatalf("$or = %v", selector["$or"])
	}
	// The search term must be regex-escaped and case-insensitive.
	titleRegex := or[0]["title"].(map[string]interface{})
	want := `(?i)c\+\+ \(draft\)`
	if titleRegex["$regex"] != want {
		t.Errorf("title $regex = %q, want %q", titleRegex["$regex"], want)
	}
}

func TestNoteSelectorDefaults(t *testing.T) {
	selector := noteSelector(domain.NoteQuery{AllowedTeams: []domain.Team{domain.TeamGeral}})

	if _, ok := selector["$or"]; ok {
		t.Error("empty search must not emit $or")
	}
	if _, ok := selector["tags"]; ok {
		t.Error("empty tag must not emit tags condition")
	}
}

func TestEventSelector(t *testing.T) {
	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Millisecond)

	selector := eventSelector(domain.EventQuery{
		AllowedTeams: []domain.Team{domain.TeamSistemasMV},
		From:         from,
		To:           to,
	})

	dateCond, ok := selector["eventDate"].(map[string]interface{})
	if !ok {
		t.Fatalf("eventDate condition missing")
	}
	if dateCond["$gte"] != from || dateCond["$lte"] != to {
		t.Errorf("date window = %v", dateCond)
	}

	// Without a window the condition degrades to the type discriminator.
	selector = eventSelector(domain.EventQuery{AllowedTeams: []domain.Team{domain.TeamSistemasMV}})
	dateCond = selector["eventDate"].(map[string]interface{})
	if dateCond["$exists"] != true {
		t.Errorf("eventDate discriminator = %v", dateCond)
	}
}
