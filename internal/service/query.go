package service

import (
	"fmt"
	"strconv"
	"time"

	"teamboard-server/internal/domain"
	"teamboard-server/internal/policy"
)

// TagAll is the sentinel tag filter meaning "no tag restriction".
const TagAll = "all"

// resolveScope turns an optional teamView parameter into the allowed-team
// set for the actor. A team the actor cannot see fails fast with
// ErrForbidden; a string outside the team enum is ErrInvalidInput.
func resolveScope(p *policy.Policy, actor *domain.Actor, teamView string) ([]domain.Team, error) {
	var requested *domain.Team
	if teamView != "" {
		team, err := domain.ParseTeam(teamView)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		requested = &team
	}

	teams, err := p.ResolveAllowedTeams(actor, requested)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrForbidden, err)
	}
	return teams, nil
}

func buildNoteQuery(p *policy.Policy, actor *domain.Actor, teamView, search, tag string) (domain.NoteQuery, error) {
	teams, err := resolveScope(p, actor, teamView)
	if err != nil {
		return domain.NoteQuery{}, err
	}

	if tag == TagAll {
		tag = ""
	}

	return domain.NoteQuery{
		AllowedTeams: teams,
		Search:       search,
		Tag:          tag,
	}, nil
}

func buildEventQuery(p *policy.Policy, actor *domain.Actor, teamView, monthStr, yearStr string) (domain.EventQuery, error) {
	teams, err := resolveScope(p, actor, teamView)
	if err != nil {
		return domain.EventQuery{}, err
	}

	query := domain.EventQuery{AllowedTeams: teams}

	if monthStr == "" && yearStr == "" {
		return query, nil
	}
	if monthStr == "" || yearStr == "" {
		return domain.EventQuery{}, fmt.Errorf("%w: both month and year are required to filter by period", ErrInvalidInput)
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return domain.EventQuery{}, fmt.Errorf("%w: invalid month %q", ErrInvalidInput, monthStr)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 {
		return domain.EventQuery{}, fmt.Errorf("%w: invalid year %q", ErrInvalidInput, yearStr)
	}

	query.From = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	query.To = query.From.AddDate(0, 1, 0).Add(-time.Millisecond)
	return query, nil
}
