package policy

import (
	"errors"
	"fmt"

	"teamboard-server/internal/domain"
)

// ErrForbidden is returned whenever the policy denies an operation. Callers
// must surface it as an authorization failure, never as "not found".
var ErrForbidden = errors.New("forbidden")

// Mode controls whether team roles see sibling teams. In strict mode a team
// role sees only its own team plus Geral; in overview mode it may also
// browse the sibling team read-only.
type Mode string

const (
	ModeStrict   Mode = "strict"
	ModeOverview Mode = "overview"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStrict, ModeOverview:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown policy mode %q", s)
}

type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource is any team-scoped entity the policy can rule on. Both notes and
// events satisfy it.
type Resource interface {
	AuthorID() string
	TeamTag() domain.Team
}

// Policy decides which teams and resources an actor may see or touch. All
// methods are pure functions of their arguments and the configured mode.
type Policy struct {
	mode Mode
}

func New(mode Mode) *Policy {
	return &Policy{mode: mode}
}

func (p *Policy) Mode() Mode {
	return p.mode
}

// ResolveAllowedTeams computes the team scope for a listing. requested is
// nil when the caller did not narrow to a specific team. A nil, nil return
// means no restriction at all (Admin browsing everything).
func (p *Policy) ResolveAllowedTeams(actor *domain.Actor, requested *domain.Team) ([]domain.Team, error) {
	switch {
	case actor.Role == domain.RoleAdmin:
		if requested != nil {
			return []domain.Team{*requested}, nil
		}
		return nil, nil

	case actor.Role == domain.RoleViewer:
		if requested == nil || *requested == domain.TeamGeral {
			return []domain.Team{domain.TeamGeral}, nil
		}
		return nil, fmt.Errorf("%w: viewers may only browse team %q", ErrForbidden, domain.TeamGeral)

	case actor.Role.IsTeamRole():
		home, _ := actor.Role.HomeTeam()
		if requested == nil {
			return []domain.Team{home, domain.TeamGeral}, nil
		}
		switch *requested {
		case home:
			return []domain.Team{home}, nil
		case domain.TeamGeral:
			if p.mode == ModeOverview {
				return []domain.Team{home, domain.TeamGeral}, nil
			}
			return []domain.Team{domain.TeamGeral}, nil
		default:
			// Sibling team: readable only when overview is enabled.
			if p.mode == ModeOverview {
				return []domain.Team{*requested}, nil
			}
			return nil, fmt.Errorf("%w: no permission to browse team %q", ErrForbidden, *requested)
		}
	}

	// The role enum is closed, but external input is not trusted past here.
	return nil, fmt.Errorf("%w: unknown role %q", ErrForbidden, actor.Role)
}

// CanAccess rules on a single fetched resource. Authorship grants full
// access to team roles regardless of the resource's current team.
func (p *Policy) CanAccess(actor *domain.Actor, res Resource, action Action) bool {
	switch {
	case actor.Role == domain.RoleAdmin:
		return true

	case actor.Role == domain.RoleViewer:
		return action == ActionRead && res.TeamTag() == domain.TeamGeral

	case actor.Role.IsTeamRole():
		home, _ := actor.Role.HomeTeam()
		if res.AuthorID() == actor.ID || res.TeamTag() == home || res.TeamTag() == domain.TeamGeral {
			return true
		}
		// Overview widens reads to the sibling team, never writes.
		return action == ActionRead && p.mode == ModeOverview
	}

	return false
}

// CanComment is looser than CanAccess: team roles may comment on notes of
// any team, viewers only on Geral notes.
func (p *Policy) CanComment(actor *domain.Actor, note *domain.Note) bool {
	switch {
	case actor.Role == domain.RoleAdmin:
		return true
	case actor.ID == note.Author:
		return true
	case actor.Role.IsTeamRole():
		return true
	case actor.Role == domain.RoleViewer:
		return note.Team == domain.TeamGeral
	}
	return false
}

// CanRetag reports whether the actor may move a resource to another team.
func (p *Policy) CanRetag(actor *domain.Actor) bool {
	return actor.Role == domain.RoleAdmin
}

// CanAuthorInto reports whether the actor may create a resource under the
// given team. Viewers never author anything.
func (p *Policy) CanAuthorInto(actor *domain.Actor, team domain.Team) bool {
	switch {
	case actor.Role == domain.RoleAdmin:
		return true
	case actor.Role.IsTeamRole():
		home, _ := actor.Role.HomeTeam()
		return team == home || team == domain.TeamGeral
	}
	return false
}
