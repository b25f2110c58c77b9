package policy

import (
	"errors"
	"reflect"
	"testing"

	"teamboard-server/internal/domain"
)

func actor(id string, role domain.Role) *domain.Actor {
	return &domain.Actor{ID: id, Name: "user-" + id, Role: role}
}

func teamPtr(t domain.Team) *domain.Team {
	return &t
}

func TestResolveAllowedTeams(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		role      domain.Role
		requested *domain.Team
		want      []domain.Team
		wantErr   bool
	}{
		{
			name: "admin unrestricted",
			mode: ModeStrict,
			role: domain.RoleAdmin,
			want: nil,
		},
		{
			name:      "admin narrowed to one team",
			mode:      ModeStrict,
			role:      domain.RoleAdmin,
			requested: teamPtr(domain.TeamSistemasMV),
			want:      []domain.Team{domain.TeamSistemasMV},
		},
		{
			name: "viewer defaults to geral",
			mode: ModeStrict,
			role: domain.RoleViewer,
			want: []domain.Team{domain.TeamGeral},
		},
		{
			name:      "viewer requesting geral",
			mode:      ModeStrict,
			role:      domain.RoleViewer,
			requested: teamPtr(domain.TeamGeral),
			want:      []domain.Team{domain.TeamGeral},
		},
		{
			name:      "viewer requesting a team is forbidden",
			mode:      ModeStrict,
			role:      domain.RoleViewer,
			requested: teamPtr(domain.TeamSupportTI),
			wantErr:   true,
		},
		{
			name: "team role home visibility",
			mode: ModeStrict,
			role: domain.RoleSupportTI,
			want: []domain.Team{domain.TeamSupportTI, domain.TeamGeral},
		},
		{
			name:      "team role narrowed to own team",
			mode:      ModeStrict,
			role:      domain.RoleSistemasMV,
			requested: teamPtr(domain.TeamSistemasMV),
			want:      []domain.Team{domain.TeamSistemasMV},
		},
		{
			name:      "team role requesting geral in strict mode",
			mode:      ModeStrict,
			role:      domain.RoleSupportTI,
			requested: teamPtr(domain.TeamGeral),
			want:      []domain.Team{domain.TeamGeral},
		},
		{
			name:      "team role requesting geral in overview mode",
			mode:      ModeOverview,
			role:      domain.RoleSupportTI,
			requested: teamPtr(domain.TeamGeral),
			want:      []domain.Team{domain.TeamSupportTI, domain.TeamGeral},
		},
		{
			name:      "sibling team forbidden in strict mode",
			mode:      ModeStrict,
			role:      domain.RoleSupportTI,
			requested: teamPtr(domain.TeamSistemasMV),
			wantErr:   true,
		},
		{
			name:      "sibling team readable in overview mode",
			mode:      ModeOverview,
			role:      domain.RoleSupportTI,
			requested: teamPtr(domain.TeamSistemasMV),
			want:      []domain.Team{domain.TeamSistemasMV},
		},
		{
			name:    "unknown role is forbidden",
			mode:    ModeStrict,
			role:    domain.Role("Intern"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.mode)
			got, err := p.ResolveAllowedTeams(actor("u1", tt.role), tt.requested)

			if tt.wantErr {
				if !errors.Is(err, ErrForbidden) {
					t.Fatalf("expected ErrForbidden, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("allowed teams = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveAllowedTeamsIsPure(t *testing.T) {
	p := New(ModeStrict)
	a := actor("u1", domain.RoleSupportTI)

	first, err1 := p.ResolveAllowedTeams(a, nil)
	second, err2 := p.ResolveAllowedTeams(a, nil)

	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs gave different outputs: %v vs %v", first, second)
	}
}

func TestCanAccess(t *testing.T) {
	note := func(author string, team domain.Team) *domain.Note {
		return &domain.Note{ID: "n1", Author: author, Team: team}
	}

	tests := []struct {
		name   string
		mode   Mode
		actor  *domain.Actor
		res    Resource
		action Action
		want   bool
	}{
		{
			name:   "admin updates anything",
			mode:   ModeStrict,
			actor:  actor("a1", domain.RoleAdmin),
			res:    note("other", domain.TeamSistemasMV),
			action: ActionUpdate,
			want:   true,
		},
		{
			name:   "viewer reads geral",
			mode:   ModeStrict,
			actor:  actor("v1", domain.RoleViewer),
			res:    note("other", domain.TeamGeral),
			action: ActionRead,
			want:   true,
		},
		{
			name:   "viewer cannot read team note",
			mode:   ModeStrict,
			actor:  actor("v1", domain.RoleViewer),
			res:    note("other", domain.TeamSupportTI),
			action: ActionRead,
			want:   false,
		},
		{
			name:   "viewer never updates",
			mode:   ModeStrict,
			actor:  actor("v1", domain.RoleViewer),
			res:    note("other", domain.TeamGeral),
			action: ActionUpdate,
			want:   false,
		},
		{
			name:   "author deletes own note parked in another team",
			mode:   ModeStrict,
			actor:  actor("u1", domain.RoleSupportTI),
			res:    note("u1", domain.TeamSistemasMV),
			action: ActionDelete,
			want:   true,
		},
		{
			name:   "team role updates home team note",
			mode:   ModeStrict,
			actor:  actor("u1", domain.RoleSupportTI),
			res:    note("other", domain.TeamSupportTI),
			action: ActionUpdate,
			want:   true,
		},
		{
			name:   "team role deletes geral note",
			mode:   ModeStrict,
			actor:  actor("u1", domain.RoleSistemasMV),
			res:    note("other", domain.TeamGeral),
			action: ActionDelete,
			want:   true,
		},
		{
			name:   "team role cannot touch sibling team note",
			mode:   ModeStrict,
			actor:  actor("u1", domain.RoleSupportTI),
			res:    note("other", domain.TeamSistemasMV),
			action: ActionUpdate,
			want:   false,
		},
		{
			name:   "overview reads sibling team note",
			mode:   ModeOverview,
			actor:  actor("u1", domain.RoleSupportTI),
			res:    note("other", domain.TeamSistemasMV),
			action: ActionRead,
			want:   true,
		},
		{
			name:   "overview never widens writes",
			mode:   ModeOverview,
			actor:  actor("u1", domain.RoleSupportTI),
			res:    note("other", domain.TeamSistemasMV),
			action: ActionDelete,
			want:   false,
		},
		{
			name:   "unknown role denied",
			mode:   ModeStrict,
			actor:  actor("u1", domain.Role("Intern")),
			res:    note("other", domain.TeamGeral),
			action: ActionRead,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.mode)
			if got := p.CanAccess(tt.actor, tt.res, tt.action); got != tt.want {
				t.Errorf("CanAccess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAccessEvents(t *testing.T) {
	p := New(ModeStrict)
	ev := &domain.Event{ID: "e1", Author: "owner", Team: domain.TeamSupportTI}

	if !p.CanAccess(actor("owner", domain.RoleSistemasMV), ev, ActionDelete) {
		t.Error("author should delete own event regardless of its team")
	}
	if p.CanAccess(actor("someone", domain.RoleSistemasMV), ev, ActionDelete) {
		t.Error("non-author from the sibling team should not delete the event")
	}
}

func TestCanComment(t *testing.T) {
	p := New(ModeStrict)

	geralNote := &domain.Note{ID: "n1", Author: "owner", Team: domain.TeamGeral}
	teamNote := &domain.Note{ID: "n2", Author: "owner", Team: domain.TeamSistemasMV}

	tests := []struct {
		name  string
		actor *domain.Actor
		note  *domain.Note
		want  bool
	}{
		{"admin comments anywhere", actor("a1", domain.RoleAdmin), teamNote, true},
		{"author comments own note", actor("owner", domain.RoleViewer), teamNote, true},
		{"team role comments cross-team", actor("u1", domain.RoleSupportTI), teamNote, true},
		{"team role comments geral", actor("u1", domain.RoleSistemasMV), geralNote, true},
		{"viewer comments geral", actor("v1", domain.RoleViewer), geralNote, true},
		{"viewer cannot comment team note", actor("v1", domain.RoleViewer), teamNote, false},
		{"unknown role denied", actor("u1", domain.Role("Intern")), geralNote, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.CanComment(tt.actor, tt.note); got != tt.want {
				t.Errorf("CanComment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanRetag(t *testing.T) {
	p := New(ModeStrict)

	if !p.CanRetag(actor("a1", domain.RoleAdmin)) {
		t.Error("admin should be able to retag")
	}
	for _, role := range []domain.Role{domain.RoleSupportTI, domain.RoleSistemasMV, domain.RoleViewer} {
		if p.CanRetag(actor("u1", role)) {
			t.Errorf("role %s should not be able to retag", role)
		}
	}
}

func TestCanAuthorInto(t *testing.T) {
	p := New(ModeStrict)

	tests := []struct {
		name string
		role domain.Role
		team domain.Team
		want bool
	}{
		{"admin into any team", domain.RoleAdmin, domain.TeamSistemasMV, true},
		{"team role into home team", domain.RoleSupportTI, domain.TeamSupportTI, true},
		{"team role into geral", domain.RoleSistemasMV, domain.TeamGeral, true},
		{"team role into sibling team", domain.RoleSupportTI, domain.TeamSistemasMV, false},
		{"viewer never authors", domain.RoleViewer, domain.TeamGeral, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.CanAuthorInto(actor("u1", tt.role), tt.team); got != tt.want {
				t.Errorf("CanAuthorInto() = %v, want %v", got, tt.want)
			}
		})
	}
}
