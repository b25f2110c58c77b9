package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"teamboard-server/internal/domain"
	"teamboard-server/internal/policy"
	"teamboard-server/internal/repository"

	"github.com/google/uuid"
)

type NoteService struct {
	repo        repository.NoteRepository
	policy      *policy.Policy
	broadcaster Broadcaster
	now         func() time.Time
}

func NewNoteService(repo repository.NoteRepository, p *policy.Policy, broadcaster Broadcaster) *NoteService {
	return &NoteService{
		repo:        repo,
		policy:      p,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

func (s *NoteService) Create(actor *domain.Actor, req *domain.CreateNoteRequest) (*domain.Note, error) {
	if actor.Role == domain.RoleViewer {
		return nil, fmt.Errorf("%w: viewers cannot create notes", ErrForbidden)
	}

	team, err := domain.ParseTeam(req.Team)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !s.policy.CanAuthorInto(actor, team) {
		return nil, fmt.Errorf("%w: no permission to create notes for team %q", ErrForbidden, team)
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	}

	now := s.now()
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	note := &domain.Note{
		ID:         uuid.New().String(),
		Title:      req.Title,
		Content:    req.Content,
		Author:     actor.ID,
		AuthorName: actor.Name,
		Team:       team,
		Tags:       tags,
		VersionHistory: []domain.VersionEntry{{
			Content:    req.Content,
			EditedAt:   now,
			EditorID:   actor.ID,
			EditorName: actor.Name,
		}},
		Comments:  []domain.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(note); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(MsgNoteCreated, note.Team, note)
	}
	return note, nil
}

func (s *NoteService) List(actor *domain.Actor, teamView, search, tag string) ([]*domain.Note, error) {
	query, err := buildNoteQuery(s.policy, actor, teamView, search, tag)
	if err != nil {
		return nil, err
	}
	return s.repo.Find(query)
}

func (s *NoteService) GetByID(actor *domain.Actor, noteID string) (*domain.Note, error) {
	note, err := s.fetch(noteID)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanAccess(actor, note, policy.ActionRead) {
		return nil, fmt.Errorf("%w: no permission to view this note", ErrForbidden)
	}
	return note, nil
}

// Update applies a partial patch. The team-change gate runs before anything
// else touches the note, so a rejected retag leaves every field untouched.
func (s *NoteService) Update(actor *domain.Actor, noteID string, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	note, err := s.fetch(noteID)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanAccess(actor, note, policy.ActionUpdate) {
		return nil, fmt.Errorf("%w: no permission to update this note", ErrForbidden)
	}

	if req.Team != nil && *req.Team != string(note.Team) {
		if !s.policy.CanRetag(actor) {
			return nil, fmt.Errorf("%w: no permission to change the note's team", ErrForbidden)
		}
		team, err := domain.ParseTeam(*req.Team)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		note.Team = team
	}

	now := s.now()
	if req.Content != nil && *req.Content != note.Content {
		note.VersionHistory = append(note.VersionHistory, domain.VersionEntry{
			Content:    note.Content,
			EditedAt:   now,
			EditorID:   actor.ID,
			EditorName: actor.Name,
		})
		note.Content = *req.Content
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Tags != nil {
		note.Tags = *req.Tags
	}
	note.UpdatedAt = now

	if err := s.repo.Update(note); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(MsgNoteUpdated, note.Team, note)
	}
	return note, nil
}

func (s *NoteService) Delete(actor *domain.Actor, noteID string) error {
	note, err := s.fetch(noteID)
	if err != nil {
		return err
	}

	if !s.policy.CanAccess(actor, note, policy.ActionDelete) {
		return fmt.Errorf("%w: no permission to delete this note", ErrForbidden)
	}

	if err := s.repo.Delete(noteID); err != nil {
		return err
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(MsgNoteDeleted, note.Team, deletedPayload{ID: note.ID, Team: note.Team})
	}
	return nil
}

// AddComment rejects blank content before touching storage, so the empty
// case is indistinguishable whether or not the note exists.
func (s *NoteService) AddComment(actor *domain.Actor, noteID, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content cannot be empty", ErrInvalidInput)
	}

	note, err := s.fetch(noteID)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanComment(actor, note) {
		return nil, fmt.Errorf("%w: no permission to comment on this note", ErrForbidden)
	}

	now := s.now()
	comment := domain.Comment{
		ID:         uuid.New().String(),
		Content:    content,
		Author:     actor.ID,
		AuthorName: actor.Name,
		CreatedAt:  now,
	}

	note.Comments = append(note.Comments, comment)
	note.UpdatedAt = now

	if err := s.repo.Update(note); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(MsgCommentAdded, note.Team, note)
	}
	return &comment, nil
}

func (s *NoteService) fetch(noteID string) (*domain.Note, error) {
	note, err := s.repo.FindByID(noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: note %s", ErrNotFound, noteID)
		}
		return nil, err
	}
	return note, nil
}
