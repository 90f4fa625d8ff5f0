package service

import (
	"context"
	"log"
	"time"

	"inotebook-server/internal/domain"
	"inotebook-server/internal/repository"
	"inotebook-server/internal/websocket"

	"github.com/google/uuid"
)

type NoteService struct {
	repo      repository.NoteRepository
	wsManager *websocket.Manager
}

func NewNoteService(repo repository.NoteRepository, wsManager *websocket.Manager) *NoteService {
	return &NoteService{
		repo:      repo,
		wsManager: wsManager,
	}
}

func (s *NoteService) Create(ctx context.Context, userID string, req *domain.CreateNoteRequest) (*domain.Note, error) {
	tag := req.Tag
	if tag == "" {
		tag = domain.DefaultTag
	}

	now := time.Now()
	note := &domain.Note{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Tag:         tag,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.broadcast(userID, websocket.TypeNoteCreate, note)

	return note, nil
}

func (s *NoteService) List(ctx context.Context, userID string) ([]*domain.Note, error) {
	return s.repo.FindByOwner(ctx, userID)
}

// Update loads the note, confirms ownership, then applies the supplied
// fields. Empty fields keep their stored values.
func (s *NoteService) Update(ctx context.Context, userID, noteID string, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	note, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if note.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	if req.Title != "" {
		note.Title = req.Title
	}
	if req.Description != "" {
		note.Description = req.Description
	}
	if req.Tag != "" {
		note.Tag = req.Tag
	}
	note.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}

	s.broadcast(userID, websocket.TypeNoteUpdate, note)

	return note, nil
}

// Delete performs the same load-then-check sequence as Update before
// removing the note, and returns the removed record.
func (s *NoteService) Delete(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	note, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if note.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, note); err != nil {
		return nil, err
	}

	s.broadcast(userID, websocket.TypeNoteDelete, note)

	return note, nil
}

func (s *NoteService) broadcast(userID string, msgType websocket.MessageType, note *domain.Note) {
	if s.wsManager == nil {
		return
	}

	msg, err := websocket.NewMessage(msgType, note)
	if err != nil {
		log.Printf("failed to build %s event: %v", msgType, err)
		return
	}

	if err := s.wsManager.BroadcastToUser(userID, msg); err != nil {
		log.Printf("failed to broadcast %s event: %v", msgType, err)
	}
}
