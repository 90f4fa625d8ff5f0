package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"inotebook-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	FindByOwner(ctx context.Context, userID string) ([]*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, note *domain.Note) error
}

type noteRepository struct {
	client  *kivik.Client
	dbName  string
	timeout time.Duration
}

func NewNoteRepository(client *kivik.Client, dbName string, timeout time.Duration) NoteRepository {
	return &noteRepository{
		client:  client,
		dbName:  dbName,
		timeout: timeout,
	}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("note:%s", note.ID)
	rev, err := db.Put(ctx, docID, note)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	note.Rev = rev

	return nil
}

func (r *noteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("note:%s", id)
	row := db.Get(ctx, docID)

	var note domain.Note
	if err := row.ScanDoc(&note); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return &note, nil
}

// FindByOwner selects on user_id plus a title field so email claim docs,
// which also carry a user_id, never match.
func (r *noteRepository) FindByOwner(ctx context.Context, userID string) ([]*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"user_id": userID,
			"title":   map[string]interface{}{"$exists": true},
		},
	}

	rows := db.Find(ctx, query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
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

	return notes, nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("note:%s", note.ID)
	rev, err := db.Put(ctx, docID, note)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	note.Rev = rev

	return nil
}

func (r *noteRepository) Delete(ctx context.Context, note *domain.Note) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("note:%s", note.ID)
	if _, err := db.Delete(ctx, docID, note.Rev); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}
