package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"inotebook-server/internal/domain"
	"inotebook-server/internal/middleware"
	"inotebook-server/internal/service"

	"github.com/gorilla/mux"
)

const testSecret = "handler-test-secret"

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	return err == nil, nil
}

type memNoteRepo struct {
	mu    sync.Mutex
	notes map[string]*domain.Note
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{notes: make(map[string]*domain.Note)}
}

func (m *memNoteRepo) Create(_ context.Context, note *domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *note
	m.notes[note.ID] = &copied
	return nil
}

func (m *memNoteRepo) FindByID(_ context.Context, id string) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.notes[id]; ok {
		copied := *n
		return &copied, nil
	}
	return nil, domain.ErrNoteNotFound
}

func (m *memNoteRepo) FindByOwner(_ context.Context, userID string) ([]*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var notes []*domain.Note
	for _, n := range m.notes {
		if n.UserID == userID {
			copied := *n
			notes = append(notes, &copied)
		}
	}
	return notes, nil
}

func (m *memNoteRepo) Update(_ context.Context, note *domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[note.ID]; !ok {
		return domain.ErrNoteNotFound
	}
	copied := *note
	m.notes[note.ID] = &copied
	return nil
}

func (m *memNoteRepo) Delete(_ context.Context, note *domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[note.ID]; !ok {
		return domain.ErrNoteNotFound
	}
	delete(m.notes, note.ID)
	return nil
}

// newTestRouter wires the real handlers, services and middleware over
// in-memory stores, mirroring the route table in cmd/server.
func newTestRouter() *mux.Router {
	authService := service.NewAuthService(newMemUserRepo(), testSecret, 24*time.Hour, 7*24*time.Hour)
	noteService := service.NewNoteService(newMemNoteRepo(), nil)

	authHandler := NewAuthHandler(authService)
	noteHandler := NewNoteHandler(noteService)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/createuser", authHandler.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(testSecret))

	protected.HandleFunc("/auth/getuser", authHandler.GetUser).Methods(http.MethodPost)
	protected.HandleFunc("/notes/fetchallnotes", noteHandler.FetchAll).Methods(http.MethodGet)
	protected.HandleFunc("/notes/addnote", noteHandler.Add).Methods(http.MethodPost)
	protected.HandleFunc("/notes/updatenote/{id}", noteHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/notes/deletenote/{id}", noteHandler.Delete).Methods(http.MethodDelete)

	return r
}
