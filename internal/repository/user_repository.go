package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"inotebook-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type userRepository struct {
	client  *kivik.Client
	dbName  string
	timeout time.Duration
}

func NewUserRepository(client *kivik.Client, dbName string, timeout time.Duration) UserRepository {
	return &userRepository{
		client:  client,
		dbName:  dbName,
		timeout: timeout,
	}
}

// docStore is the slice of *kivik.DB that user creation needs; it exists so
// the claim/insert/cleanup sequence can be exercised without a CouchDB.
type docStore interface {
	Put(ctx context.Context, docID string, doc interface{}, options ...kivik.Option) (string, error)
	Delete(ctx context.Context, docID, rev string, options ...kivik.Option) (string, error)
}

// Create inserts the user together with an email claim document. The claim
// doc id is derived from the email, so a concurrent registration with the
// same address loses the Put race and surfaces as ErrEmailTaken. The store
// is the final authority on uniqueness, not the existence pre-check.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return createUserDocs(ctx, r.client.DB(r.dbName), user)
}

func createUserDocs(ctx context.Context, db docStore, user *domain.User) error {
	claimID := fmt.Sprintf("user_email:%s", user.Email)
	claim := map[string]string{"user_id": user.ID}
	claimRev, err := db.Put(ctx, claimID, claim)
	if err != nil {
		if kivik.HTTPStatus(err) == http.StatusConflict {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to claim email: %w", err)
	}

	docID := fmt.Sprintf("user:%s", user.ID)
	rev, err := db.Put(ctx, docID, user)
	if err != nil {
		// Release the claim so a failed insert does not strand the email;
		// best effort, the claim holds no user data.
		if _, delErr := db.Delete(ctx, claimID, claimRev); delErr != nil {
			log.Printf("failed to release email claim %s: %v", claimID, delErr)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.Rev = rev

	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"email": email,
		},
		"limit": 1,
	}

	rows := db.Find(ctx, query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, domain.ErrUserNotFound
	}

	var user domain.User
	if err := rows.ScanDoc(&user); err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("user:%s", id)
	row := db.Get(ctx, docID)

	var user domain.User
	if err := row.ScanDoc(&user); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	return &user, nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
