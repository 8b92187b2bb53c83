// Package auth implements the registration and login gate in front of the
// Users collection. There is no token exchange: login is a linear scan of
// the fetched collection for a matching email and secret, which is all the
// spreadsheet backend supports.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamtask/teamtask/internal/logging"
	"github.com/teamtask/teamtask/internal/model"
)

// UserStore is the slice of the remote store the gate needs.
type UserStore interface {
	Users(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, user model.User) error
}

var (
	// ErrDuplicateEmail indicates a registration attempt with an email that
	// already exists in the Users collection (case-sensitive exact match).
	ErrDuplicateEmail = errors.New("email is already registered")

	// ErrNotAuthorized indicates the credentials matched a user whose
	// registration has not been approved (or was rejected).
	ErrNotAuthorized = errors.New("account is not yet approved")
)

// Gate performs registration and login against a UserStore.
type Gate struct {
	store UserStore
	log   *logging.Logger
}

// NewGate creates a Gate. A nil logger defaults to a no-op logger.
func NewGate(store UserStore, log *logging.Logger) *Gate {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Gate{store: store, log: log.WithComponent("auth")}
}

// Register creates a new user. The first user registered into an empty
// collection becomes the active admin; everyone after that is a pending
// member until an admin approves them.
//
// The email check reads the current snapshot and the create that follows is
// not atomic with it, so two racing registrations can both pass the check.
// The backing store has no transactional primitive to close that window;
// it is accepted for the small teams this tool targets.
func (g *Gate) Register(ctx context.Context, name, email, secret string) (*model.User, error) {
	if name == "" || email == "" || secret == "" {
		return nil, fmt.Errorf("name, email and secret are all required")
	}

	users, err := g.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash secret: %w", err)
	}

	user := model.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Secret:    string(hash),
		Role:      model.RoleMember,
		Status:    model.UserPending,
		CreatedAt: time.Now().UnixMilli(),
	}
	if len(users) == 0 {
		user.Role = model.RoleAdmin
		user.Status = model.UserActive
	}

	if err := g.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	g.log.Info("user registered", "user_id", user.ID, "role", string(user.Role), "status", string(user.Status))
	return &user, nil
}

// Login fetches the Users collection and looks for a record matching both
// email and secret. No match returns (nil, nil): a wrong email and a wrong
// secret are deliberately indistinguishable to the caller. A match whose
// status is not active fails with ErrNotAuthorized unless the user is an
// admin, who always passes.
func (g *Gate) Login(ctx context.Context, email, secret string) (*model.User, error) {
	users, err := g.store.Users(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		u := &users[i]
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Secret), []byte(secret)) != nil {
			continue
		}
		if !u.CanLogin() {
			return nil, ErrNotAuthorized
		}
		g.log.Info("login succeeded", "user_id", u.ID)
		return u, nil
	}
	return nil, nil
}
