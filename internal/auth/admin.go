package auth

import (
	"context"
	"errors"

	"github.com/teamtask/teamtask/internal/logging"
	"github.com/teamtask/teamtask/internal/model"
)

// MembershipStore is the slice of the remote store membership admin needs.
type MembershipStore interface {
	Users(ctx context.Context) ([]model.User, error)
	UpdateUserStatus(ctx context.Context, userID string, status model.UserStatus) error
}

var (
	// ErrNotAdmin indicates the acting user lacks the admin role.
	ErrNotAdmin = errors.New("only an admin can manage registrations")

	// ErrUnknownUser indicates the target user does not exist.
	ErrUnknownUser = errors.New("no such user")
)

// Admin approves or rejects pending registrations on behalf of an admin
// user.
type Admin struct {
	store MembershipStore
	actor *model.User
	log   *logging.Logger
}

// NewAdmin creates an Admin acting as the given user. The role check
// happens per call, not here, so a stale actor cannot be minted into
// standing authority.
func NewAdmin(store MembershipStore, actor *model.User, log *logging.Logger) *Admin {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Admin{store: store, actor: actor, log: log.WithComponent("auth").WithUser(actor.ID)}
}

// Pending lists users awaiting a decision.
func (a *Admin) Pending(ctx context.Context) ([]model.User, error) {
	if !a.actor.IsAdmin() {
		return nil, ErrNotAdmin
	}
	users, err := a.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	var pending []model.User
	for _, u := range users {
		if u.Status == model.UserPending {
			pending = append(pending, u)
		}
	}
	return pending, nil
}

// Approve activates a pending registration. Approving a user who is
// already active is a no-op.
func (a *Admin) Approve(ctx context.Context, userID string) error {
	return a.decide(ctx, userID, model.UserActive)
}

// Reject marks a pending registration rejected, which keeps the row in
// the collection but permanently blocks login.
func (a *Admin) Reject(ctx context.Context, userID string) error {
	return a.decide(ctx, userID, model.UserRejected)
}

func (a *Admin) decide(ctx context.Context, userID string, status model.UserStatus) error {
	if !a.actor.IsAdmin() {
		return ErrNotAdmin
	}
	users, err := a.store.Users(ctx)
	if err != nil {
		return err
	}
	var target *model.User
	for i := range users {
		if users[i].ID == userID {
			target = &users[i]
			break
		}
	}
	if target == nil {
		return ErrUnknownUser
	}
	if target.Status == status {
		return nil
	}
	if err := a.store.UpdateUserStatus(ctx, userID, status); err != nil {
		return err
	}
	a.log.Info("registration decided", "target", userID, "status", string(status))
	return nil
}
