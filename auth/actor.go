// Package auth holds the acting identity of a request and the rules that gate
// what that identity may see or change.
package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

// Actor is whoever issued the current request. The zero value is an anonymous visitor.
type Actor struct {
	UserID   uuid.UUID
	Username string
	IsAdmin  bool
	Locale   string
}

// Anonymous returns an unauthenticated actor speaking locale.
func Anonymous(locale string) Actor {
	return Actor{Locale: locale}
}

// FromUser builds the actor for a signed-in user.
func FromUser(user *models.User, locale string) Actor {
	return Actor{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		Locale:   locale,
	}
}

func (a Actor) Authenticated() bool {
	return a.UserID != uuid.Nil
}

type keyType string

const actorKey keyType = "actor"

// WithActor stores the actor on ctx.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFrom returns the actor stored on ctx, or an anonymous actor.
func ActorFrom(ctx context.Context) Actor {
	actor, _ := ctx.Value(actorKey).(Actor)
	return actor
}

// CanViewUnpublished reports whether the actor may see drafts.
func CanViewUnpublished(actor Actor) bool {
	return actor.Authenticated() && actor.IsAdmin
}

// RequireAuthenticated fails with 401 for anonymous actors.
func RequireAuthenticated(actor Actor) error {
	if !actor.Authenticated() {
		return errs.Unauthorized
	}
	return nil
}

// RequireAdmin fails with 401 for anonymous actors and 403 for signed-in non-admins.
func RequireAdmin(actor Actor) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	if !actor.IsAdmin {
		return errs.AccessDenied
	}
	return nil
}

// RequireOwner succeeds only when the actor owns the resource. A mismatch is
// reported as the resource not existing.
func RequireOwner(actor Actor, ownerID uuid.UUID, entity string) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	if actor.UserID != ownerID {
		return errs.NewNotFound(entity)
	}
	return nil
}

// VisibleOrNotFound hides unpublished content from actors that may not view it.
func VisibleOrNotFound(actor Actor, published bool, entity string) error {
	if !published && !CanViewUnpublished(actor) {
		return errs.NewNotFound(entity)
	}
	return nil
}
