// Package auth carries the authenticated user identity on a context.
package auth

import (
	"context"
	"errors"
	"strings"
)

// ErrAuthRequired is returned when an operation needs a user and none is set.
var ErrAuthRequired = errors.New("authentication required")

type userKey struct{}

// WithUser returns a copy of ctx carrying userID.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, strings.TrimSpace(userID))
}

// UserFromContext returns the user id stored by WithUser.
func UserFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userKey{}).(string)
	return id, ok && id != ""
}

// RequireUser returns the user id on ctx or ErrAuthRequired.
func RequireUser(ctx context.Context) (string, error) {
	id, ok := UserFromContext(ctx)
	if !ok {
		return "", ErrAuthRequired
	}
	return id, nil
}
