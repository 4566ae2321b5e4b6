package http

import (
	"context"
	"errors"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
)

type contextKey string

const actorContextKey contextKey = "actor"

var errNoActor = errors.New("no authenticated actor in request context")

// ActorFromContext extracts the authenticated actor placed there by the auth
// middleware.
func ActorFromContext(ctx context.Context) (domain.Actor, error) {
	actor, ok := ctx.Value(actorContextKey).(domain.Actor)
	if !ok {
		return domain.Actor{}, errNoActor
	}
	return actor, nil
}

func withActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}
