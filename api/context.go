package api

import (
	"context"
	"net/http"

	"github.com/rpupo63/portfolio-backend/auth"
)

type keyType string

const requestIDKey keyType = "requestID"

// ctxWithRequestID adds a request ID to the context
func ctxWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// requestIDFrom returns the request ID, or "" outside a request.
func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func actorFrom(r *http.Request) auth.Actor {
	return auth.ActorFrom(r.Context())
}
