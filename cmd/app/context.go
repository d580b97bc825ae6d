package main

import (
	"context"
	"net/http"
)

type contextKey string

const userContextKey = contextKey("user")

func (app *application) createUserContext(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, userID)
	return r.WithContext(ctx)
}

func (app *application) getUserContext(r *http.Request) string {
	userID, ok := r.Context().Value(userContextKey).(string)
	if !ok {
		return ""
	}
	return userID
}
