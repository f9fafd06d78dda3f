package handlers

import (
	"net/http"

	"github.com/dbarrios89/storeapi/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type UsersHandler struct{}

func NewUsersHandler() *UsersHandler {
	return &UsersHandler{}
}

// Profile echoes the identity claims the auth middleware decoded from the
// bearer token. No store lookup: the token is the source of truth.
func (h *UsersHandler) Profile(ctx *gin.Context) {
	claims, ok := middlewares.ClaimsFromContext(ctx)

	if !ok {
		// only reachable if the route was mounted without the middleware
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, claims)
}
