package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dbarrios89/storeapi/internal/config"
	"github.com/dbarrios89/storeapi/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, name, surname, email, passwordHash string) (user.User, error)
}

type PasswordHasher interface {
	Hash(ctx context.Context, plain string) (string, error)
	Verify(ctx context.Context, plain, hash string) (bool, error)
}

type TokenIssuer interface {
	Issue(userID, fullName, email string) (string, error)
}

type AuthHandler struct {
	users  UserReader
	writer UserWriter
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewAuthHandler(users UserReader, writer UserWriter, hasher PasswordHasher, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{
		users:  users,
		writer: writer,
		hasher: hasher,
		tokens: tokens,
	}
}

// loginFailed is the one message both "no such account" and "wrong
// password" collapse into. Keeping the two cases indistinguishable stops
// account enumeration; do not split them without a product decision.
const loginFailed = "user not found"

func (h *AuthHandler) Signup(ctx *gin.Context) {
	var req user.SignupRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(5 * time.Second)

	defer cancel()

	// hash up front, before anything touches the store; the stored record
	// never sees the plaintext
	hash, err := h.hasher.Hash(cctx, req.Password)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	u, err := h.writer.Create(cctx, req.Name, req.Surname, req.Email, hash)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondBadRequest(ctx, "email already registered")
			return
		}

		RespondInternal(ctx)
		return
	}

	tok, err := h.tokens.Issue(u.ID, u.FullName(), u.Email)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"token": tok,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, loginFailed)
			return
		}

		RespondInternal(ctx)
		return
	}

	ok, err := h.hasher.Verify(cctx, req.Password, foundUser.PasswordHash)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	if !ok {
		// same status, same body as the unknown-email case above
		RespondNotFound(ctx, loginFailed)
		return
	}

	tok, err := h.tokens.Issue(foundUser.ID, foundUser.FullName(), foundUser.Email)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token": tok,
	})
}
