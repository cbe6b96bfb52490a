package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/babytrack/internal/domain/models"
)

// AccountService registers and authenticates parents.
type AccountService interface {
	Register(ctx context.Context, in models.InsertUser) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	Issue(userID int64, username string) (string, error)
}

// AuthHandler exposes registration and login.
type AuthHandler struct {
	accounts AccountService
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewAuthHandler constructs the auth endpoints.
func NewAuthHandler(accounts AccountService, tokens TokenIssuer, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{accounts: accounts, tokens: tokens, logger: logger}
}

// Register creates an account and returns a token for it.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.InsertUser
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, h.logger, "register", err)
		return
	}
	h.respondWithToken(c, http.StatusCreated, user)
}

// Login exchanges credentials for a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.InsertUser
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	user, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, h.logger, "login", err)
		return
	}
	h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		fail(c, h.logger, "issue token", err)
		return
	}
	c.JSON(status, gin.H{"token": token, "user": user})
}
