package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomfinder/roomfinder-backend/internal/middleware"
	"github.com/roomfinder/roomfinder-backend/internal/model"
	"github.com/roomfinder/roomfinder-backend/internal/response"
	"github.com/roomfinder/roomfinder-backend/internal/service"
	"github.com/roomfinder/roomfinder-backend/internal/validator"
)

// Authenticator is the account surface the HTTP layer needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	Logout(ctx context.Context, jti string) error
	CurrentUser(ctx context.Context, userID int) (*model.User, error)
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	auth Authenticator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// POST /api/login
// Validates email + password and returns a bearer token.
// The body is flat: {success, message, token, user}.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": response.GetMessage(response.ErrValidation),
			"code":    response.ErrValidation,
			"fields":  fields,
		})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Reject(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		_ = c.Error(err)
		response.Reject(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Done(c, http.StatusOK, "Login successful.", gin.H{
		"token": token,
		"user":  userView(user),
	})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the profile of the currently authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": userView(user)})
}

// Logout godoc
// POST /api/v1/auth/logout
// Ends the session of the presented token. Other devices stay signed in.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.auth.Logout(c.Request.Context(), claims.ID); err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

func userView(u *model.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
	}
}
