package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/auth"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

// UserHandler handles registration, login, and profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries the single editable profile field.
type UpdateProfileRequest struct {
	Username string `json:"username" validate:"required"`
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    model.PublicUser `json:"user"`
}

// ProfileResponse wraps the public view of a user.
type ProfileResponse struct {
	Message string           `json:"message,omitempty"`
	User    model.PublicUser `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	user, token, err := h.userService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    user.Public(),
	})
}

// Login godoc
// @Summary Login with email and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	user, token, err := h.userService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Public(),
	})
}

// Profile godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return respondError(c, apperrors.ErrTokenMissing)
	}

	user, err := h.userService.GetProfile(c.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, ProfileResponse{User: user.Profile()})
}

// UpdateProfile godoc
// @Summary Update the authenticated user's username
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "New username"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return respondError(c, apperrors.ErrTokenMissing)
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.UpdateUsername(c.Request().Context(), identity.UserID, req.Username)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, ProfileResponse{
		Message: "Profile updated successfully",
		User:    user.Public(),
	})
}

// ChangePassword godoc
// @Summary Change the authenticated user's password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Current and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/change-password [post]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return respondError(c, apperrors.ErrTokenMissing)
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	if err := h.userService.ChangePassword(c.Request().Context(), identity.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Password changed successfully",
	})
}
