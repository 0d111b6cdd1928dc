package handlers

import (
	"errors"
	"log"
	"net/http"

	"jobverse/internal/api/middleware"
	"jobverse/internal/services"
	"jobverse/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AuthHandler holds the service dependency for authentication operations
type AuthHandler struct {
	service   services.UserService
	validator *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given service
func NewAuthHandler(service services.UserService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{service: service, validator: validate}
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates an account and returns a signed token with the user.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body      dto.RegisterRequest true "Registration payload"
// @Success      201  {object}  dto.AuthResponse "Account created"
// @Failure      400  {object}  map[string]string "Bad Request - invalid input or duplicate email"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": FormatValidationErrors(err)})
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		} else {
			log.Printf("Error registering user %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register user"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and returns a signed token with the user.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body      dto.LoginRequest true "Login payload"
// @Success      200  {object}  dto.AuthResponse "Authenticated"
// @Failure      400  {object}  map[string]string "Bad Request - invalid input"
// @Failure      401  {object}  map[string]string "Unauthorized - invalid credentials"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": FormatValidationErrors(err)})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		} else {
			log.Printf("Error logging in user %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to log in"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetProfile godoc
// @Summary      Get the caller's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse "Profile"
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Failure      404  {object}  map[string]string "User Not Found"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	resp, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		} else {
			log.Printf("Error fetching profile for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch profile"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateProfile godoc
// @Summary      Update the caller's profile
// @Description  Updates name, email and/or password for the caller.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body      dto.UpdateProfileRequest true "Fields to update"
// @Success      200  {object}  dto.UserResponse "Updated profile"
// @Failure      400  {object}  map[string]string "Bad Request - invalid input or duplicate email"
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Failure      404  {object}  map[string]string "User Not Found"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body: " + err.Error()})
		return
	}
	req.UserID = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": FormatValidationErrors(err)})
		return
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		} else if errors.Is(err, services.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is already in use"})
		} else {
			log.Printf("Error updating profile for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": resp})
}
