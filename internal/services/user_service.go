package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"jobverse/internal/models"
	"jobverse/internal/storage"
	"jobverse/internal/token"
	"jobverse/internal/transport/dto"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	repo          storage.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo storage.UserRepository, jwtSecret string, jwtExpiration time.Duration) UserService {
	return &userService{
		repo:          repo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user, err := s.repo.Create(ctx, &dto.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		return nil, mapRepoError(err, "creating user")
	}

	tokenString, err := token.Generate(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		log.Printf("UserService: Error generating token for user %s: %v", user.Email, err)
		return nil, fmt.Errorf("failed to generate login token: %w", err)
	}

	return &dto.AuthResponse{Token: tokenString, User: toUserResponse(user)}, nil
}

func (s *userService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("Login attempt failed for email %s: user not found", req.Email)
			return nil, ErrInvalidCredentials
		}
		log.Printf("UserService: Error fetching user by email %s during login: %v", req.Email, err)
		return nil, fmt.Errorf("internal error during login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Printf("Login attempt failed for email %s: invalid password", req.Email)
		return nil, ErrInvalidCredentials
	}

	tokenString, err := token.Generate(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		log.Printf("UserService: Error generating token for user %s: %v", user.Email, err)
		return nil, fmt.Errorf("failed to generate login token: %w", err)
	}

	return &dto.AuthResponse{Token: tokenString, User: toUserResponse(user)}, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "fetching profile")
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.repo.Update(ctx, &dto.UpdateUserRequest{
		ID:       req.UserID,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, mapRepoError(err, "updating profile")
	}
	resp := toUserResponse(user)
	return &resp, nil
}
