package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"peer-support-be/internal/dto"
	"peer-support-be/internal/entity"
	"peer-support-be/internal/repository/contract"
	"peer-support-be/internal/repository/specification"
	"peer-support-be/pkg/events"
	pktNats "peer-support-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
}

type authService struct {
	userRepo       contract.UserRepository
	eventPublisher *pktNats.Publisher
	jwtSecret      string
}

func NewAuthService(userRepo contract.UserRepository, eventPublisher *pktNats.Publisher, jwtSecret string) IAuthService {
	return &authService{
		userRepo:       userRepo,
		eventPublisher: eventPublisher,
		jwtSecret:      jwtSecret,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// 1. Check for existing user
	existing, _ := s.userRepo.FindOne(ctx, specification.ByEmail{Email: req.Email})
	if existing != nil {
		return nil, errors.New("email already registered")
	}

	// 2. Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	// Self-service signup only covers trainee and helper roles. Counselor,
	// crisis responder and admin accounts are provisioned out of band.
	role := entity.UserRoleUser
	if req.Role == string(entity.UserRoleHelper) {
		role = entity.UserRoleHelper
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: &hashStr,
		Role:         role,
		Status:       entity.UserStatusActive,
		SkillLevel:   "beginner",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{Id: user.Id, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	// 1. Check if user exists
	user, err := s.userRepo.FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if user == nil || user.PasswordHash == nil {
		return nil, errors.New("invalid credentials")
	}

	// 2. Compare passwords
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	// 3. Check if user is blocked/suspended
	if user.Status == entity.UserStatusBlocked {
		return nil, errors.New("user account is blocked")
	}

	// 4. Generate JWT
	accessTokenExpiry := time.Hour * 24

	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(accessTokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	// PUBLISH EVENT
	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: "USER_LOGIN",
			Data: map[string]interface{}{
				"user_id": user.Id,
				"ip":      ipAddress,
				"device":  userAgent,
				"time":    time.Now().Format(time.RFC822),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_LOGIN event: %v\n", err)
		}
	}

	return &dto.LoginResponse{
		AccessToken: signedToken,
		User: dto.UserDTO{
			Id:         user.Id,
			Email:      user.Email,
			FullName:   user.FullName,
			Role:       string(user.Role),
			SkillLevel: user.SkillLevel,
		},
	}, nil
}
