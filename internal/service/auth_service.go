package service

import (
	"fmt"
	"time"

	"teamboard-server/internal/domain"
	"teamboard-server/internal/repository"
	"teamboard-server/pkg/hash"
	"teamboard-server/pkg/jwt"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
	now           func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExp time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExp,
		now:           time.Now,
	}
}

func (s *AuthService) Register(req *domain.RegisterRequest) (*domain.LoginResponse, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", ErrInvalidInput)
	}

	hashedPassword, err := hash.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now()
	user := &domain.User{
		ID:        uuid.New().String(),
		Email:     req.Email,
		Name:      req.Name,
		Role:      role,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := jwt.GenerateToken(user.ID, string(user.Role), s.jwtExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = ""
	return &domain.LoginResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(req *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := hash.Compare(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, string(user.Role), s.jwtExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = ""
	return &domain.LoginResponse{User: user, Token: token}, nil
}

// ActorFromToken validates the token and loads the current user record, so
// a role change takes effect without forcing a new login. The stored role is
// re-parsed as a defense against stale or hand-edited documents.
func (s *AuthService) ActorFromToken(token string) (*domain.Actor, error) {
	claims, err := jwt.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid token: user no longer exists")
	}

	if _, err := domain.ParseRole(string(user.Role)); err != nil {
		return nil, fmt.Errorf("invalid token: %v", err)
	}

	return user.Actor(), nil
}
