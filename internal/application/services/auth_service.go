package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	config "github.com/threat0512/HealthFactAI/configs"
	"github.com/threat0512/HealthFactAI/internal/core/domain/auth"
	"github.com/threat0512/HealthFactAI/internal/core/domain/user"
	"github.com/threat0512/HealthFactAI/internal/core/ports"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

type AuthService struct {
	userRepo  ports.UserRepository
	jwtConfig *config.JWTConfig
	logger    *logrus.Logger
}

func NewAuthService(userRepo ports.UserRepository, jwtConfig *config.JWTConfig, logger *logrus.Logger) ports.AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtConfig: jwtConfig,
		logger:    logger,
	}
}

// Register creates an account after checking username and email uniqueness.
func (s *AuthService) Register(ctx context.Context, req *auth.RegisterRequest) (*user.User, error) {
	username := strings.TrimSpace(req.Username)
	if len(username) < minUsernameLen {
		return nil, fmt.Errorf("username must be at least %d characters", minUsernameLen)
	}
	if len(req.Password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}

	taken, err := s.userRepo.ExistsUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("username already registered")
	}

	email := strings.TrimSpace(req.Email)
	if email != "" {
		taken, err := s.userRepo.ExistsEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("email already registered")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        sql.NullString{String: email, Valid: email != ""},
		FactsLearned: "[]",
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user registered")
	}
	return u, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.TokenResponse, error) {
	foundUser, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := s.generateToken(foundUser)
	if err != nil {
		return nil, err
	}

	return &auth.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *AuthService) generateToken(u *user.User) (string, error) {
	now := time.Now()

	claims := &auth.Claims{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email.String,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates an access token.
func (s *AuthService) VerifyToken(tokenString string) (*auth.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &auth.Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC (prevent alg confusion)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
