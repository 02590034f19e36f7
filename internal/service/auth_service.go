package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/padidar/visitor-analytics-go/internal/report"
	"github.com/padidar/visitor-analytics-go/internal/repository"
)

// ErrInvalidCredentials is returned for any login failure. The reason
// (unknown user, wrong password, disabled account) is deliberately not
// distinguished to the caller.
var ErrInvalidCredentials = errors.New("username or password is wrong")

// AuthService verifies operator credentials and issues bearer tokens.
type AuthService struct {
	accounts *repository.AccountRepository
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(accounts *repository.AccountRepository, secret string, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Login checks the credentials and returns a signed HS256 token.
func (s *AuthService) Login(ctx context.Context, userName, password string) (string, error) {
	account, err := s.accounts.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, report.ErrNoData) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if account.Status != "active" {
		s.logger.Warn("login attempt on inactive account", zap.String("user_name", userName))
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": account.UserName,
		"uid": account.UserID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
