package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/FRANKLIN09020/smart-billing/internal/config"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	"github.com/FRANKLIN09020/smart-billing/pkg/apperror"
	"github.com/FRANKLIN09020/smart-billing/pkg/utils"
)

// AuthService signs the terminal operator in
type AuthService struct {
	operator   entity.Operator
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service for the configured operator.
// The plain password is hashed here and never kept.
func NewAuthService(cfg config.OperatorConfig, jwtManager *utils.JWTManager) (*AuthService, error) {
	if strings.TrimSpace(cfg.Username) == "" || cfg.Password == "" {
		return nil, errors.New("operator username and password must be configured")
	}

	hash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return nil, err
	}

	displayName := cfg.DisplayName
	if displayName == "" {
		displayName = cfg.Username
	}

	return &AuthService{
		operator: entity.Operator{
			Username:     cfg.Username,
			DisplayName:  displayName,
			PasswordHash: hash,
		},
		jwtManager: jwtManager,
	}, nil
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Operator    entity.Operator
	AccessToken string
	ExpiresAt   time.Time
}

// Login checks the operator's credentials and issues an access token
func (s *AuthService) Login(_ context.Context, input *LoginInput) (*LoginOutput, error) {
	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(s.operator.Username)) == 1
	passOK := utils.CheckPasswordHash(input.Password, s.operator.PasswordHash)
	if !userOK || !passOK {
		return nil, apperror.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtManager.GenerateAccessToken(s.operator.Username, s.operator.DisplayName)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Operator:    s.operator,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// Operator returns the configured operator
func (s *AuthService) Operator() entity.Operator {
	return s.operator
}
