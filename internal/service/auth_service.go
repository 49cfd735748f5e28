package service

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopmate/shopmate-bot/internal/config"
	"github.com/shopmate/shopmate-bot/internal/utils"
)

// AuthService verifies admin credentials and issues dashboard tokens. The
// configured password is hashed once at startup so only the hash lives in
// memory afterwards.
type AuthService struct {
	username     string
	passwordHash []byte
	jwtSecret    string
}

// NewAuthService constructs an AuthService from admin config.
func NewAuthService(cfg *config.Config) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &AuthService{
		username:     cfg.Admin.Username,
		passwordHash: hash,
		jwtSecret:    cfg.JWTSecret,
	}, nil
}

// Login checks credentials and returns a signed JWT on success.
func (s *AuthService) Login(username, password string) (string, error) {
	if username != s.username {
		log.Warn().Str("username", username).Msg("Login attempt with unknown username")
		return "", utils.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		log.Warn().Str("username", username).Msg("Login attempt with wrong password")
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(s.jwtSecret, username)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	log.Info().Str("username", username).Msg("Admin login successful")
	return token, nil
}
