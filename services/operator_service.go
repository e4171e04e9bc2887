package services

import (
	"errors"
	"time"

	"foodnav/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadPassword = errors.New("invalid password")

// OperatorService trades the configured operator password for a JWT with
// the operator role. The token is the whole session.
type OperatorService struct {
	hash      []byte
	jwtSecret string
	jwtTTL    time.Duration
}

// NewOperatorService hashes the password once at boot. An empty password
// disables operator login entirely.
func NewOperatorService(password, jwtSecret string, jwtTTL time.Duration) *OperatorService {
	s := &OperatorService{jwtSecret: jwtSecret, jwtTTL: jwtTTL}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err == nil {
			s.hash = hash
		}
	}
	return s
}

func (s *OperatorService) Login(password string) (string, error) {
	if len(s.hash) == 0 {
		return "", errors.New("operator login is disabled")
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return "", ErrBadPassword
	}
	token, err := utils.GenerateToken(0, "operator", s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", errors.New("cannot generate token")
	}
	return token, nil
}
