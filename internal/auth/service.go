package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/edupath/edupath-backend/internal/logger"
	"github.com/edupath/edupath-backend/internal/model"
)

// ErrBadCredentials is returned for any username/password mismatch. The
// message is deliberately the same for unknown users and wrong passwords.
var ErrBadCredentials = errors.New("invalid username or password")

// Service checks admin credentials and issues session tokens.
type Service struct {
	users    map[string]model.AdminUser
	tokens   *TokenProvider
	tokenTTL time.Duration
}

// NewService builds a Service over the given user table. An empty secret
// gets replaced by a random one, which invalidates tokens across restarts
// but keeps a misconfigured deployment from signing with a known key.
func NewService(users []model.AdminUser, secret string, tokenTTL time.Duration) *Service {
	if secret == "" {
		buf := make([]byte, 32)
		_, _ = rand.Read(buf)
		secret = hex.EncodeToString(buf)
		logger.WithComponent("auth").Warn("no token secret configured, generated an ephemeral one")
	}

	table := make(map[string]model.AdminUser, len(users))
	for _, u := range users {
		table[u.Username] = u
	}
	return &Service{users: table, tokens: NewTokenProvider(secret), tokenTTL: tokenTTL}
}

// Login verifies the credentials and returns a signed session token plus the
// matched user. No lockout or attempt tracking.
func (s *Service) Login(username, password string) (string, model.AdminUser, error) {
	user, ok := s.users[username]
	if !ok || !VerifyPassword(password, user.PasswordHash) {
		return "", model.AdminUser{}, ErrBadCredentials
	}

	token, _, err := s.tokens.Issue(user.Username, user.DisplayName, user.Role, s.tokenTTL)
	if err != nil {
		return "", model.AdminUser{}, err
	}
	logger.WithComponent("auth").Infof("admin login: %s", user.Username)
	return token, user, nil
}

// Verify validates a session token and returns its claims.
func (s *Service) Verify(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}

// SeedUsers returns the placeholder admin table with freshly hashed
// passwords. Kept only as seed data for tests and local use; real
// deployments should replace it.
func SeedUsers() ([]model.AdminUser, error) {
	seed := []struct {
		username, password, role, name string
	}{
		{"shaan", "admin123", "Super Admin", "shaan"},
		{"kunal", "admin123", "Admin", "kunal"},
	}

	users := make([]model.AdminUser, 0, len(seed))
	for _, u := range seed {
		hash, err := HashPassword(u.password)
		if err != nil {
			return nil, err
		}
		users = append(users, model.AdminUser{
			Username:     u.username,
			PasswordHash: hash,
			Role:         u.role,
			DisplayName:  u.name,
		})
	}
	return users, nil
}
