package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"indicamais/internal/middleware"
	"indicamais/internal/models"
	"indicamais/internal/repositories"
	"indicamais/internal/utils"
)

type AuthService interface {
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) error

	StartSession(userID string) (*models.Session, error)
	ResolveSession(sessionID string) (*models.User, error)
	UserByID(id string) (*models.User, error)
	EndSession(sessionID string) error

	// NewAccessToken emite um JWT curto para clientes de API; a sessão em
	// cookie continua sendo o caminho principal do frontend.
	NewAccessToken(user *models.User) (string, error)
}

type authService struct {
	sessions   repositories.SessionRepository
	users      repositories.UserRepository
	sessionTTL time.Duration
}

func NewAuthService(sessions repositories.SessionRepository, users repositories.UserRepository, sessionTTLDays int) AuthService {
	return &authService{
		sessions:   sessions,
		users:      users,
		sessionTTL: time.Duration(sessionTTLDays) * 24 * time.Hour,
	}
}

func (s *authService) HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *authService) CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *authService) StartSession(userID string) (*models.Session, error) {
	id, err := utils.NewID(32)
	if err != nil {
		return nil, err
	}
	sess := &models.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *authService) ResolveSession(sessionID string) (*models.User, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.sessions.Delete(sess.ID)
		return nil, nil
	}
	user, err := s.users.GetByID(sess.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, nil
	}
	return user, nil
}

func (s *authService) UserByID(id string) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, nil
	}
	return user, nil
}

func (s *authService) EndSession(sessionID string) error {
	return s.sessions.Delete(sessionID)
}

func (s *authService) NewAccessToken(user *models.User) (string, error) {
	claims := &middleware.Claims{
		UserID: user.ID,
		Role:   string(user.Job),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(middleware.JWTKey())
}
