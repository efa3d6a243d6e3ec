package repositories

import (
	"database/sql"
	"errors"

	"indicamais/internal/models"
)

type SessionRepository interface {
	Create(s *models.Session) error
	Get(id string) (*models.Session, error)
	Delete(id string) error
	DeleteExpired() error
}

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) SessionRepository {
	return &sessionRepository{DB: db}
}

func (r *sessionRepository) Create(s *models.Session) error {
	const q = `INSERT INTO sessions (id, user_id, expires_at) VALUES ($1,$2,$3)`
	_, err := r.DB.Exec(q, s.ID, s.UserID, s.ExpiresAt)
	return err
}

func (r *sessionRepository) Get(id string) (*models.Session, error) {
	const q = `SELECT id, user_id, expires_at FROM sessions WHERE id = $1`
	s := &models.Session{}
	if err := r.DB.QueryRow(q, id).Scan(&s.ID, &s.UserID, &s.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (r *sessionRepository) DeleteExpired() error {
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE expires_at < NOW()`)
	return err
}
