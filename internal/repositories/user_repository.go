package repositories

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"indicamais/internal/authz"
	"indicamais/internal/models"
)

// ErrDuplicate é devolvido quando uma coluna única (email, cpf, promo_code,
// pix_code) já está em uso.
var ErrDuplicate = errors.New("duplicate value")

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByProvider(email, provider, providerUserID string) (*models.User, error)
	GetByPromoCode(code string) (*models.User, error)
	EmailInUse(email string) (bool, error)
	Update(user *models.User) error
	List(limit, offset int) ([]*models.User, error)
	IncrementBonus(userID string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, name, last_name, email, password, job,
	cpf, telefone, promo_code, pix_type, pix_code, bonus_indicacao,
	cep, rua, numero_casa, complemento, bairro, cidade, estado,
	provider, provider_user_id, avatar_url, status, created_at
`

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (
			id, name, last_name, email, password, job,
			cpf, telefone, promo_code, pix_type, pix_code, bonus_indicacao,
			cep, rua, numero_casa, complemento, bairro, cidade, estado,
			provider, provider_user_id, avatar_url, status
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
	`
	var pixType *string
	if user.PixType != nil {
		s := string(*user.PixType)
		pixType = &s
	}
	_, err := r.DB.Exec(q,
		user.ID, user.Name, user.LastName, user.Email, user.PasswordHash, string(user.Job),
		user.CPF, user.Telefone, user.PromoCode, pixType, user.PixCode, user.BonusIndicacao,
		user.CEP, user.Rua, user.NumeroCasa, user.Complemento, user.Bairro, user.Cidade, user.Estado,
		user.Provider, user.ProviderUserID, user.AvatarURL, user.Active,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (r *userRepository) scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var (
		cpf, telefone, promoCode, pixType, pixCode     sql.NullString
		cep, rua, complemento, bairro, cidade, estado  sql.NullString
		numeroCasa                                     sql.NullInt64
		provider, providerUserID, avatarURL            sql.NullString
		job                                            string
	)
	if err := row.Scan(
		&u.ID, &u.Name, &u.LastName, &u.Email, &u.PasswordHash, &job,
		&cpf, &telefone, &promoCode, &pixType, &pixCode, &u.BonusIndicacao,
		&cep, &rua, &numeroCasa, &complemento, &bairro, &cidade, &estado,
		&provider, &providerUserID, &avatarURL, &u.Active, &u.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Job = authz.Role(job)
	u.CPF = nullStr(cpf)
	u.Telefone = nullStr(telefone)
	u.PromoCode = nullStr(promoCode)
	if pixType.Valid {
		p := models.PixType(pixType.String)
		u.PixType = &p
	}
	u.PixCode = nullStr(pixCode)
	u.CEP = nullStr(cep)
	u.Rua = nullStr(rua)
	if numeroCasa.Valid {
		n := int(numeroCasa.Int64)
		u.NumeroCasa = &n
	}
	u.Complemento = nullStr(complemento)
	u.Bairro = nullStr(bairro)
	u.Cidade = nullStr(cidade)
	u.Estado = nullStr(estado)
	u.Provider = nullStr(provider)
	u.ProviderUserID = nullStr(providerUserID)
	u.AvatarURL = nullStr(avatarURL)
	return u, nil
}

func nullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	return r.scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return r.scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) GetByProvider(email, provider, providerUserID string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users
		WHERE email = $1 AND provider = $2 AND provider_user_id = $3`
	return r.scanUser(r.DB.QueryRow(q, email, provider, providerUserID))
}

func (r *userRepository) GetByPromoCode(code string) (*models.User, error) {
	return r.scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE promo_code = $1`, code))
}

func (r *userRepository) EmailInUse(email string) (bool, error) {
	var n int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE email = $1`, email).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users SET
			name=$2, last_name=$3, telefone=$4, pix_type=$5, pix_code=$6,
			cep=$7, rua=$8, numero_casa=$9, complemento=$10, bairro=$11,
			cidade=$12, estado=$13, status=$14
		WHERE id=$1
	`
	var pixType *string
	if user.PixType != nil {
		s := string(*user.PixType)
		pixType = &s
	}
	_, err := r.DB.Exec(q,
		user.ID, user.Name, user.LastName, user.Telefone, pixType, user.PixCode,
		user.CEP, user.Rua, user.NumeroCasa, user.Complemento, user.Bairro,
		user.Cidade, user.Estado, user.Active,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *userRepository) IncrementBonus(userID string) error {
	_, err := r.DB.Exec(`UPDATE users SET bonus_indicacao = bonus_indicacao + 1 WHERE id = $1`, userID)
	return err
}
