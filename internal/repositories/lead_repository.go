package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"indicamais/internal/models"
)

type LeadRepository interface {
	Create(lead *models.Lead) error
	GetByID(id string) (*models.Lead, error)
	ListByStatus(status models.Status, limit, offset int) ([]*models.Lead, error)
	UpdateStatus(id string, status models.Status, attendedAt, aguardandoEm, canceladoEm *time.Time) error
	CountsByStatus() (map[models.Status]int, error)

	// Settle aplica status, carimbo, decremento de bônus e comprovante em
	// uma única transação: ou tudo entra, ou nada entra.
	Settle(ctx context.Context, s *models.Settlement) error
}

type leadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) LeadRepository {
	return &leadRepository{DB: db}
}

const leadColumns = `
	id, full_name, cpf_cnpj, status, promo_code, user_id_promo_code,
	created_at, attended_at, pago_por, pago_em, aguardando_pagamento_em, cancelado_em
`

func (r *leadRepository) Create(lead *models.Lead) error {
	const q = `
		INSERT INTO leads (id, full_name, cpf_cnpj, status, promo_code, user_id_promo_code, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`
	_, err := r.DB.Exec(q,
		lead.ID, lead.FullName, lead.CpfCnpj, string(lead.Status),
		lead.PromoCode, lead.ReferrerID, lead.CreatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func scanLead(row interface{ Scan(...any) error }) (*models.Lead, error) {
	l := &models.Lead{}
	var (
		status                sql.NullString
		promoCode, referrerID sql.NullString
		pagoPor               sql.NullString
		attendedAt            sql.NullTime
		pagoEm                sql.NullTime
		aguardandoEm          sql.NullTime
		canceladoEm           sql.NullTime
	)
	if err := row.Scan(
		&l.ID, &l.FullName, &l.CpfCnpj, &status, &promoCode, &referrerID,
		&l.CreatedAt, &attendedAt, &pagoPor, &pagoEm, &aguardandoEm, &canceladoEm,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	l.Status = models.Status(status.String)
	l.PromoCode = nullStr(promoCode)
	l.ReferrerID = nullStr(referrerID)
	l.PagoPor = nullStr(pagoPor)
	l.AttendedAt = nullTime(attendedAt)
	l.PagoEm = nullTime(pagoEm)
	l.AguardandoPagamentoEm = nullTime(aguardandoEm)
	l.CanceladoEm = nullTime(canceladoEm)
	return l, nil
}

func nullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func (r *leadRepository) GetByID(id string) (*models.Lead, error) {
	return scanLead(r.DB.QueryRow(`SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
}

func (r *leadRepository) ListByStatus(status models.Status, limit, offset int) ([]*models.Lead, error) {
	const q = `SELECT ` + leadColumns + ` FROM leads WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(q, string(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// UpdateStatus é o caminho operacional (vendedores/admin): muda o status e
// grava o carimbo correspondente sem apagar os já gravados.
func (r *leadRepository) UpdateStatus(id string, status models.Status, attendedAt, aguardandoEm, canceladoEm *time.Time) error {
	const q = `
		UPDATE leads SET
			status = $2,
			attended_at = COALESCE($3, attended_at),
			aguardando_pagamento_em = COALESCE($4, aguardando_pagamento_em),
			cancelado_em = COALESCE($5, cancelado_em)
		WHERE id = $1
	`
	_, err := r.DB.Exec(q, id, string(status), attendedAt, aguardandoEm, canceladoEm)
	return err
}

func (r *leadRepository) CountsByStatus() (map[models.Status]int, error) {
	rows, err := r.DB.Query(`SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[models.Status]int{}
	for rows.Next() {
		var st string
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, err
		}
		out[models.Status(st)] = n
	}
	return out, rows.Err()
}

func (r *leadRepository) Settle(ctx context.Context, s *models.Settlement) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const updateLead = `
		UPDATE leads SET
			status = $2,
			pago_por = COALESCE($3, pago_por),
			pago_em = COALESCE($4, pago_em),
			aguardando_pagamento_em = COALESCE($5, aguardando_pagamento_em),
			cancelado_em = COALESCE($6, cancelado_em)
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, updateLead,
		s.LeadID, string(s.Status), s.PagoPor, s.PagoEm, s.AguardandoPagamentoEm, s.CanceladoEm,
	); err != nil {
		return err
	}

	if s.BonusUserID != nil && s.BonusValue != nil {
		const setBonus = `UPDATE users SET bonus_indicacao = $2 WHERE id = $1`
		if _, err := tx.ExecContext(ctx, setBonus, *s.BonusUserID, *s.BonusValue); err != nil {
			return err
		}
	}

	if s.Receipt != nil {
		const insertReceipt = `INSERT INTO leads_comprovante (id, leads_id, comprovante) VALUES ($1,$2,$3)`
		if _, err := tx.ExecContext(ctx, insertReceipt, s.Receipt.ID, s.Receipt.LeadID, s.Receipt.Comprovante); err != nil {
			return err
		}
	}

	return tx.Commit()
}
