package repositories

import (
	"database/sql"
	"errors"

	"indicamais/internal/models"
)

type ReceiptRepository interface {
	// GetByLeadID devolve o comprovante mais recente do lead, ou nil se não
	// houver (o fluxo só insere um por pagamento, mas a tabela é 1:N).
	GetByLeadID(leadID string) (*models.LeadReceipt, error)
}

type receiptRepository struct {
	DB *sql.DB
}

func NewReceiptRepository(db *sql.DB) ReceiptRepository {
	return &receiptRepository{DB: db}
}

func (r *receiptRepository) GetByLeadID(leadID string) (*models.LeadReceipt, error) {
	const q = `SELECT id, leads_id, comprovante FROM leads_comprovante WHERE leads_id = $1 LIMIT 1`
	rec := &models.LeadReceipt{}
	if err := r.DB.QueryRow(q, leadID).Scan(&rec.ID, &rec.LeadID, &rec.Comprovante); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}
