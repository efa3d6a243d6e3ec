package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"indicamais/internal/authz"
	"indicamais/internal/models"
	"indicamais/internal/repositories"
)

var (
	ErrLeadNotFound     = errors.New("lead not found")
	ErrDuplicateLead    = errors.New("lead already registered for this cpf/cnpj")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrStatusNotAllowed = errors.New("status not allowed for role")
)

type LeadService struct {
	Repo  repositories.LeadRepository
	Users repositories.UserRepository
}

func NewLeadService(repo repositories.LeadRepository, users repositories.UserRepository) *LeadService {
	return &LeadService{Repo: repo, Users: users}
}

// Create registra uma indicação. Promo code válido vincula o indicador e
// soma 1 ao bônus dele; o cancelamento financeiro compensa depois.
func (s *LeadService) Create(lead *models.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.Status == "" {
		lead.Status = models.StatusPendente
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}

	if lead.PromoCode != nil && *lead.PromoCode != "" {
		referrer, err := s.Users.GetByPromoCode(*lead.PromoCode)
		if err != nil {
			return err
		}
		if referrer != nil {
			lead.ReferrerID = &referrer.ID
		}
	}

	if err := s.Repo.Create(lead); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrDuplicateLead
		}
		return err
	}

	if lead.ReferrerID != nil {
		if err := s.Users.IncrementBonus(*lead.ReferrerID); err != nil {
			log.Printf("[leads][create] bonus increment failed referrer=%s: %v", *lead.ReferrerID, err)
		}
	}
	return nil
}

func (s *LeadService) GetByID(id string) (*models.Lead, error) {
	return s.Repo.GetByID(id)
}

func (s *LeadService) ListByStatus(status models.Status, limit, offset int) ([]*models.Lead, error) {
	return s.Repo.ListByStatus(status, limit, offset)
}

// UpdateStatus é o caminho operacional (vendedores/admin), validado contra
// a tabela de status por cargo. O fluxo financeiro tem validação própria em
// SettlementService e não passa por aqui.
func (s *LeadService) UpdateStatus(actor *models.User, id, rawStatus string) error {
	status, err := models.ParseStatus(rawStatus)
	if err != nil {
		return ErrInvalidStatus
	}
	if !authz.RoleAllowsStatus(actor.Job, string(status)) {
		return ErrStatusNotAllowed
	}

	lead, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if lead == nil {
		return ErrLeadNotFound
	}

	now := time.Now()
	var attendedAt, aguardandoEm, canceladoEm *time.Time
	switch status {
	case models.StatusSendoAtendido:
		attendedAt = &now
	case models.StatusAguardandoPagamento:
		aguardandoEm = &now
	case models.StatusCancelado:
		canceladoEm = &now
	}
	return s.Repo.UpdateStatus(id, status, attendedAt, aguardandoEm, canceladoEm)
}
