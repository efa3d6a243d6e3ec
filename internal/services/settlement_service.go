package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"indicamais/internal/models"
	"indicamais/internal/repositories"
)

// financialStatuses é a lista fixa do fluxo financeiro. Ela NÃO deriva da
// tabela de status por cargo; as duas fontes são mantidas desacopladas de
// propósito, como no produto.
var financialStatuses = map[models.Status]bool{
	models.StatusAguardandoPagamento: true,
	models.StatusPago:                true,
	models.StatusCancelado:           true,
}

const maxReceiptSize = 5 * 1024 * 1024 // 5MB

var allowedReceiptTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// SettlementError é uma falha de negócio com código HTTP associado; o
// handler devolve Code + Message sem tradução adicional.
type SettlementError struct {
	Code    int
	Message string
}

func (e *SettlementError) Error() string {
	return e.Message
}

// ReceiptUpload é o comprovante recebido no multipart form.
type ReceiptUpload struct {
	ContentType string
	Size        int64
	Data        []byte
}

type SettlementResult struct {
	Message   string
	NewStatus models.Status
}

type SettlementService struct {
	Leads  repositories.LeadRepository
	Users  repositories.UserRepository
	Email  EmailService
	Notify *NotifyService
}

func NewSettlementService(leads repositories.LeadRepository, users repositories.UserRepository, email EmailService, notify *NotifyService) *SettlementService {
	return &SettlementService{Leads: leads, Users: users, Email: email, Notify: notify}
}

// UpdateStatus processa uma transição financeira de status. As validações
// seguem a ordem do fluxo original e cada uma encerra com a própria
// mensagem; os efeitos entram todos na mesma transação.
func (s *SettlementService) UpdateStatus(ctx context.Context, actor *models.User, leadID, rawStatus string, receipt *ReceiptUpload) (*SettlementResult, error) {
	status, err := models.ParseStatus(rawStatus)
	if err != nil || !financialStatuses[status] {
		return nil, &SettlementError{Code: http.StatusBadRequest, Message: "Status inválido para operação financeira"}
	}

	// comprovante só é dispensado no cancelamento
	if status != models.StatusCancelado {
		if receipt == nil {
			return nil, &SettlementError{Code: http.StatusBadRequest, Message: "Comprovante é obrigatório para pagamentos"}
		}
		if !allowedReceiptTypes[receipt.ContentType] {
			return nil, &SettlementError{Code: http.StatusBadRequest, Message: "Formato de arquivo inválido"}
		}
		if receipt.Size > maxReceiptSize {
			return nil, &SettlementError{Code: http.StatusBadRequest, Message: "Arquivo deve ter no máximo 5MB"}
		}
	}

	lead, err := s.Leads.GetByID(leadID)
	if err != nil {
		log.Printf("[financeiro][status] lead lookup failed id=%s: %v", leadID, err)
		return nil, &SettlementError{Code: http.StatusInternalServerError, Message: "Erro ao atualizar status"}
	}
	if lead == nil {
		return nil, &SettlementError{Code: http.StatusNotFound, Message: "Lead não encontrado"}
	}

	now := time.Now()
	settlement := &models.Settlement{
		LeadID: lead.ID,
		Status: status,
	}
	switch status {
	case models.StatusPago:
		settlement.PagoPor = &actor.Name
		settlement.PagoEm = &now
		if receipt != nil {
			settlement.Receipt = &models.LeadReceipt{
				ID:          uuid.NewString(),
				LeadID:      lead.ID,
				Comprovante: encodeReceipt(receipt),
			}
		}
	case models.StatusAguardandoPagamento:
		settlement.AguardandoPagamentoEm = &now
	case models.StatusCancelado:
		settlement.CanceladoEm = &now
		// compensação: lead cancelado deixa de contar para o indicador
		if lead.ReferrerID != nil {
			referrer, err := s.Users.GetByID(*lead.ReferrerID)
			if err != nil {
				log.Printf("[financeiro][status] referrer lookup failed lead=%s: %v", lead.ID, err)
				return nil, &SettlementError{Code: http.StatusInternalServerError, Message: "Erro ao atualizar status"}
			}
			if referrer != nil {
				newBonus := referrer.BonusIndicacao - 1
				if newBonus < 0 {
					newBonus = 0
				}
				settlement.BonusUserID = lead.ReferrerID
				settlement.BonusValue = &newBonus
			}
		}
	}

	if err := s.Leads.Settle(ctx, settlement); err != nil {
		log.Printf("[financeiro][status] settle failed lead=%s status=%s: %v", lead.ID, status, err)
		return nil, &SettlementError{Code: http.StatusInternalServerError, Message: "Erro ao atualizar status"}
	}

	if status == models.StatusPago {
		s.notifyPaid(lead, actor)
	}

	return &SettlementResult{
		Message:   fmt.Sprintf("Status atualizado para %s com sucesso", status),
		NewStatus: status,
	}, nil
}

// encodeReceipt monta o data URI guardado na tabela de comprovantes.
func encodeReceipt(r *ReceiptUpload) string {
	return fmt.Sprintf("data:%s;base64,%s", r.ContentType, base64.StdEncoding.EncodeToString(r.Data))
}

// notifyPaid avisa o indicador por email e o canal do financeiro no
// Telegram. Nenhum dos dois falha o pagamento.
func (s *SettlementService) notifyPaid(lead *models.Lead, actor *models.User) {
	if err := s.Notify.SettlementPaid(lead, actor.Name); err != nil {
		log.Printf("[financeiro][notify] telegram failed lead=%s: %v", lead.ID, err)
	}

	if s.Email == nil || lead.ReferrerID == nil {
		return
	}
	referrer, err := s.Users.GetByID(*lead.ReferrerID)
	if err != nil || referrer == nil {
		log.Printf("[financeiro][notify] referrer lookup failed lead=%s: %v", lead.ID, err)
		return
	}
	if err := s.Email.SendPayoutEmail(referrer.Email, referrer.Name, lead.FullName); err != nil {
		log.Printf("[financeiro][notify] payout email failed lead=%s: %v", lead.ID, err)
	}
}
