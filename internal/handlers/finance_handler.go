package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"indicamais/internal/models"
	"indicamais/internal/repositories"
	"indicamais/internal/services"
)

type FinanceHandler struct {
	Settlements *services.SettlementService
	Leads       *services.LeadService
	Receipts    repositories.ReceiptRepository
}

func NewFinanceHandler(settlements *services.SettlementService, leads *services.LeadService, receipts repositories.ReceiptRepository) *FinanceHandler {
	return &FinanceHandler{Settlements: settlements, Leads: leads, Receipts: receipts}
}

// @Summary      Atualiza o status financeiro de um lead
// @Description  Move o lead entre Aguardando Pagamento, Pago e Cancelado; comprovante obrigatório exceto no cancelamento
// @Tags         Financeiro
// @Accept       mpfd
// @Produce      json
// @Param        id           formData  string  true   "ID do lead"
// @Param        status       formData  string  true   "Novo status"
// @Param        comprovante  formData  file    false  "Comprovante (jpeg/png/webp/pdf, até 5MB)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /financeiro/status [post]
func (h *FinanceHandler) UpdateStatus(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Não autorizado"})
		return
	}

	id := c.PostForm("id")
	status := c.PostForm("status")

	var upload *services.ReceiptUpload
	fileHeader, err := c.FormFile("comprovante")
	if err == nil && fileHeader != nil {
		f, err := fileHeader.Open()
		if err != nil {
			log.Printf("[financeiro][status] open upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao atualizar status"})
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			log.Printf("[financeiro][status] read upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao atualizar status"})
			return
		}
		upload = &services.ReceiptUpload{
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Data:        data,
		}
	}

	result, err := h.Settlements.UpdateStatus(c.Request.Context(), user, id, status, upload)
	if err != nil {
		var se *services.SettlementError
		if errors.As(err, &se) {
			c.JSON(se.Code, gin.H{"success": false, "message": se.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao atualizar status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   result.Message,
		"newStatus": result.NewStatus,
	})
}

// @Summary      Comprovante de pagamento de um lead
// @Tags         Financeiro
// @Produce      json
// @Param        id   path      string  true  "ID do lead"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /financeiro/comprovante/{id} [get]
func (h *FinanceHandler) GetReceipt(c *gin.Context) {
	receipt, err := h.Receipts.GetByLeadID(c.Param("id"))
	if err != nil {
		log.Printf("[financeiro][comprovante] lookup failed lead=%s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar comprovante"})
		return
	}
	if receipt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comprovante não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comprovante": receipt.Comprovante})
}

// ListAwaiting e ListPaid alimentam as duas filas da página do financeiro.
func (h *FinanceHandler) ListAwaiting(c *gin.Context) {
	h.listByStatus(c, models.StatusAguardandoPagamento)
}

func (h *FinanceHandler) ListPaid(c *gin.Context) {
	h.listByStatus(c, models.StatusPago)
}

func (h *FinanceHandler) listByStatus(c *gin.Context, status models.Status) {
	limit, offset := pagination(c)
	leads, err := h.Leads.ListByStatus(status, limit, offset)
	if err != nil {
		log.Printf("[financeiro][list] status=%s: %v", status, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar leads"})
		return
	}
	if leads == nil {
		leads = []*models.Lead{}
	}
	c.JSON(http.StatusOK, leads)
}
