package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"indicamais/internal/authz"
	"indicamais/internal/models"
	"indicamais/internal/services"
)

type LeadHandler struct {
	Service *services.LeadService
}

func NewLeadHandler(service *services.LeadService) *LeadHandler {
	return &LeadHandler{Service: service}
}

type CreateLeadRequest struct {
	FullName  string  `json:"full_name" binding:"required"`
	CpfCnpj   string  `json:"cpf_cnpj" binding:"required"`
	PromoCode *string `json:"promo_code"`
}

// @Summary      Registra uma indicação
// @Description  Entrada pública do formulário de indicação; promo code válido vincula o indicador
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        lead  body      CreateLeadRequest  true  "Dados do lead"
// @Success      201   {object}  models.Lead
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /indicacoes [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead := &models.Lead{
		FullName:  req.FullName,
		CpfCnpj:   req.CpfCnpj,
		PromoCode: req.PromoCode,
	}
	if err := h.Service.Create(lead); err != nil {
		if errors.Is(err, services.ErrDuplicateLead) {
			c.JSON(http.StatusConflict, gin.H{"error": "CPF/CNPJ já indicado"})
			return
		}
		log.Printf("[leads][create] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao registrar indicação"})
		return
	}
	c.JSON(http.StatusCreated, lead)
}

// @Summary      Busca um lead
// @Tags         Leads
// @Produce      json
// @Param        id   path      string  true  "ID do lead"
// @Success      200  {object}  models.Lead
// @Failure      404  {object}  map[string]string
// @Router       /indicacoes/{id} [get]
func (h *LeadHandler) GetByID(c *gin.Context) {
	lead, err := h.Service.GetByID(c.Param("id"))
	if err != nil || lead == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead não encontrado"})
		return
	}
	c.JSON(http.StatusOK, lead)
}

// @Summary      Lista leads por status
// @Tags         Leads
// @Produce      json
// @Param        status  query     string  true  "Status"
// @Success      200     {array}   models.Lead
// @Failure      400     {object}  map[string]string
// @Router       /indicacoes [get]
func (h *LeadHandler) List(c *gin.Context) {
	status, err := models.ParseStatus(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status inválido"})
		return
	}
	limit, offset := pagination(c)
	leads, err := h.Service.ListByStatus(status, limit, offset)
	if err != nil {
		log.Printf("[leads][list] status=%s: %v", status, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar leads"})
		return
	}
	if leads == nil {
		leads = []*models.Lead{}
	}
	c.JSON(http.StatusOK, leads)
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// @Summary      Atualiza o status operacional de um lead
// @Description  Valida o status contra a tabela de status por cargo do usuário
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        id      path      string                   true  "ID do lead"
// @Param        status  body      UpdateLeadStatusRequest  true  "Novo status"
// @Success      200     {object}  map[string]string
// @Failure      400     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /indicacoes/{id}/status [post]
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
		return
	}

	var req UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Service.UpdateStatus(user, c.Param("id"), req.Status)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Status atualizado"})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status inválido"})
	case errors.Is(err, services.ErrStatusNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"error": "Status não permitido para o seu cargo"})
	case errors.Is(err, services.ErrLeadNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead não encontrado"})
	default:
		log.Printf("[leads][status] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar status"})
	}
}

// @Summary      Opções de status do cargo do usuário
// @Description  Lista (value, label) na ordem de apresentação do dropdown; cargo desconhecido devolve lista vazia
// @Tags         Leads
// @Produce      json
// @Success      200  {array}  authz.StatusOption
// @Router       /status-options [get]
func (h *LeadHandler) StatusOptions(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
		return
	}
	c.JSON(http.StatusOK, authz.StatusesForRole(user.Job))
}
