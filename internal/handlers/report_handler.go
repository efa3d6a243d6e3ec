package handlers

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"indicamais/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// @Summary      Resumo dos repasses
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  services.SettlementSummary
// @Router       /reports/settlement/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.Service.GetSummary()
	if err != nil {
		log.Printf("[reports][summary] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar resumo"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary      Exporta os pagamentos em PDF
// @Tags         Reports
// @Produce      application/pdf
// @Success      200
// @Router       /reports/settlement/pdf [get]
func (h *ReportHandler) SettlementPDF(c *gin.Context) {
	path, err := h.Service.SettlementPDF()
	if err != nil {
		log.Printf("[reports][pdf] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar relatório"})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
