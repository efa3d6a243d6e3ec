package services

import (
	"indicamais/internal/models"
	"indicamais/internal/pdf"
	"indicamais/internal/repositories"
)

type SettlementSummary struct {
	PorStatus           map[models.Status]int `json:"por_status"`
	AguardandoPagamento int                   `json:"aguardando_pagamento"`
	Pagos               int                   `json:"pagos"`
	Cancelados          int                   `json:"cancelados"`
}

type ReportService struct {
	Leads repositories.LeadRepository
	Gen   pdf.Generator
}

func NewReportService(leads repositories.LeadRepository, gen pdf.Generator) *ReportService {
	return &ReportService{Leads: leads, Gen: gen}
}

func (s *ReportService) GetSummary() (*SettlementSummary, error) {
	counts, err := s.Leads.CountsByStatus()
	if err != nil {
		return nil, err
	}
	return &SettlementSummary{
		PorStatus:           counts,
		AguardandoPagamento: counts[models.StatusAguardandoPagamento],
		Pagos:               counts[models.StatusPago],
		Cancelados:          counts[models.StatusCancelado],
	}, nil
}

// SettlementPDF exporta os leads pagos em PDF e devolve o caminho do
// arquivo gerado.
func (s *ReportService) SettlementPDF() (string, error) {
	// teto alto o bastante para um relatório mensal; paginação fica no PDF
	leads, err := s.Leads.ListByStatus(models.StatusPago, 1000, 0)
	if err != nil {
		return "", err
	}

	rows := make([]pdf.SettlementRow, 0, len(leads))
	for _, l := range leads {
		row := pdf.SettlementRow{FullName: l.FullName, CpfCnpj: l.CpfCnpj}
		if l.PagoPor != nil {
			row.PagoPor = *l.PagoPor
		}
		if l.PagoEm != nil {
			row.PagoEm = *l.PagoEm
		}
		rows = append(rows, row)
	}
	return s.Gen.GenerateSettlementReport(pdf.SettlementReportData{Rows: rows})
}
