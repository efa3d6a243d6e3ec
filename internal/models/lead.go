package models

import "time"

type Lead struct {
	ID        string  `json:"id"`
	FullName  string  `json:"full_name"`
	CpfCnpj   string  `json:"cpf_cnpj"`
	Status    Status  `json:"status"`
	PromoCode *string `json:"promo_code,omitempty"`

	// usuário indicador, resolvido pelo promo code na criação
	ReferrerID *string `json:"user_id_promo_code,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// trilha de auditoria: cada transição grava o próprio carimbo e nunca
	// limpa os anteriores
	AttendedAt            *time.Time `json:"attended_at,omitempty"`
	PagoPor               *string    `json:"pago_por,omitempty"`
	PagoEm                *time.Time `json:"pago_em,omitempty"`
	AguardandoPagamentoEm *time.Time `json:"aguardando_pagamento_em,omitempty"`
	CanceladoEm           *time.Time `json:"cancelado_em,omitempty"`
}

// Settlement é o conjunto de efeitos de uma transição financeira, aplicado
// em uma única transação (status + carimbo + bônus + comprovante).
type Settlement struct {
	LeadID string
	Status Status

	PagoPor               *string
	PagoEm                *time.Time
	AguardandoPagamentoEm *time.Time
	CanceladoEm           *time.Time

	// novo valor do bônus do indicador (cancelamento); o serviço lê o
	// valor atual e aplica o piso em zero antes de montar o Settlement
	BonusUserID *string
	BonusValue  *int

	// comprovante a inserir (somente Pago)
	Receipt *LeadReceipt
}
