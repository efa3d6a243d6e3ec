package models

import "fmt"

// Status de um lead. Os valores são os rótulos em português usados pelo
// frontend e gravados como estão no banco.
type Status string

const (
	StatusPendente            Status = "Pendente"
	StatusSendoAtendido       Status = "Sendo Atendido"
	StatusFinalizado          Status = "Finalizado"
	StatusSemSucesso          Status = "Sem Sucesso"
	StatusAguardandoPagamento Status = "Aguardando Pagamento"
	StatusPago                Status = "Pago"
	StatusCancelado           Status = "Cancelado"
)

var validStatuses = map[Status]bool{
	StatusPendente:            true,
	StatusSendoAtendido:       true,
	StatusFinalizado:          true,
	StatusSemSucesso:          true,
	StatusAguardandoPagamento: true,
	StatusPago:                true,
	StatusCancelado:           true,
}

// ParseStatus converte entrada não confiável no enum fechado.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !validStatuses[st] {
		return "", fmt.Errorf("invalid status %q", s)
	}
	return st, nil
}

// PixType é o tipo da chave pix cadastrada para repasse.
type PixType string

const (
	PixCPF            PixType = "CPF"
	PixCNPJ           PixType = "CNPJ"
	PixEmail          PixType = "Email"
	PixTelefone       PixType = "Telefone"
	PixChaveAleatoria PixType = "Chave Aleatória"
)

var validPixTypes = map[PixType]bool{
	PixCPF:            true,
	PixCNPJ:           true,
	PixEmail:          true,
	PixTelefone:       true,
	PixChaveAleatoria: true,
}

func ParsePixType(s string) (PixType, error) {
	p := PixType(s)
	if !validPixTypes[p] {
		return "", fmt.Errorf("invalid pix type %q", s)
	}
	return p, nil
}
