package authz

import "fmt"

// Role é o cargo do usuário (coluna job).
type Role string

const (
	RoleVendedorInterno Role = "Vendedor Interno"
	RoleVendedorExterno Role = "Vendedor Externo"
	RoleFinanceiro      Role = "Financeiro"
	RoleAdmin           Role = "Admin"
)

var validRoles = map[Role]bool{
	RoleVendedorInterno: true,
	RoleVendedorExterno: true,
	RoleFinanceiro:      true,
	RoleAdmin:           true,
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !validRoles[r] {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return r, nil
}

func IsElevated(r Role) bool {
	return r == RoleFinanceiro || r == RoleAdmin
}

// StatusOption é um item do dropdown de status no frontend.
type StatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// statusPorCargo preserva a tabela original byte a byte, inclusive a linha
// "Cancelado" duplicada do Admin — o frontend renderiza a lista como está.
var statusPorCargo = map[Role][]StatusOption{
	RoleVendedorInterno: {
		{Value: "Pendente", Label: "Pendente"},
		{Value: "Sendo Atendido", Label: "Sendo Atendido"},
		{Value: "Finalizado", Label: "Finalizado"},
		{Value: "Aguardando Pagamento", Label: "Aguardando Pagamento"},
		{Value: "Cancelado", Label: "Cancelado"},
	},
	RoleFinanceiro: {
		{Value: "Aguardando Pagamento", Label: "Aguardando Pagamento"},
		{Value: "Pago", Label: "Pago"},
		{Value: "Cancelado", Label: "Cancelado"},
	},
	RoleAdmin: {
		{Value: "Pendente", Label: "Pendente"},
		{Value: "Sendo Atendido", Label: "Sendo Atendido"},
		{Value: "Finalizado", Label: "Finalizado"},
		{Value: "Cancelado", Label: "Cancelado"},
		{Value: "Cancelado", Label: "Cancelado"},
		{Value: "Aguardando Pagamento", Label: "Aguardando Pagamento"},
		{Value: "Pago", Label: "Pago"},
	},
}

// StatusesForRole devolve as opções permitidas ao cargo, na ordem de
// apresentação. Cargo desconhecido devolve lista vazia, não erro.
func StatusesForRole(r Role) []StatusOption {
	opts, ok := statusPorCargo[r]
	if !ok {
		return []StatusOption{}
	}
	out := make([]StatusOption, len(opts))
	copy(out, opts)
	return out
}

// RoleAllowsStatus diz se o cargo pode atribuir o status via fluxo
// operacional. O fluxo financeiro NÃO consulta esta tabela: ele tem a
// própria lista fixa (ver services.SettlementService).
func RoleAllowsStatus(r Role, status string) bool {
	for _, opt := range statusPorCargo[r] {
		if opt.Value == status {
			return true
		}
	}
	return false
}
