package models

// LeadReceipt é o comprovante de pagamento de um lead, guardado como data
// URI (data:<mime>;base64,<payload>).
type LeadReceipt struct {
	ID          string `json:"id"`
	LeadID      string `json:"leads_id"`
	Comprovante string `json:"comprovante"`
}
