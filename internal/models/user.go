package models

import (
	"time"

	"indicamais/internal/authz"
)

type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // não sai na API
	Job          authz.Role `json:"job"`

	CPF       *string `json:"cpf,omitempty"`
	Telefone  *string `json:"telefone,omitempty"`
	PromoCode *string `json:"promo_code,omitempty"`

	// dados de repasse
	PixType        *PixType `json:"pix_type,omitempty"`
	PixCode        *string  `json:"pix_code,omitempty"`
	BonusIndicacao int      `json:"bonus_indicacao"`

	// endereço
	CEP         *string `json:"cep,omitempty"`
	Rua         *string `json:"rua,omitempty"`
	NumeroCasa  *int    `json:"numero_casa,omitempty"`
	Complemento *string `json:"complemento,omitempty"`
	Bairro      *string `json:"bairro,omitempty"`
	Cidade      *string `json:"cidade,omitempty"`
	Estado      *string `json:"estado,omitempty"`

	// login social
	Provider       *string `json:"-"`
	ProviderUserID *string `json:"-"`
	AvatarURL      *string `json:"avatar_url,omitempty"`

	Active    bool      `json:"active"` // coluna status
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Telefone    *string `json:"telefone"`
	PixType     *string `json:"pix_type"`
	PixCode     *string `json:"pix_code"`
	CEP         *string `json:"cep"`
	Rua         *string `json:"rua"`
	NumeroCasa  *int    `json:"numero_casa"`
	Complemento *string `json:"complemento"`
	Bairro      *string `json:"bairro"`
	Cidade      *string `json:"cidade"`
	Estado      *string `json:"estado"`
}
