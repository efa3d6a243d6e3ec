package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"golang.org/x/oauth2"

	"indicamais/internal/authz"
	"indicamais/internal/models"
	"indicamais/internal/utils"
)

var (
	ErrNoEmail          = errors.New("no primary email address")
	ErrEmailNotVerified = errors.New("email not verified")
)

// DiscordUser é o perfil devolvido por /users/@me.
type DiscordUser struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	GlobalName *string `json:"global_name"`
	Avatar     *string `json:"avatar"`
	Email      string  `json:"email"`
	Verified   bool    `json:"verified"`
}

// IdentityService resolve um login OAuth do Discord para uma sessão local:
// troca o code por token, busca o perfil e localiza ou cria o usuário.
type IdentityService struct {
	Users      UserService
	Auth       AuthService
	OAuth      *oauth2.Config
	ProfileURL string
}

func NewIdentityService(users UserService, auth AuthService, oauth *oauth2.Config, profileURL string) *IdentityService {
	return &IdentityService{
		Users:      users,
		Auth:       auth,
		OAuth:      oauth,
		ProfileURL: profileURL,
	}
}

func (s *IdentityService) AuthorizeURL(state string) string {
	return s.OAuth.AuthCodeURL(state)
}

// HandleCallback executa a resolução de identidade e devolve a sessão
// iniciada. Erros de protocolo do provedor sobem como *oauth2.RetrieveError
// e o handler os converte em 400.
func (s *IdentityService) HandleCallback(ctx context.Context, code string) (*models.Session, error) {
	token, err := s.OAuth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	if profile.Email == "" {
		return nil, ErrNoEmail
	}
	if !profile.Verified {
		return nil, ErrEmailNotVerified
	}

	inUse, err := s.Users.EmailInUse(profile.Email)
	if err != nil {
		return nil, err
	}

	if inUse {
		existing, err := s.Users.GetByProvider(profile.Email, "discord", profile.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return s.Auth.StartSession(existing.ID)
		}
		// email já cadastrado, mas por outro provedor: vira uma conta nova
		return s.registerAndStartSession(profile, 8)
	}

	return s.registerAndStartSession(profile, 15)
}

func (s *IdentityService) registerAndStartSession(profile *DiscordUser, promoLen int) (*models.Session, error) {
	suffix, err := utils.NewID(10)
	if err != nil {
		return nil, err
	}
	promo, err := utils.NewID(promoLen)
	if err != nil {
		return nil, err
	}

	provider := "discord"
	user := &models.User{
		ID:             profile.Email + suffix,
		Name:           profile.Username,
		Email:          profile.Email,
		Job:            authz.RoleVendedorExterno,
		PromoCode:      &promo,
		Provider:       &provider,
		ProviderUserID: &profile.ID,
		AvatarURL:      avatarURL(profile),
		Active:         true,
	}
	if err := s.Users.CreateUser(user); err != nil {
		return nil, err
	}
	log.Printf("[auth][discord] new user registered id=%s", user.ID)
	return s.Auth.StartSession(user.ID)
}

func (s *IdentityService) fetchProfile(ctx context.Context, token *oauth2.Token) (*DiscordUser, error) {
	client := s.OAuth.Client(ctx, token)
	resp, err := client.Get(s.ProfileURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord profile fetch returned %d", resp.StatusCode)
	}

	var profile DiscordUser
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func avatarURL(profile *DiscordUser) *string {
	if profile.Avatar == nil {
		return nil
	}
	u := fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", profile.ID, *profile.Avatar)
	return &u
}
