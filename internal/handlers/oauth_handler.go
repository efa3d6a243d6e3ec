package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"indicamais/internal/services"
	"indicamais/internal/utils"
)

const stateCookie = "discord_oauth_state"

type OAuthHandler struct {
	Identity *services.IdentityService
}

func NewOAuthHandler(identity *services.IdentityService) *OAuthHandler {
	return &OAuthHandler{Identity: identity}
}

// @Summary      Redireciona para o login do Discord
// @Tags         Auth
// @Success      302
// @Router       /login/discord [get]
func (h *OAuthHandler) Redirect(c *gin.Context) {
	state, err := utils.NewID(16)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.SetCookie(stateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, h.Identity.AuthorizeURL(state))
}

// @Summary      Callback do OAuth do Discord
// @Description  Troca o code por token, resolve ou cria o usuário e grava o cookie de sessão
// @Tags         Auth
// @Success      302
// @Failure      400
// @Failure      500
// @Router       /login/discord/callback [get]
func (h *OAuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.String(http.StatusBadRequest, "Invalid OAuth state or code verifier")
		return
	}
	if stored, err := c.Cookie(stateCookie); err != nil || stored != state {
		c.String(http.StatusBadRequest, "Invalid OAuth state or code verifier")
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	session, err := h.Identity.HandleCallback(c.Request.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoEmail):
			c.String(http.StatusBadRequest, "No primary email address")
		case errors.Is(err, services.ErrEmailNotVerified):
			c.String(http.StatusBadRequest, "Email not verified")
		default:
			var oauthErr *oauth2.RetrieveError
			if errors.As(err, &oauthErr) {
				c.Status(http.StatusBadRequest)
				return
			}
			log.Printf("[auth][discord] callback failed: %v", err)
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	setSessionCookie(c, session)
	c.Redirect(http.StatusFound, "/")
}
