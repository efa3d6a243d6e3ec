package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"indicamais/internal/middleware"
	"indicamais/internal/models"
	"indicamais/internal/services"
)

type AuthHandler struct {
	userService services.UserService
	authService services.AuthService
}

func NewAuthHandler(userService services.UserService, authService services.AuthService) *AuthHandler {
	return &AuthHandler{userService: userService, authService: authService}
}

// @Summary      Login com email e senha
// @Description  Autentica o usuário, grava o cookie de sessão e devolve um access token para clientes de API
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credenciais"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)

	user, err := h.userService.GetUserByEmail(email)
	if err != nil || user == nil {
		log.Printf("[auth][login] user not found email=%q: %v", email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou senha inválidos"})
		return
	}
	if !user.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou senha inválidos"})
		return
	}
	if err := h.authService.CheckPassword(user.PasswordHash, strings.TrimSpace(req.Password)); err != nil {
		log.Printf("[auth][login] bcrypt mismatch user=%s", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou senha inválidos"})
		return
	}

	session, err := h.authService.StartSession(user.ID)
	if err != nil {
		log.Printf("[auth][login] start session failed user=%s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao iniciar sessão"})
		return
	}
	setSessionCookie(c, session)

	accessToken, err := h.authService.NewAccessToken(user)
	if err != nil {
		log.Printf("[auth][login] sign access token failed user=%s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar token"})
		return
	}

	log.Printf("[auth][login] success user=%s job=%s", user.ID, user.Job)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login realizado com sucesso",
		"user":    user, // PasswordHash tem json:"-", não vaza
		"tokens": gin.H{
			"access_token": accessToken,
		},
	})
}

// @Summary      Logout
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(middleware.SessionCookie); err == nil && sessionID != "" {
		if err := h.authService.EndSession(sessionID); err != nil {
			log.Printf("[auth][logout] end session failed: %v", err)
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Sessão encerrada"})
}

func setSessionCookie(c *gin.Context, session *models.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetCookie(middleware.SessionCookie, session.ID, maxAge, "/", "", false, true)
}
