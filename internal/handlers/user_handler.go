package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"indicamais/internal/models"
	"indicamais/internal/repositories"
	"indicamais/internal/services"
)

type UserHandler struct {
	Service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// @Summary      Perfil do usuário autenticado
// @Tags         Users
// @Produce      json
// @Success      200  {object}  models.User
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Atualiza dados de repasse e endereço
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        profile  body      models.UpdateProfileRequest  true  "Campos a atualizar"
// @Success      200      {object}  models.User
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.UpdateProfile(user, &req); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Chave pix já cadastrada"})
			return
		}
		log.Printf("[users][update] user=%s: %v", user.ID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Lista usuários (Admin)
// @Tags         Users
// @Produce      json
// @Success      200  {array}  models.User
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	users, err := h.Service.ListUsers(limit, offset)
	if err != nil {
		log.Printf("[users][list] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar usuários"})
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	c.JSON(http.StatusOK, users)
}
