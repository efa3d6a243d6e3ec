package services

import (
	"log"

	"indicamais/internal/models"
	"indicamais/internal/repositories"
)

type UserService interface {
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetByProvider(email, provider, providerUserID string) (*models.User, error)
	EmailInUse(email string) (bool, error)
	UpdateProfile(user *models.User, req *models.UpdateProfileRequest) error
	ListUsers(limit, offset int) ([]*models.User, error)
}

type userService struct {
	repo         repositories.UserRepository
	emailService EmailService
}

func NewUserService(repo repositories.UserRepository, emailService EmailService) UserService {
	return &userService{
		repo:         repo,
		emailService: emailService,
	}
}

func (s *userService) CreateUser(user *models.User) error {
	if err := s.repo.Create(user); err != nil {
		return err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.Name); err != nil {
			// warn but do not fail creation
			log.Printf("[users][create] warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	return nil
}

func (s *userService) GetUserByID(id string) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(email)
}

func (s *userService) GetByProvider(email, provider, providerUserID string) (*models.User, error) {
	return s.repo.GetByProvider(email, provider, providerUserID)
}

func (s *userService) EmailInUse(email string) (bool, error) {
	return s.repo.EmailInUse(email)
}

func (s *userService) UpdateProfile(user *models.User, req *models.UpdateProfileRequest) error {
	if req.Telefone != nil {
		user.Telefone = req.Telefone
	}
	if req.PixType != nil {
		pt, err := models.ParsePixType(*req.PixType)
		if err != nil {
			return err
		}
		user.PixType = &pt
	}
	if req.PixCode != nil {
		user.PixCode = req.PixCode
	}
	if req.CEP != nil {
		user.CEP = req.CEP
	}
	if req.Rua != nil {
		user.Rua = req.Rua
	}
	if req.NumeroCasa != nil {
		user.NumeroCasa = req.NumeroCasa
	}
	if req.Complemento != nil {
		user.Complemento = req.Complemento
	}
	if req.Bairro != nil {
		user.Bairro = req.Bairro
	}
	if req.Cidade != nil {
		user.Cidade = req.Cidade
	}
	if req.Estado != nil {
		user.Estado = req.Estado
	}
	return s.repo.Update(user)
}

func (s *userService) ListUsers(limit, offset int) ([]*models.User, error) {
	return s.repo.List(limit, offset)
}
