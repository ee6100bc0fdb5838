package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lapstock/lapstock-api/internal/application/dto"
	"github.com/lapstock/lapstock-api/internal/domain"
	"github.com/lapstock/lapstock-api/internal/domain/entity"
	"github.com/lapstock/lapstock-api/internal/domain/repository"
	"github.com/lapstock/lapstock-api/pkg/config"
	"github.com/lapstock/lapstock-api/pkg/jwt"
)

// validRoles roles aceptados en el registro.
var validRoles = map[string]bool{
	entity.RoleAdmin:    true,
	entity.RoleVendedor: true,
	entity.RoleContable: true,
}

// UseCase registro y autenticación de usuarios con emisión de JWT.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(userRepo repository.UserRepository, jwtCfg config.JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register da de alta un usuario y devuelve su token. El email se normaliza a
// minúsculas; rol vacío se registra como vendedor.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = entity.RoleVendedor
	}
	if !validRoles[role] {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return uc.issueToken(user)
}

// Login valida credenciales y devuelve un token. Email inexistente y contraseña
// incorrecta responden el mismo error para no filtrar qué cuentas existen.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueToken(user)
}

// Me devuelve el perfil del usuario autenticado.
func (uc *UseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (uc *UseCase) issueToken(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}
}
