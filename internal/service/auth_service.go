package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/study-api/internal/domain/entity"
	"github.com/yourusername/study-api/internal/domain/repository"
	apperrors "github.com/yourusername/study-api/internal/pkg/errors"
	"github.com/yourusername/study-api/pkg/auth"
)

// Учетные данные администратора по умолчанию: создаются только при
// полностью пустой таблице пользователей.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

const minPasswordLength = 6

// AuthService реализует вход, смену пароля и администрирование пользователей
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login проверяет учетные данные и выпускает access-токен.
// Неизвестное имя и неверный пароль неразличимы: оба — ErrUnauthorized.
func (s *AuthService) Login(username, password string) (*entity.User, string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
		}
		return nil, "", err
	}

	if !user.CheckPassword(password) {
		return nil, "", fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	log.Printf("[AuthService] user %s (id %d) logged in", user.Username, user.ID)
	return user, token, nil
}

// GetUser возвращает пользователя по ID
func (s *AuthService) GetUser(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}

// ChangePassword меняет пароль после проверки старого
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, minPasswordLength)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(oldPassword) {
		return fmt.Errorf("%w: old password is incorrect", apperrors.ErrUnauthorized)
	}

	// Хеширование выполняет хук BeforeSave
	user.Password = newPassword
	return s.userRepo.Update(user)
}

// CreateUser создает пользователя (админская операция)
func (s *AuthService) CreateUser(username, password, role string) (*entity.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, minPasswordLength)
	}
	if role != entity.RoleUser && role != entity.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}

	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrConflict, username)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	user := &entity.User{
		Username: username,
		Password: password,
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers возвращает всех пользователей
func (s *AuthService) ListUsers() ([]entity.User, error) {
	return s.userRepo.List()
}

// DeleteUser удаляет пользователя; удалить самого себя нельзя
func (s *AuthService) DeleteUser(callerID, targetID uint) error {
	if callerID == targetID {
		return fmt.Errorf("%w: cannot delete yourself", apperrors.ErrValidation)
	}
	return s.userRepo.Delete(targetID)
}

// EnsureDefaultAdmin создает администратора по умолчанию, если таблица
// пользователей пуста. Вызывается один раз при старте приложения.
func (s *AuthService) EnsureDefaultAdmin() error {
	count, err := s.userRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &entity.User{
		Username: defaultAdminUsername,
		Password: defaultAdminPassword,
		Role:     entity.RoleAdmin,
	}
	if err := s.userRepo.Create(admin); err != nil {
		return err
	}

	log.Printf("[AuthService] default admin %q created, change the password immediately", defaultAdminUsername)
	return nil
}
