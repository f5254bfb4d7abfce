package repository

import (
	"github.com/yourusername/study-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	List() ([]entity.User, error)
	Update(user *entity.User) error
	Delete(id uint) error
	Count() (int64, error)
}
