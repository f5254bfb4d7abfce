package repository

import (
	"time"

	"github.com/yourusername/study-api/internal/domain/entity"
)

// SubjectSummary — строка списка предметов на главной: предмет плюс
// количество собственных вопросов и число вопросов с текущими ошибками.
type SubjectSummary struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
	QuestionCount int64     `json:"q_count"`
	WrongCount    int64     `json:"wrong_count"`
}

// SubjectRepository определяет методы для работы с предметами
type SubjectRepository interface {
	Create(subject *entity.Subject) error
	GetByID(id uint) (*entity.Subject, error)
	// GetOwned возвращает предмет только если он принадлежит userID,
	// иначе ErrNotFound.
	GetOwned(id, userID uint) (*entity.Subject, error)
	GetByNameAndOwner(name string, userID uint) (*entity.Subject, error)
	ListSummaries(userID uint) ([]SubjectSummary, error)
	Delete(id, userID uint) error
}
