package repository

import (
	"time"

	"github.com/yourusername/study-api/internal/domain/entity"
)

// PaperListItem — строка списка билетов: билет плюс имя предмета,
// количество вопросов и признак "получен по раздаче".
type PaperListItem struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	SubjectID     uint      `json:"subject_id"`
	SubjectName   string    `json:"subject_name"`
	UserID        uint      `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
	QuestionCount int64     `json:"q_count"`
	IsAssigned    bool      `json:"is_assigned"`
}

// PaperRepository определяет методы для работы с билетами
type PaperRepository interface {
	Create(paper *entity.Paper) error
	GetByID(id uint) (*entity.Paper, error)
	// GetAccessible возвращает билет, если userID — владелец или получатель
	// раздачи, иначе ErrNotFound (без различения "нет" и "нет доступа").
	GetAccessible(id, userID uint) (*entity.Paper, error)
	// ListAccessible возвращает собственные и розданные пользователю билеты.
	ListAccessible(userID uint) ([]PaperListItem, error)
	// ListAssigned возвращает только билеты, полученные по раздаче.
	ListAssigned(userID uint) ([]PaperListItem, error)
	Delete(id, userID uint) error
}
