package repository

import (
	"github.com/yourusername/study-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	Create(question *entity.Question) error
	CreateBatch(questions []entity.Question) error
	// GetAccessible возвращает вопрос, если userID — владелец или получатель
	// раздачи билета вопроса; отсутствие и отсутствие доступа неразличимы
	// (оба — ErrNotFound).
	GetAccessible(id, userID uint) (*entity.Question, error)
	// GetEffective возвращает эффективное представление: статические поля
	// плюс персональный статус userID (нулевые значения при отсутствии записи).
	// Изображения в представление не входят — их добавляет сервис.
	GetEffective(id, userID uint) (*entity.EffectiveQuestionView, error)
	// ListIDs возвращает идентификаторы вопросов по контексту выборки.
	ListIDs(filter StudyFilter) ([]uint, error)
	ListByPaper(paperID uint) ([]entity.Question, error)
	Delete(id, userID uint) error
	// CountAccessible возвращает число доступных вопросов (свои + розданные).
	CountAccessible(userID uint) (int64, error)

	AddImage(image *entity.QuestionImage) error
	ListImages(questionID uint) ([]entity.QuestionImage, error)
}
