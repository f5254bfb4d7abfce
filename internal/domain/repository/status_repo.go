package repository

import (
	"github.com/yourusername/study-api/internal/domain/entity"
)

// StatusRepository определяет методы для работы с персональным статусом
// вопросов. Запись с составным ключом (user_id, question_id) создается
// лениво протоколом ответа; здесь только чтение и явные сбросы.
type StatusRepository interface {
	// Get возвращает запись статуса или ErrNotFound, если пользователь
	// еще не отвечал на вопрос.
	Get(userID, questionID uint) (*entity.UserQuestionStatus, error)
	// ClearProgress обнуляет wrong_count и is_difficult, не трогая
	// history_wrong. Идемпотентна: отсутствие записи — не ошибка.
	ClearProgress(userID, questionID uint) error
	// ResetForOwnedQuestions обнуляет wrong_count и is_difficult на записях
	// пользователя по принадлежащим ему вопросам. history_wrong не трогает.
	ResetForOwnedQuestions(userID uint) error
}
