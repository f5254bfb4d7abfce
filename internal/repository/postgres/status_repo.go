package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/study-api/internal/domain/entity"
	apperrors "github.com/yourusername/study-api/internal/pkg/errors"
)

// StatusRepo реализует repository.StatusRepository
type StatusRepo struct {
	db *gorm.DB
}

// NewStatusRepo создает новый репозиторий статусов вопросов
func NewStatusRepo(db *gorm.DB) *StatusRepo {
	return &StatusRepo{db: db}
}

// Get возвращает запись статуса по составному ключу
func (r *StatusRepo) Get(userID, questionID uint) (*entity.UserQuestionStatus, error) {
	var status entity.UserQuestionStatus
	err := r.db.Where("user_id = ? AND question_id = ?", userID, questionID).First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &status, nil
}

// ClearProgress обнуляет wrong_count и is_difficult, не трогая history_wrong.
// Отсутствие записи — не ошибка: сбрасывать нечего.
func (r *StatusRepo) ClearProgress(userID, questionID uint) error {
	return r.db.Model(&entity.UserQuestionStatus{}).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Updates(map[string]interface{}{
			"wrong_count":  0,
			"is_difficult": false,
		}).Error
}

// ResetForOwnedQuestions обнуляет прогресс пользователя по принадлежащим
// ему вопросам. Статусы по розданным чужим вопросам не затрагиваются.
func (r *StatusRepo) ResetForOwnedQuestions(userID uint) error {
	sql := `
		UPDATE user_question_status
		SET wrong_count = 0, is_difficult = FALSE
		WHERE user_id = ?
		  AND question_id IN (SELECT id FROM questions WHERE user_id = ?)
	`
	return r.db.Exec(sql, userID, userID).Error
}
