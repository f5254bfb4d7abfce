package repository

import (
	"time"

	"github.com/yourusername/study-api/internal/domain/entity"
)

// StudyRecordRepository определяет методы для работы с журналом ответов.
// Журнал только пополняется; единственное удаление — массовое, при сбросе
// статистики пользователя.
type StudyRecordRepository interface {
	Create(record *entity.StudyRecord) error
	DeleteByUser(userID uint) error
	// CountSince возвращает число ответов пользователя начиная с момента since
	// (обычно — полночь локального дня).
	CountSince(userID uint, since time.Time) (int64, error)
	// Totals возвращает общее число ответов и число верных.
	Totals(userID uint) (total int64, correct int64, err error)
}
