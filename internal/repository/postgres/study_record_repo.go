package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/study-api/internal/domain/entity"
)

// StudyRecordRepo реализует repository.StudyRecordRepository
type StudyRecordRepo struct {
	db *gorm.DB
}

// NewStudyRecordRepo создает новый репозиторий журнала ответов
func NewStudyRecordRepo(db *gorm.DB) *StudyRecordRepo {
	return &StudyRecordRepo{db: db}
}

// Create добавляет запись в журнал ответов
func (r *StudyRecordRepo) Create(record *entity.StudyRecord) error {
	return r.db.Create(record).Error
}

// DeleteByUser удаляет весь журнал пользователя (сброс статистики)
func (r *StudyRecordRepo) DeleteByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&entity.StudyRecord{}).Error
}

// CountSince возвращает число ответов пользователя начиная с момента since
func (r *StudyRecordRepo) CountSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entity.StudyRecord{}).
		Where("user_id = ? AND studied_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

// Totals возвращает общее число ответов и число верных
func (r *StudyRecordRepo) Totals(userID uint) (int64, int64, error) {
	var result struct {
		Total   int64
		Correct int64
	}
	sql := `
		SELECT COUNT(*) AS total,
		       COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0) AS correct
		FROM study_records
		WHERE user_id = ?
	`
	err := r.db.Raw(sql, userID).Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Total, result.Correct, nil
}
