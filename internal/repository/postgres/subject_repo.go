package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/study-api/internal/domain/entity"
	"github.com/yourusername/study-api/internal/domain/repository"
	apperrors "github.com/yourusername/study-api/internal/pkg/errors"
)

// SubjectRepo реализует repository.SubjectRepository
type SubjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo создает новый репозиторий предметов
func NewSubjectRepo(db *gorm.DB) *SubjectRepo {
	return &SubjectRepo{db: db}
}

// Create создает предмет. Имя уникально в пределах владельца:
// конфликт не ошибка СУБД, а ErrConflict для вызывающего.
func (r *SubjectRepo) Create(subject *entity.Subject) error {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(subject)
	if result.Error != nil {
		return result.Error
	}
	if subject.ID == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// GetByID получает предмет по ID
func (r *SubjectRepo) GetByID(id uint) (*entity.Subject, error) {
	var subject entity.Subject
	err := r.db.First(&subject, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &subject, nil
}

// GetOwned получает предмет, только если он принадлежит userID
func (r *SubjectRepo) GetOwned(id, userID uint) (*entity.Subject, error) {
	var subject entity.Subject
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&subject).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &subject, nil
}

// GetByNameAndOwner ищет предмет по имени среди предметов владельца
func (r *SubjectRepo) GetByNameAndOwner(name string, userID uint) (*entity.Subject, error) {
	var subject entity.Subject
	err := r.db.Where("name = ? AND user_id = ?", name, userID).First(&subject).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &subject, nil
}

// ListSummaries возвращает предметы пользователя со счетчиками для главной:
// число собственных вопросов и число вопросов с текущими ошибками.
func (r *SubjectRepo) ListSummaries(userID uint) ([]repository.SubjectSummary, error) {
	sql := `
		SELECT s.id, s.name, s.created_at,
		       (SELECT COUNT(*) FROM questions q
		         WHERE q.subject_id = s.id AND q.user_id = ?) AS question_count,
		       (SELECT COUNT(*) FROM user_question_status uqs
		          JOIN questions q ON uqs.question_id = q.id
		         WHERE q.subject_id = s.id AND uqs.user_id = ? AND uqs.wrong_count > 0) AS wrong_count
		FROM subjects s
		WHERE s.user_id = ?
		ORDER BY s.name ASC
	`

	var summaries []repository.SubjectSummary
	err := r.db.Raw(sql, userID, userID, userID).Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Delete удаляет предмет вместе с его билетами и вопросами (каскад в БД),
// только если предмет принадлежит userID.
func (r *SubjectRepo) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Subject{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
