package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/study-api/internal/domain/entity"
	"github.com/yourusername/study-api/internal/domain/repository"
	apperrors "github.com/yourusername/study-api/internal/pkg/errors"
)

// PaperRepo реализует repository.PaperRepository
type PaperRepo struct {
	db *gorm.DB
}

// NewPaperRepo создает новый репозиторий билетов
func NewPaperRepo(db *gorm.DB) *PaperRepo {
	return &PaperRepo{db: db}
}

// Create создает новый билет
func (r *PaperRepo) Create(paper *entity.Paper) error {
	return r.db.Create(paper).Error
}

// GetByID получает билет по ID
func (r *PaperRepo) GetByID(id uint) (*entity.Paper, error) {
	var paper entity.Paper
	err := r.db.First(&paper, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &paper, nil
}

// GetAccessible получает билет, если userID — владелец или получатель раздачи
func (r *PaperRepo) GetAccessible(id, userID uint) (*entity.Paper, error) {
	var paper entity.Paper
	err := r.db.
		Joins("LEFT JOIN paper_assignments pa ON papers.id = pa.paper_id AND pa.user_id = ?", userID).
		Where("papers.id = ? AND (papers.user_id = ? OR pa.user_id = ?)", id, userID, userID).
		First(&paper).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &paper, nil
}

// ListAccessible возвращает собственные и розданные пользователю билеты
// со счетчиком вопросов, свежие первыми.
func (r *PaperRepo) ListAccessible(userID uint) ([]repository.PaperListItem, error) {
	sql := `
		SELECT p.id, p.name, p.subject_id, s.name AS subject_name,
		       p.user_id, p.created_at,
		       COUNT(DISTINCT q.id) AS question_count,
		       (p.user_id <> ?) AS is_assigned
		FROM papers p
		JOIN subjects s ON p.subject_id = s.id
		LEFT JOIN questions q ON q.paper_id = p.id
		LEFT JOIN paper_assignments pa ON pa.paper_id = p.id AND pa.user_id = ?
		WHERE p.user_id = ? OR pa.user_id = ?
		GROUP BY p.id, s.name
		ORDER BY p.created_at DESC, p.id DESC
	`

	var items []repository.PaperListItem
	err := r.db.Raw(sql, userID, userID, userID, userID).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListAssigned возвращает только билеты, полученные по раздаче
func (r *PaperRepo) ListAssigned(userID uint) ([]repository.PaperListItem, error) {
	sql := `
		SELECT p.id, p.name, p.subject_id, s.name AS subject_name,
		       p.user_id, p.created_at,
		       COUNT(DISTINCT q.id) AS question_count,
		       TRUE AS is_assigned
		FROM paper_assignments pa
		JOIN papers p ON pa.paper_id = p.id
		JOIN subjects s ON p.subject_id = s.id
		LEFT JOIN questions q ON q.paper_id = p.id
		WHERE pa.user_id = ?
		GROUP BY p.id, s.name
		ORDER BY p.created_at DESC, p.id DESC
	`

	var items []repository.PaperListItem
	err := r.db.Raw(sql, userID).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Delete удаляет билет вместе с вопросами и раздачами (каскад в БД),
// только если билет принадлежит userID.
func (r *PaperRepo) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Paper{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
