package postgres

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/study-api/internal/domain/entity"
)

// AssignmentRepo реализует repository.AssignmentRepository
type AssignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo создает новый репозиторий раздач билетов
func NewAssignmentRepo(db *gorm.DB) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

// Create создает раздачу; повторная раздача той же пары (paper_id, user_id)
// молча игнорируется.
func (r *AssignmentRepo) Create(assignment *entity.PaperAssignment) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(assignment).Error
}

// Exists проверяет наличие раздачи билета пользователю
func (r *AssignmentRepo) Exists(paperID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.PaperAssignment{}).
		Where("paper_id = ? AND user_id = ?", paperID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByPaperAndGrantor отзывает раздачи билета, выданные grantedBy.
// Отзыв мгновенно скрывает вопросы билета у получателей; их статусы
// остаются в таблице и оживают при повторной раздаче.
func (r *AssignmentRepo) DeleteByPaperAndGrantor(paperID, grantedBy uint) error {
	return r.db.Where("paper_id = ? AND assigned_by = ?", paperID, grantedBy).
		Delete(&entity.PaperAssignment{}).Error
}
