package repository

import (
	"github.com/yourusername/study-api/internal/domain/entity"
)

// AssignmentRepository определяет методы для работы с раздачами билетов
type AssignmentRepository interface {
	// Create создает раздачу; повторная раздача той же пары
	// (paper_id, user_id) молча игнорируется.
	Create(assignment *entity.PaperAssignment) error
	Exists(paperID, userID uint) (bool, error)
	// DeleteByPaperAndGrantor отзывает раздачи билета, выданные grantedBy.
	DeleteByPaperAndGrantor(paperID, grantedBy uint) error
}
