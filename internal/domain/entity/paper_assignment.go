package entity

import "time"

// PaperAssignment представляет раздачу билета пользователю администратором.
// Наличие записи — единственное доказательство права не-владельца видеть
// вопросы билета. Пара (paper_id, user_id) уникальна.
type PaperAssignment struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PaperID    uint `gorm:"not null;uniqueIndex:idx_assignments_paper_user" json:"paper_id"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_assignments_paper_user;index" json:"user_id"`
	AssignedBy uint `gorm:"not null" json:"assigned_by"`

	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`
}

// TableName определяет имя таблицы для GORM
func (PaperAssignment) TableName() string {
	return "paper_assignments"
}
