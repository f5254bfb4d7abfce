package entity

import "time"

// Subject представляет предмет — именованную группу вопросов одного владельца.
// Имя уникально в пределах владельца (uniqueIndex по паре name+user_id).
type Subject struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:100;not null;uniqueIndex:idx_subjects_name_owner" json:"name"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_subjects_name_owner;index" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Subject) TableName() string {
	return "subjects"
}
