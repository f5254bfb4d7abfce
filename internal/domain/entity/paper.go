package entity

import "time"

// Paper представляет билет — именованный набор вопросов внутри предмета.
// Билет принадлежит создателю и может быть раздан другим пользователям
// администратором (см. PaperAssignment).
type Paper struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	SubjectID uint   `gorm:"not null;index" json:"subject_id"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Paper) TableName() string {
	return "papers"
}

// IsOwnedBy возвращает true, если билет принадлежит пользователю
func (p *Paper) IsOwnedBy(userID uint) bool {
	return p.UserID == userID
}
