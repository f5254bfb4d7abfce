package entity

import "time"

// Типы вопросов (хранимые значения)
const (
	QuestionTypeObjective  = "objective"  // одиночный выбор
	QuestionTypeMulti      = "multi"      // множественный выбор
	QuestionTypeFill       = "fill"       // заполнение пропуска
	QuestionTypeSubjective = "subjective" // развернутый ответ
)

// Question представляет вопрос в банке или внутри билета.
// PaperID == nil означает вопрос банка: он принадлежит только создателю
// и не попадает в раздачи.
type Question struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	SubjectID uint  `gorm:"not null;index" json:"subject_id"`
	PaperID   *uint `gorm:"index" json:"paper_id,omitempty"`
	UserID    uint  `gorm:"not null;index" json:"user_id"`

	Text          string `gorm:"type:text" json:"text"`
	Type          string `gorm:"size:20;not null" json:"type"`
	OptionA       string `gorm:"type:text" json:"option_a,omitempty"`
	OptionB       string `gorm:"type:text" json:"option_b,omitempty"`
	OptionC       string `gorm:"type:text" json:"option_c,omitempty"`
	OptionD       string `gorm:"type:text" json:"option_d,omitempty"`
	CorrectAnswer string `gorm:"type:text" json:"correct_answer"`
	Source        string `gorm:"size:255" json:"source,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsBankQuestion возвращает true, если вопрос не привязан к билету
func (q *Question) IsBankQuestion() bool {
	return q.PaperID == nil
}

// IsOwnedBy возвращает true, если вопрос принадлежит пользователю
func (q *Question) IsOwnedBy(userID uint) bool {
	return q.UserID == userID
}

// IsValidQuestionType проверяет, что тип вопроса — одно из хранимых значений
func IsValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeObjective, QuestionTypeMulti, QuestionTypeFill, QuestionTypeSubjective:
		return true
	}
	return false
}
