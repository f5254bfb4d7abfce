package entity

import "time"

// StudyRecord представляет одно событие ответа — строка журнала только
// добавляется, никогда не изменяется (удаление только массовое, при сбросе
// статистики). Используется исключительно для агрегатов (точность, активность),
// не для вычисления статуса.
//
// StudiedAt записывается в локальном времени пользователя, а не в UTC:
// статистика "за сегодня" должна совпадать с календарным днем пользователя.
type StudyRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	IsCorrect  bool      `gorm:"not null" json:"is_correct"`
	StudiedAt  time.Time `gorm:"not null" json:"studied_at"`
}

// TableName определяет имя таблицы для GORM
func (StudyRecord) TableName() string {
	return "study_records"
}
