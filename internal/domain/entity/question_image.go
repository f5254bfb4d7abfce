package entity

// Стороны изображения вопроса
const (
	ImageTypeQuestion = "question" // изображение условия
	ImageTypeAnswer   = "answer"   // изображение ответа/решения
)

// QuestionImage представляет изображение, прикрепленное к вопросу.
// Path — имя файла в каталоге загрузок (uuid + расширение).
type QuestionImage struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Path       string `gorm:"size:255;not null" json:"path"`
	ImageType  string `gorm:"size:20;not null" json:"image_type"` // "question" или "answer"
}

// TableName определяет имя таблицы для GORM
func (QuestionImage) TableName() string {
	return "question_images"
}
