package entity

// DifficultPromotionThreshold — порог серии неверных ответов, после которого
// вопрос автоматически помечается сложным.
const DifficultPromotionThreshold = 2

// UserQuestionStatus представляет персональный прогресс пользователя по вопросу.
// Составной первичный ключ (user_id, question_id): один и тот же вопрос имеет
// независимые записи у владельца и у каждого получателя раздачи.
//
// Отсутствие записи эквивалентно нулевым значениям — запись создается лениво
// при первом ответе.
type UserQuestionStatus struct {
	UserID     uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	QuestionID uint `gorm:"primaryKey;autoIncrement:false" json:"question_id"`

	// WrongCount — число неверных ответов подряд с момента последнего сброса.
	// Обнуляется любым верным ответом.
	WrongCount int `gorm:"not null;default:0" json:"wrong_count"`

	// HistoryWrong — одноходовая защелка "пользователь хоть раз ошибся".
	// Ставится любым неверным ответом и никогда не снимается автоматически.
	// Ни одна операция API ее не сбрасывает.
	HistoryWrong bool `gorm:"not null;default:false" json:"history_wrong"`

	// IsDifficult ставится автоматически при WrongCount >= 2 в текущей серии
	// либо вручную; верный ответ его не снимает, только явный сброс.
	IsDifficult bool `gorm:"not null;default:false" json:"is_difficult"`
}

// TableName определяет имя таблицы для GORM
func (UserQuestionStatus) TableName() string {
	return "user_question_status"
}

// NewStatusForAnswer создает ленивую запись статуса по первому ответу пользователя.
// Первый неверный ответ дает wrong_count=1 и ставит защелку history_wrong;
// is_difficult при создании никогда не ставится (порог — две ошибки подряд).
func NewStatusForAnswer(userID, questionID uint, correct bool) *UserQuestionStatus {
	st := &UserQuestionStatus{
		UserID:     userID,
		QuestionID: questionID,
	}
	if !correct {
		st.WrongCount = 1
		st.HistoryWrong = true
	}
	return st
}

// ApplyAnswer применяет эффект одного ответа к существующей записи.
//
// Верный ответ обнуляет только wrong_count: history_wrong и is_difficult
// остаются как были. Неверный ответ инкрементирует wrong_count, ставит
// history_wrong и, при достижении порога, is_difficult.
func (s *UserQuestionStatus) ApplyAnswer(correct bool) {
	if correct {
		s.WrongCount = 0
		return
	}

	s.WrongCount++
	s.HistoryWrong = true
	if s.WrongCount >= DifficultPromotionThreshold {
		s.IsDifficult = true
	}
}

// ClearProgress обнуляет wrong_count и is_difficult, не трогая history_wrong.
// Используется и операцией "я это освоил", и операцией "убрать пометку сложного":
// два имени в API — один эффект.
func (s *UserQuestionStatus) ClearProgress() {
	s.WrongCount = 0
	s.IsDifficult = false
}
