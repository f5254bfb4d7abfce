package entity

// EffectiveQuestionView — эффективное представление вопроса для конкретного
// пользователя: статические поля вопроса плюс наложенный персональный статус.
// При отсутствии записи статуса подставляются нулевые значения, а HasRecord
// остается false — так различаются "никогда не решал" и "решал и сейчас
// без ошибок".
type EffectiveQuestionView struct {
	Question

	WrongCount   int  `json:"wrong_count"`
	HistoryWrong bool `json:"history_wrong"`
	IsDifficult  bool `json:"is_difficult"`
	HasRecord    bool `json:"has_record"`

	QuestionImages []string `json:"q_imgs" gorm:"-"`
	AnswerImages   []string `json:"a_imgs" gorm:"-"`
}
