package dto

// LoginRequest — тело запроса входа
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest — тело запроса смены пароля
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// CreateUserRequest — тело админского запроса создания пользователя
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// CreateSubjectRequest — тело запроса создания предмета
type CreateSubjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreatePaperRequest — тело запроса создания билета
type CreatePaperRequest struct {
	SubjectID uint   `json:"subject_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
}

// CreateQuestionRequest — тело запроса создания вопроса.
// PaperID == nil означает вопрос банка.
type CreateQuestionRequest struct {
	SubjectID     uint   `json:"subject_id" binding:"required"`
	PaperID       *uint  `json:"paper_id"`
	Text          string `json:"text" binding:"required"`
	Type          string `json:"type" binding:"required"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	Source        string `json:"source"`
}

// RecordAnswerRequest — тело запроса фиксации ответа
type RecordAnswerRequest struct {
	QuestionID uint  `json:"question_id" binding:"required"`
	Correct    *bool `json:"correct" binding:"required"`
}

// DistributeRequest — тело запроса раздачи билета
type DistributeRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required"`
}
