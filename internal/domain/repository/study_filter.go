package repository

// StudyContext — именованный контекст выборки вопросов. Каждый контекст
// добавляет собственный предикат к базовому правилу доступа
// "владелец ИЛИ получатель раздачи билета".
type StudyContext string

const (
	// ContextBank — вопросы банка: без билета и только собственные.
	ContextBank StudyContext = "bank"
	// ContextAllLoop — все вопросы предмета без билета (доступ все равно обязателен).
	ContextAllLoop StudyContext = "all_loop"
	// ContextError — вопросы с текущей серией ошибок (wrong_count > 0, не история).
	ContextError StudyContext = "error"
	// ContextDifficult — вопросы с пометкой сложного.
	ContextDifficult StudyContext = "difficult"
	// ContextPaper — вопросы одного билета.
	ContextPaper StudyContext = "paper"
	// ContextSubjectList — список предмета: собственные вопросы банка плюс
	// вопросы билетов, у которых есть хоть один положительный флаг статуса.
	// Так решенные с ошибкой вопросы билета "просачиваются" в список предмета.
	ContextSubjectList StudyContext = "subject_list"
)

// Order — порядок выдачи идентификаторов.
type Order string

const (
	// OrderRandom — случайный порядок, для учебных сессий.
	OrderRandom Order = "random"
	// OrderNewest — сначала новые, для списочных страниц.
	OrderNewest Order = "newest"
	// OrderStable — по возрастанию id: нумерация вопросов билета
	// не меняется между просмотрами.
	OrderStable Order = "stable"
)

// StudyFilter описывает выборку вопросов для пользователя.
// Нулевой SubjectID означает "без ограничения по предмету";
// PaperID обязателен только для ContextPaper.
type StudyFilter struct {
	UserID    uint
	SubjectID uint
	PaperID   uint
	Context   StudyContext
	Type      string // хранимое значение типа вопроса; "" — без фильтра
	Order     Order
}

// Valid проверяет согласованность фильтра.
func (f StudyFilter) Valid() bool {
	switch f.Context {
	case ContextPaper:
		return f.PaperID != 0
	case ContextBank, ContextAllLoop, ContextError, ContextDifficult, ContextSubjectList:
		return true
	}
	return false
}
