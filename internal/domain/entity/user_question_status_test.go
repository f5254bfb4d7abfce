package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatusForAnswer_FirstWrong(t *testing.T) {
	// Arrange & Act
	st := NewStatusForAnswer(1, 42, false)

	// Assert
	assert.Equal(t, 1, st.WrongCount, "первый неверный ответ должен дать wrong_count=1")
	assert.True(t, st.HistoryWrong, "первый неверный ответ должен поставить защелку history_wrong")
	assert.False(t, st.IsDifficult, "одна ошибка не должна помечать вопрос сложным")
}

func TestNewStatusForAnswer_FirstCorrect(t *testing.T) {
	// Arrange & Act
	st := NewStatusForAnswer(1, 42, true)

	// Assert
	assert.Equal(t, 0, st.WrongCount)
	assert.False(t, st.HistoryWrong, "верный ответ не должен ставить history_wrong")
	assert.False(t, st.IsDifficult)
}

func TestApplyAnswer_TwoWrongInARow_PromotesToDifficult(t *testing.T) {
	// Arrange: первая ошибка
	st := NewStatusForAnswer(1, 42, false)
	require.False(t, st.IsDifficult)

	// Act: вторая ошибка подряд
	st.ApplyAnswer(false)

	// Assert: автоповышение на пороге
	assert.Equal(t, 2, st.WrongCount)
	assert.True(t, st.IsDifficult, "две ошибки подряд должны пометить вопрос сложным")
	assert.True(t, st.HistoryWrong)
}

func TestApplyAnswer_CorrectResetsOnlyWrongCount(t *testing.T) {
	// Arrange: вопрос уже сложный с историей ошибок
	st := &UserQuestionStatus{UserID: 1, QuestionID: 42, WrongCount: 3, HistoryWrong: true, IsDifficult: true}

	// Act
	st.ApplyAnswer(true)

	// Assert: обнуляется только счетчик серии
	assert.Equal(t, 0, st.WrongCount, "верный ответ должен обнулить wrong_count")
	assert.True(t, st.HistoryWrong, "верный ответ не должен снимать history_wrong")
	assert.True(t, st.IsDifficult, "верный ответ не должен снимать is_difficult")
}

func TestApplyAnswer_WrongAfterCorrect_StartsNewStreak(t *testing.T) {
	// Arrange: серия сброшена верным ответом
	st := &UserQuestionStatus{UserID: 1, QuestionID: 42, WrongCount: 0, HistoryWrong: true}

	// Act: одна новая ошибка
	st.ApplyAnswer(false)

	// Assert: новая серия начинается с 1, порог еще не достигнут
	assert.Equal(t, 1, st.WrongCount)
	assert.False(t, st.IsDifficult, "одна ошибка новой серии не должна помечать вопрос сложным")
}

func TestClearProgress_KeepsHistoryWrong(t *testing.T) {
	// Arrange
	st := &UserQuestionStatus{UserID: 1, QuestionID: 42, WrongCount: 2, HistoryWrong: true, IsDifficult: true}

	// Act
	st.ClearProgress()

	// Assert
	assert.Equal(t, 0, st.WrongCount)
	assert.False(t, st.IsDifficult)
	assert.True(t, st.HistoryWrong, "явный сброс не должен трогать history_wrong")
}

func TestClearProgress_Idempotent(t *testing.T) {
	// Arrange
	st := &UserQuestionStatus{UserID: 1, QuestionID: 42, WrongCount: 1, IsDifficult: true, HistoryWrong: true}

	// Act: двойной сброс
	st.ClearProgress()
	st.ClearProgress()

	// Assert
	assert.Equal(t, 0, st.WrongCount)
	assert.False(t, st.IsDifficult)
	assert.True(t, st.HistoryWrong)
}

// Полный сценарий из жизни: две ошибки → верный ответ → явный сброс.
func TestStatusLifecycle_WrongWrongCorrectClear(t *testing.T) {
	// Две ошибки подряд
	st := NewStatusForAnswer(7, 100, false)
	st.ApplyAnswer(false)
	require.Equal(t, 2, st.WrongCount)
	require.True(t, st.IsDifficult)

	// Верный ответ: серия обнулена, пометка сложного осталась
	st.ApplyAnswer(true)
	assert.Equal(t, 0, st.WrongCount)
	assert.True(t, st.IsDifficult)

	// Явный сброс: пометка снята, защелка истории — нет
	st.ClearProgress()
	assert.False(t, st.IsDifficult)
	assert.True(t, st.HistoryWrong, "history_wrong должен пережить всю последовательность")
}

// history_wrong монотонен: никакая последовательность ответов и сбросов его не снимает.
func TestHistoryWrong_Monotonic(t *testing.T) {
	st := NewStatusForAnswer(1, 1, false)
	require.True(t, st.HistoryWrong)

	ops := []func(){
		func() { st.ApplyAnswer(true) },
		func() { st.ApplyAnswer(false) },
		func() { st.ApplyAnswer(true) },
		func() { st.ClearProgress() },
		func() { st.ApplyAnswer(true) },
		func() { st.ClearProgress() },
	}
	for i, op := range ops {
		op()
		assert.True(t, st.HistoryWrong, "history_wrong снят после операции #%d", i)
	}
}

func TestUserQuestionStatus_TableName(t *testing.T) {
	assert.Equal(t, "user_question_status", UserQuestionStatus{}.TableName())
}
