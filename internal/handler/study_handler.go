package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/study-api/internal/handler/dto"
	"github.com/yourusername/study-api/internal/service"
)

// StudyHandler обрабатывает учебный цикл: фиксацию ответов, сбросы
// прогресса и статистику.
type StudyHandler struct {
	studyService *service.StudyService
	statsService *service.StatsService
}

// NewStudyHandler создает новый обработчик учебного цикла
func NewStudyHandler(studyService *service.StudyService, statsService *service.StatsService) *StudyHandler {
	return &StudyHandler{
		studyService: studyService,
		statsService: statsService,
	}
}

// Record фиксирует ответ пользователя и возвращает статус после применения
// POST /api/study/record
func (h *StudyHandler) Record(c *gin.Context) {
	var req dto.RecordAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := h.studyService.RecordAnswer(currentUserID(c), req.QuestionID, *req.Correct)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// ClearStatus сбрасывает текущий прогресс по вопросу ("я это освоил")
// POST /api/questions/:id/clear-status
func (h *StudyHandler) ClearStatus(c *gin.Context) {
	questionID := c.MustGet("question_id").(uint)
	if err := h.studyService.ClearStatus(currentUserID(c), questionID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status cleared"})
}

// UnmarkDifficult снимает пометку сложного вопроса
// POST /api/questions/:id/unmark-difficult
func (h *StudyHandler) UnmarkDifficult(c *gin.Context) {
	questionID := c.MustGet("question_id").(uint)
	if err := h.studyService.UnmarkDifficult(currentUserID(c), questionID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Difficult mark removed"})
}

// ResetStats сбрасывает статистику пользователя
// POST /api/study/reset-stats
func (h *StudyHandler) ResetStats(c *gin.Context) {
	if err := h.studyService.ResetStats(currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stats reset"})
}

// Dashboard возвращает агрегаты для главной страницы
// GET /api/stats/dashboard
func (h *StudyHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsService.Dashboard(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
