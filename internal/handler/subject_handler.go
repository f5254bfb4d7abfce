package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/study-api/internal/domain/repository"
	"github.com/yourusername/study-api/internal/handler/dto"
	"github.com/yourusername/study-api/internal/service"
)

// SubjectHandler обрабатывает запросы по предметам
type SubjectHandler struct {
	catalogService *service.CatalogService
	studyService   *service.StudyService
}

// NewSubjectHandler создает новый обработчик предметов
func NewSubjectHandler(catalogService *service.CatalogService, studyService *service.StudyService) *SubjectHandler {
	return &SubjectHandler{
		catalogService: catalogService,
		studyService:   studyService,
	}
}

// List возвращает предметы пользователя со счетчиками
// GET /api/subjects
func (h *SubjectHandler) List(c *gin.Context) {
	summaries, err := h.catalogService.ListSubjects(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// Create создает предмет
// POST /api/subjects
func (h *SubjectHandler) Create(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject, err := h.catalogService.CreateSubject(currentUserID(c), req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subject)
}

// Delete удаляет предмет вместе с содержимым
// DELETE /api/subjects/:id
func (h *SubjectHandler) Delete(c *gin.Context) {
	subjectID := c.MustGet("subject_id").(uint)
	if err := h.catalogService.DeleteSubject(subjectID, currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subject deleted"})
}

// Questions возвращает вопросы предмета в контексте "список предмета":
// собственные вопросы банка плюс вопросы с ошибками, сложные и когда-либо
// решенные неверно. Свежие первыми.
// GET /api/subjects/:id/questions
func (h *SubjectHandler) Questions(c *gin.Context) {
	userID := currentUserID(c)
	subjectID := c.MustGet("subject_id").(uint)

	if _, err := h.catalogService.GetOwnedSubject(subjectID, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	ids, err := h.studyService.QueryIDs(repository.StudyFilter{
		UserID:    userID,
		SubjectID: subjectID,
		Context:   repository.ContextSubjectList,
		Order:     repository.OrderNewest,
	}, c.Query("qtype"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	views, err := h.studyService.ResolveMany(userID, ids)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	wrongOrHistory := 0
	difficult := 0
	for _, v := range views {
		if v.WrongCount > 0 || v.HistoryWrong {
			wrongOrHistory++
		}
		if v.IsDifficult {
			difficult++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"questions": views,
		"stats": gin.H{
			"total":            len(views),
			"wrong_or_history": wrongOrHistory,
			"difficult":        difficult,
		},
	})
}

// Study запускает учебную сессию по предмету: вопросы выбранного контекста
// в случайном порядке.
// GET /api/subjects/:id/study?mode=&qtype=
func (h *SubjectHandler) Study(c *gin.Context) {
	userID := currentUserID(c)
	subjectID := c.MustGet("subject_id").(uint)

	mode := repository.StudyContext(c.DefaultQuery("mode", string(repository.ContextBank)))

	ids, err := h.studyService.QueryIDs(repository.StudyFilter{
		UserID:    userID,
		SubjectID: subjectID,
		Context:   mode,
		Order:     repository.OrderRandom,
	}, c.Query("qtype"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	views, err := h.studyService.ResolveMany(userID, ids)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": views})
}
