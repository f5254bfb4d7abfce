package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/study-api/internal/domain/entity"
	"github.com/yourusername/study-api/internal/handler/dto"
	"github.com/yourusername/study-api/internal/service"
)

// QuestionHandler обрабатывает запросы по вопросам
type QuestionHandler struct {
	catalogService *service.CatalogService
	studyService   *service.StudyService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(catalogService *service.CatalogService, studyService *service.StudyService) *QuestionHandler {
	return &QuestionHandler{
		catalogService: catalogService,
		studyService:   studyService,
	}
}

// Create создает вопрос в банке или внутри билета
// POST /api/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.catalogService.CreateQuestion(&entity.Question{
		SubjectID:     req.SubjectID,
		PaperID:       req.PaperID,
		UserID:        currentUserID(c),
		Text:          req.Text,
		Type:          req.Type,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: req.CorrectAnswer,
		Source:        req.Source,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// Get возвращает эффективное представление одного вопроса
// GET /api/questions/:id
func (h *QuestionHandler) Get(c *gin.Context) {
	questionID := c.MustGet("question_id").(uint)

	view, err := h.studyService.Resolve(currentUserID(c), questionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ManageList возвращает собственные вопросы банка, свежие первыми,
// с необязательным фильтром по предмету
// GET /api/questions?subject_id=
func (h *QuestionHandler) ManageList(c *gin.Context) {
	userID := currentUserID(c)

	var subjectID uint
	if raw := c.Query("subject_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject_id"})
			return
		}
		subjectID = uint(parsed)
	}

	ids, err := h.catalogService.ListManagedQuestions(userID, subjectID)
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

// Delete удаляет вопрос; разрешено только владельцу
// DELETE /api/questions/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	questionID := c.MustGet("question_id").(uint)
	if err := h.catalogService.DeleteQuestion(questionID, currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}

// Clone копирует доступный вопрос в собственный банк пользователя
// POST /api/questions/:id/clone
func (h *QuestionHandler) Clone(c *gin.Context) {
	questionID := c.MustGet("question_id").(uint)

	clone, err := h.catalogService.CloneToBank(questionID, currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, clone)
}

// UploadImage прикрепляет изображение к вопросу
// POST /api/questions/:id/images (multipart: file, image_type)
func (h *QuestionHandler) UploadImage(c *gin.Context) {
	questionID := c.MustGet("question_id").(uint)

	imageType := c.DefaultPostForm("image_type", entity.ImageTypeQuestion)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open file"})
		return
	}
	defer file.Close()

	image, err := h.catalogService.AttachImage(questionID, currentUserID(c), imageType, fileHeader.Filename, file)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}
