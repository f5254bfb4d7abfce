package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/study-api/internal/domain/entity"
	"github.com/yourusername/study-api/internal/domain/repository"
	"github.com/yourusername/study-api/internal/handler/dto"
	"github.com/yourusername/study-api/internal/service"
)

// Максимальный размер импортируемого xlsx-файла
const maxImportSize = 10 << 20 // 10 MB

// PaperHandler обрабатывает запросы по билетам
type PaperHandler struct {
	catalogService *service.CatalogService
	studyService   *service.StudyService
}

// NewPaperHandler создает новый обработчик билетов
func NewPaperHandler(catalogService *service.CatalogService, studyService *service.StudyService) *PaperHandler {
	return &PaperHandler{
		catalogService: catalogService,
		studyService:   studyService,
	}
}

// List возвращает собственные и розданные пользователю билеты.
// При assigned=true — только полученные по раздаче (для дашборда).
// GET /api/papers?assigned=
func (h *PaperHandler) List(c *gin.Context) {
	userID := currentUserID(c)

	var items []repository.PaperListItem
	var err error
	if c.Query("assigned") == "true" {
		items, err = h.catalogService.ListAssignedPapers(userID)
	} else {
		items, err = h.catalogService.ListPapers(userID)
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create создает билет
// POST /api/papers
func (h *PaperHandler) Create(c *gin.Context) {
	var req dto.CreatePaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paper, err := h.catalogService.CreatePaper(currentUserID(c), req.SubjectID, req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, paper)
}

// Get возвращает билет с вопросами в стабильном порядке (нумерация
// вопросов не меняется между просмотрами) и наложенным статусом.
// GET /api/papers/:id
func (h *PaperHandler) Get(c *gin.Context) {
	userID := currentUserID(c)
	paperID := c.MustGet("paper_id").(uint)

	paper, err := h.catalogService.GetPaper(paperID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	views, err := h.paperQuestions(paperID, userID, repository.OrderStable)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"paper":     paper,
		"questions": views,
		"is_owner":  paper.IsOwnedBy(userID),
	})
}

// Test запускает прорешивание билета: те же вопросы в случайном порядке
// GET /api/papers/:id/test
func (h *PaperHandler) Test(c *gin.Context) {
	userID := currentUserID(c)
	paperID := c.MustGet("paper_id").(uint)

	if _, err := h.catalogService.GetPaper(paperID, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	views, err := h.paperQuestions(paperID, userID, repository.OrderRandom)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": views})
}

func (h *PaperHandler) paperQuestions(paperID, userID uint, order repository.Order) ([]entity.EffectiveQuestionView, error) {
	ids, err := h.studyService.QueryIDs(repository.StudyFilter{
		UserID:  userID,
		PaperID: paperID,
		Context: repository.ContextPaper,
		Order:   order,
	}, "")
	if err != nil {
		return nil, err
	}
	return h.studyService.ResolveMany(userID, ids)
}

// Delete удаляет билет; разрешено только владельцу
// DELETE /api/papers/:id
func (h *PaperHandler) Delete(c *gin.Context) {
	paperID := c.MustGet("paper_id").(uint)
	if err := h.catalogService.DeletePaper(paperID, currentUserID(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Paper deleted"})
}

// Export выгружает вопросы билета в xlsx, по строке на вопрос.
// Используем StreamWriter для эффективной записи.
// GET /api/papers/:id/export
func (h *PaperHandler) Export(c *gin.Context) {
	userID := currentUserID(c)
	paperID := c.MustGet("paper_id").(uint)

	questions, err := h.catalogService.PaperQuestions(paperID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"paper_%d.xlsx\"", paperID))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Вопросы"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[PaperHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"№", "Вопрос", "Тип", "Вариант A", "Вариант B", "Вариант C", "Вариант D", "Ответ", "Источник"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[PaperHandler] Ошибка записи заголовков: %v", err)
	}

	for i, q := range questions {
		rowNum := i + 2
		cell := fmt.Sprintf("A%d", rowNum)
		row := []interface{}{
			i + 1,
			sanitizeForExcel(q.Text),
			q.Type,
			sanitizeForExcel(q.OptionA),
			sanitizeForExcel(q.OptionB),
			sanitizeForExcel(q.OptionC),
			sanitizeForExcel(q.OptionD),
			sanitizeForExcel(q.CorrectAnswer),
			sanitizeForExcel(q.Source),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[PaperHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[PaperHandler] Ошибка при Flush: %v", err)
	}
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[PaperHandler] Ошибка записи Excel в response: %v", err)
	}
}

// Import создает билет из xlsx-файла того же формата, что и экспорт
// POST /api/papers/import (multipart: subject_id, name, file)
func (h *PaperHandler) Import(c *gin.Context) {
	userID := currentUserID(c)

	subjectID, err := strconv.ParseUint(c.PostForm("subject_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject_id"})
		return
	}
	paperName := c.PostForm("name")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open file"})
		return
	}
	defer file.Close()

	xl, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid xlsx file"})
		return
	}
	defer xl.Close()

	rows, err := xl.GetRows(xl.GetSheetName(0))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read sheet"})
		return
	}

	questions := parseImportRows(rows)

	paper, count, err := h.catalogService.ImportPaper(userID, uint(subjectID), paperName, questions)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"paper":    paper,
		"imported": count,
	})
}

// parseImportRows разбирает строки листа в вопросы, пропуская заголовок
// и пустые строки. Формат столбцов совпадает с экспортом.
func parseImportRows(rows [][]string) []entity.Question {
	questions := make([]entity.Question, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // заголовок
		}
		col := func(n int) string {
			if n < len(row) {
				return row[n]
			}
			return ""
		}
		text := col(1)
		if text == "" {
			continue
		}
		questions = append(questions, entity.Question{
			Text:          text,
			Type:          col(2),
			OptionA:       col(3),
			OptionB:       col(4),
			OptionC:       col(5),
			OptionD:       col(6),
			CorrectAnswer: col(7),
			Source:        col(8),
		})
	}
	return questions
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
