package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/study-api/internal/domain/entity"
	"github.com/yourusername/study-api/internal/domain/repository"
	apperrors "github.com/yourusername/study-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// CreateBatch создает пакет вопросов
func (r *QuestionRepo) CreateBatch(questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(&questions).Error
}

// GetAccessible возвращает вопрос по ID с проверкой доступа.
// Вопрос виден пользователю, если тот владелец ИЛИ имеет раздачу билета,
// к которому вопрос привязан. Отсутствие и отсутствие доступа неразличимы.
func (r *QuestionRepo) GetAccessible(id, userID uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.
		Joins("LEFT JOIN paper_assignments pa ON questions.paper_id = pa.paper_id AND pa.user_id = ?", userID).
		Where("questions.id = ? AND (questions.user_id = ? OR pa.user_id = ?)", id, userID, userID).
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetEffective возвращает эффективное представление вопроса для пользователя:
// статические поля плюс COALESCE-наложение записи персонального статуса.
// has_record различает "никогда не решал" и "решал, сейчас без ошибок".
func (r *QuestionRepo) GetEffective(id, userID uint) (*entity.EffectiveQuestionView, error) {
	sql := `
		SELECT q.*,
		       COALESCE(uqs.wrong_count, 0)      AS wrong_count,
		       COALESCE(uqs.history_wrong, FALSE) AS history_wrong,
		       COALESCE(uqs.is_difficult, FALSE)  AS is_difficult,
		       (uqs.user_id IS NOT NULL)          AS has_record
		FROM questions q
		LEFT JOIN paper_assignments pa ON q.paper_id = pa.paper_id AND pa.user_id = ?
		LEFT JOIN user_question_status uqs ON q.id = uqs.question_id AND uqs.user_id = ?
		WHERE q.id = ? AND (q.user_id = ? OR pa.user_id = ?)
	`

	var view entity.EffectiveQuestionView
	err := r.db.Raw(sql, userID, userID, id, userID, userID).Scan(&view).Error
	if err != nil {
		return nil, err
	}
	// Raw().Scan() не возвращает gorm.ErrRecordNotFound — проверяем вручную
	if view.ID == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &view, nil
}

// ListIDs возвращает идентификаторы вопросов по контексту выборки.
// Все контексты работают поверх базового правила доступа
// (владелец ИЛИ получатель раздачи билета).
func (r *QuestionRepo) ListIDs(filter repository.StudyFilter) ([]uint, error) {
	if !filter.Valid() {
		return nil, fmt.Errorf("%w: invalid study filter context %q", apperrors.ErrValidation, filter.Context)
	}

	var ids []uint
	if err := r.listIDsQuery(filter).Pluck("q.id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// listIDsQuery собирает запрос выборки: базовое правило доступа, условие
// контекста, фильтр по типу и порядок
func (r *QuestionRepo) listIDsQuery(filter repository.StudyFilter) *gorm.DB {
	query := r.db.Table("questions q").
		Joins("LEFT JOIN user_question_status uqs ON q.id = uqs.question_id AND uqs.user_id = ?", filter.UserID).
		Joins("LEFT JOIN paper_assignments pa ON q.paper_id = pa.paper_id AND pa.user_id = ?", filter.UserID).
		Where("q.user_id = ? OR pa.user_id = ?", filter.UserID, filter.UserID)

	if filter.SubjectID != 0 {
		query = query.Where("q.subject_id = ?", filter.SubjectID)
	}

	switch filter.Context {
	case repository.ContextBank:
		query = query.Where("q.paper_id IS NULL AND q.user_id = ?", filter.UserID)
	case repository.ContextAllLoop:
		query = query.Where("q.paper_id IS NULL")
	case repository.ContextError:
		// Именно текущая серия ошибок, не history_wrong: решенный верно вопрос
		// выпадает из режима прорешивания ошибок.
		query = query.Where("uqs.wrong_count > 0")
	case repository.ContextDifficult:
		query = query.Where("uqs.is_difficult = TRUE")
	case repository.ContextPaper:
		query = query.Where("q.paper_id = ?", filter.PaperID)
	case repository.ContextSubjectList:
		query = query.Where(
			"(q.user_id = ? AND q.paper_id IS NULL) OR (uqs.wrong_count > 0 OR uqs.is_difficult = TRUE OR uqs.history_wrong = TRUE)",
			filter.UserID,
		)
	}

	if filter.Type != "" {
		query = query.Where("q.type = ?", filter.Type)
	}

	switch filter.Order {
	case repository.OrderNewest:
		query = query.Order("q.created_at DESC, q.id DESC")
	case repository.OrderStable:
		query = query.Order("q.id ASC")
	default:
		// Учебная сессия: порядок каждый раз новый
		query = query.Order("RANDOM()")
	}

	return query
}

// ListByPaper возвращает вопросы билета по возрастанию id
// (нумерация вопросов билета стабильна между просмотрами)
func (r *QuestionRepo) ListByPaper(paperID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Where("paper_id = ?", paperID).Order("id ASC").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Delete удаляет вопрос, только если он принадлежит userID.
// Зависимые изображения, статусы и записи журнала снимает каскад в БД.
func (r *QuestionRepo) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Question{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountAccessible возвращает число доступных пользователю вопросов
func (r *QuestionRepo) CountAccessible(userID uint) (int64, error) {
	var count int64
	err := r.db.Table("questions q").
		Joins("LEFT JOIN paper_assignments pa ON q.paper_id = pa.paper_id AND pa.user_id = ?", userID).
		Where("q.user_id = ? OR pa.user_id = ?", userID, userID).
		Count(&count).Error
	return count, err
}

// AddImage прикрепляет изображение к вопросу
func (r *QuestionRepo) AddImage(image *entity.QuestionImage) error {
	return r.db.Create(image).Error
}

// ListImages возвращает изображения вопроса
func (r *QuestionRepo) ListImages(questionID uint) ([]entity.QuestionImage, error) {
	var images []entity.QuestionImage
	err := r.db.Where("question_id = ?", questionID).Order("id ASC").Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}
