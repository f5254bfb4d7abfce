package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/study-api/internal/domain/entity"
	"github.com/yourusername/study-api/internal/domain/repository"
	apperrors "github.com/yourusername/study-api/internal/pkg/errors"
)

// dashboardCacheKey формирует ключ кеша статистики пользователя
func dashboardCacheKey(userID uint) string {
	return fmt.Sprintf("stats:dashboard:%d", userID)
}

// StudyService реализует учебный цикл: выдачу эффективных представлений
// вопросов, протокол ответа и явные сбросы прогресса.
type StudyService struct {
	db           *gorm.DB
	questionRepo repository.QuestionRepository
	statusRepo   repository.StatusRepository
	recordRepo   repository.StudyRecordRepository
	cacheRepo    repository.CacheRepository

	// now выдает текущее локальное время; подменяется в тестах
	now func() time.Time
}

// NewStudyService создает новый сервис учебного цикла.
// cacheRepo может быть nil — тогда кеш статистики просто не инвалидируется.
func NewStudyService(
	db *gorm.DB,
	questionRepo repository.QuestionRepository,
	statusRepo repository.StatusRepository,
	recordRepo repository.StudyRecordRepository,
	cacheRepo repository.CacheRepository,
) *StudyService {
	return &StudyService{
		db:           db,
		questionRepo: questionRepo,
		statusRepo:   statusRepo,
		recordRepo:   recordRepo,
		cacheRepo:    cacheRepo,
		now:          time.Now,
	}
}

// Resolve возвращает эффективное представление вопроса для пользователя
// вместе с изображениями. Недоступный и несуществующий вопрос неразличимы:
// оба — ErrNotFound.
func (s *StudyService) Resolve(userID, questionID uint) (*entity.EffectiveQuestionView, error) {
	view, err := s.questionRepo.GetEffective(questionID, userID)
	if err != nil {
		return nil, err
	}

	images, err := s.questionRepo.ListImages(questionID)
	if err != nil {
		return nil, err
	}
	view.QuestionImages = make([]string, 0)
	view.AnswerImages = make([]string, 0)
	for _, img := range images {
		url := "/uploads/" + img.Path
		if img.ImageType == entity.ImageTypeAnswer {
			view.AnswerImages = append(view.AnswerImages, url)
		} else {
			view.QuestionImages = append(view.QuestionImages, url)
		}
	}
	return view, nil
}

// ResolveMany возвращает эффективные представления для набора идентификаторов,
// молча пропуская недоступные вопросы (доступ мог быть отозван между
// получением списка и запросом).
func (s *StudyService) ResolveMany(userID uint, questionIDs []uint) ([]entity.EffectiveQuestionView, error) {
	views := make([]entity.EffectiveQuestionView, 0, len(questionIDs))
	for _, id := range questionIDs {
		view, err := s.Resolve(userID, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// QueryIDs возвращает идентификаторы вопросов по контексту выборки.
// qtype принимает значения API (single, multi, fill, essay) и транслируется
// в хранимые типы; пустая строка — без фильтра.
func (s *StudyService) QueryIDs(filter repository.StudyFilter, qtype string) ([]uint, error) {
	storedType, err := mapQuestionType(qtype)
	if err != nil {
		return nil, err
	}
	filter.Type = storedType
	return s.questionRepo.ListIDs(filter)
}

// mapQuestionType транслирует тип вопроса из значений API в хранимые
func mapQuestionType(qtype string) (string, error) {
	switch qtype {
	case "":
		return "", nil
	case "single":
		return entity.QuestionTypeObjective, nil
	case "multi":
		return entity.QuestionTypeMulti, nil
	case "fill":
		return entity.QuestionTypeFill, nil
	case "essay":
		return entity.QuestionTypeSubjective, nil
	}
	return "", fmt.Errorf("%w: unknown question type %q", apperrors.ErrValidation, qtype)
}

// RecordAnswer применяет протокол ответа: проверка доступа, ленивое создание
// или обновление записи статуса и добавление строки журнала — статус и журнал
// меняются в одной транзакции. Возвращает статус после применения ответа.
func (s *StudyService) RecordAnswer(userID, questionID uint, correct bool) (*entity.UserQuestionStatus, error) {
	// Доступ проверяется до транзакции: ответ на невидимый вопрос не должен
	// оставлять следов ни в статусе, ни в журнале.
	if _, err := s.questionRepo.GetAccessible(questionID, userID); err != nil {
		return nil, err
	}

	var status entity.UserQuestionStatus
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND question_id = ?", userID, questionID).
			First(&status).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			status = *entity.NewStatusForAnswer(userID, questionID, correct)
			if err := tx.Create(&status).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			status.ApplyAnswer(correct)
			if err := tx.Save(&status).Error; err != nil {
				return err
			}
		}

		record := &entity.StudyRecord{
			UserID:     userID,
			QuestionID: questionID,
			IsCorrect:  correct,
			StudiedAt:  s.now(),
		}
		return tx.Create(record).Error
	})
	if err != nil {
		log.Printf("[StudyService] failed to record answer (user %d, question %d): %v", userID, questionID, err)
		return nil, err
	}

	s.invalidateDashboard(userID)
	return &status, nil
}

// ClearStatus обнуляет текущий прогресс по вопросу ("я это освоил").
// history_wrong не трогает. Идемпотентна, на недоступный вопрос — ErrNotFound.
func (s *StudyService) ClearStatus(userID, questionID uint) error {
	if _, err := s.questionRepo.GetAccessible(questionID, userID); err != nil {
		return err
	}
	if err := s.statusRepo.ClearProgress(userID, questionID); err != nil {
		return err
	}
	s.invalidateDashboard(userID)
	return nil
}

// UnmarkDifficult снимает пометку сложного вопроса. Эффект тот же, что у
// ClearStatus: обнуление wrong_count и is_difficult одной операцией —
// частичного снятия пометки не существует.
func (s *StudyService) UnmarkDifficult(userID, questionID uint) error {
	return s.ClearStatus(userID, questionID)
}

// ResetStats сбрасывает статистику пользователя: журнал ответов удаляется
// целиком, прогресс обнуляется по собственным вопросам. Защелки history_wrong
// и статусы по чужим розданным вопросам переживают сброс.
func (s *StudyService) ResetStats(userID uint) error {
	if err := s.recordRepo.DeleteByUser(userID); err != nil {
		log.Printf("[StudyService] failed to delete study records for user %d: %v", userID, err)
		return err
	}
	if err := s.statusRepo.ResetForOwnedQuestions(userID); err != nil {
		log.Printf("[StudyService] failed to reset statuses for user %d: %v", userID, err)
		return err
	}

	s.invalidateDashboard(userID)
	return nil
}

// invalidateDashboard сбрасывает кеш статистики пользователя
func (s *StudyService) invalidateDashboard(userID uint) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(dashboardCacheKey(userID)); err != nil {
		log.Printf("[StudyService] failed to invalidate dashboard cache for user %d: %v", userID, err)
	}
}
