package service

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/study-api/internal/domain/entity"
	"github.com/yourusername/study-api/internal/domain/repository"
	apperrors "github.com/yourusername/study-api/internal/pkg/errors"
)

// CatalogService управляет каталогом: предметами, билетами, вопросами,
// изображениями и раздачами билетов.
type CatalogService struct {
	subjectRepo    repository.SubjectRepository
	paperRepo      repository.PaperRepository
	questionRepo   repository.QuestionRepository
	assignmentRepo repository.AssignmentRepository
	userRepo       repository.UserRepository

	// uploadDir — каталог файлов изображений (отдается как /uploads)
	uploadDir string
}

// NewCatalogService создает новый сервис каталога
func NewCatalogService(
	subjectRepo repository.SubjectRepository,
	paperRepo repository.PaperRepository,
	questionRepo repository.QuestionRepository,
	assignmentRepo repository.AssignmentRepository,
	userRepo repository.UserRepository,
	uploadDir string,
) *CatalogService {
	return &CatalogService{
		subjectRepo:    subjectRepo,
		paperRepo:      paperRepo,
		questionRepo:   questionRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		uploadDir:      uploadDir,
	}
}

// --- Предметы ---

// CreateSubject создает предмет. Имя уникально в пределах владельца.
func (s *CatalogService) CreateSubject(userID uint, name string) (*entity.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: subject name is required", apperrors.ErrValidation)
	}

	subject := &entity.Subject{Name: name, UserID: userID}
	if err := s.subjectRepo.Create(subject); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: subject %q already exists", apperrors.ErrConflict, name)
		}
		return nil, err
	}
	return subject, nil
}

// ListSubjects возвращает предметы пользователя со счетчиками
func (s *CatalogService) ListSubjects(userID uint) ([]repository.SubjectSummary, error) {
	return s.subjectRepo.ListSummaries(userID)
}

// GetOwnedSubject возвращает предмет пользователя или ErrNotFound
func (s *CatalogService) GetOwnedSubject(id, userID uint) (*entity.Subject, error) {
	return s.subjectRepo.GetOwned(id, userID)
}

// DeleteSubject удаляет предмет пользователя вместе с билетами и вопросами
func (s *CatalogService) DeleteSubject(id, userID uint) error {
	return s.subjectRepo.Delete(id, userID)
}

// --- Билеты ---

// CreatePaper создает билет внутри предмета, принадлежащего пользователю
func (s *CatalogService) CreatePaper(userID, subjectID uint, name string) (*entity.Paper, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: paper name is required", apperrors.ErrValidation)
	}
	if _, err := s.subjectRepo.GetOwned(subjectID, userID); err != nil {
		return nil, err
	}

	paper := &entity.Paper{Name: name, SubjectID: subjectID, UserID: userID}
	if err := s.paperRepo.Create(paper); err != nil {
		return nil, err
	}
	return paper, nil
}

// ListPapers возвращает собственные и розданные пользователю билеты
func (s *CatalogService) ListPapers(userID uint) ([]repository.PaperListItem, error) {
	return s.paperRepo.ListAccessible(userID)
}

// ListAssignedPapers возвращает билеты, полученные пользователем по раздаче
func (s *CatalogService) ListAssignedPapers(userID uint) ([]repository.PaperListItem, error) {
	return s.paperRepo.ListAssigned(userID)
}

// GetPaper возвращает билет, если он доступен пользователю
func (s *CatalogService) GetPaper(id, userID uint) (*entity.Paper, error) {
	return s.paperRepo.GetAccessible(id, userID)
}

// DeletePaper удаляет билет; разрешено только владельцу
func (s *CatalogService) DeletePaper(id, userID uint) error {
	return s.paperRepo.Delete(id, userID)
}

// PaperQuestions возвращает вопросы доступного билета по возрастанию id,
// без персонального статуса (для выгрузки)
func (s *CatalogService) PaperQuestions(paperID, userID uint) ([]entity.Question, error) {
	if _, err := s.paperRepo.GetAccessible(paperID, userID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListByPaper(paperID)
}

// --- Вопросы ---

// CreateQuestion создает вопрос в банке (paperID == nil) или внутри билета.
// Предмет и билет должны принадлежать пользователю, билет — предмету.
func (s *CatalogService) CreateQuestion(question *entity.Question) (*entity.Question, error) {
	if strings.TrimSpace(question.Text) == "" {
		return nil, fmt.Errorf("%w: question text is required", apperrors.ErrValidation)
	}
	if !entity.IsValidQuestionType(question.Type) {
		return nil, fmt.Errorf("%w: unknown question type %q", apperrors.ErrValidation, question.Type)
	}
	if _, err := s.subjectRepo.GetOwned(question.SubjectID, question.UserID); err != nil {
		return nil, err
	}
	if question.PaperID != nil {
		paper, err := s.paperRepo.GetByID(*question.PaperID)
		if err != nil {
			return nil, err
		}
		if !paper.IsOwnedBy(question.UserID) {
			return nil, apperrors.ErrNotFound
		}
		if paper.SubjectID != question.SubjectID {
			return nil, fmt.Errorf("%w: paper does not belong to subject", apperrors.ErrValidation)
		}
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

// ListManagedQuestions возвращает собственные вопросы банка пользователя,
// свежие первыми, с необязательным фильтром по предмету.
func (s *CatalogService) ListManagedQuestions(userID, subjectID uint) ([]uint, error) {
	filter := repository.StudyFilter{
		UserID:    userID,
		SubjectID: subjectID,
		Context:   repository.ContextBank,
		Order:     repository.OrderNewest,
	}
	return s.questionRepo.ListIDs(filter)
}

// DeleteQuestion удаляет вопрос; разрешено только владельцу.
// Файлы изображений удаляются с диска до удаления строк.
func (s *CatalogService) DeleteQuestion(id, userID uint) error {
	images, err := s.questionRepo.ListImages(id)
	if err != nil {
		return err
	}
	if err := s.questionRepo.Delete(id, userID); err != nil {
		return err
	}
	for _, img := range images {
		if err := os.Remove(filepath.Join(s.uploadDir, img.Path)); err != nil && !os.IsNotExist(err) {
			log.Printf("[CatalogService] failed to remove image file %s: %v", img.Path, err)
		}
	}
	return nil
}

// CloneToBank копирует доступный вопрос в собственный банк пользователя.
// Предмет подбирается по имени предмета источника (создается при отсутствии),
// source заполняется именем билета источника, изображения копируются
// под новыми uuid-именами.
func (s *CatalogService) CloneToBank(questionID, userID uint) (*entity.Question, error) {
	source, err := s.questionRepo.GetAccessible(questionID, userID)
	if err != nil {
		return nil, err
	}

	sourceSubject, err := s.subjectRepo.GetByID(source.SubjectID)
	if err != nil {
		return nil, err
	}

	subject, err := s.subjectRepo.GetByNameAndOwner(sourceSubject.Name, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		subject = &entity.Subject{Name: sourceSubject.Name, UserID: userID}
		if err := s.subjectRepo.Create(subject); err != nil {
			if !errors.Is(err, apperrors.ErrConflict) {
				return nil, err
			}
			// Предмет создан параллельным запросом — перечитываем
			subject, err = s.subjectRepo.GetByNameAndOwner(sourceSubject.Name, userID)
			if err != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, err
	}

	sourceLabel := source.Source
	if source.PaperID != nil {
		if paper, err := s.paperRepo.GetByID(*source.PaperID); err == nil {
			sourceLabel = paper.Name
		}
	}

	clone := &entity.Question{
		SubjectID:     subject.ID,
		PaperID:       nil,
		UserID:        userID,
		Text:          source.Text,
		Type:          source.Type,
		OptionA:       source.OptionA,
		OptionB:       source.OptionB,
		OptionC:       source.OptionC,
		OptionD:       source.OptionD,
		CorrectAnswer: source.CorrectAnswer,
		Source:        sourceLabel,
	}
	if err := s.questionRepo.Create(clone); err != nil {
		return nil, err
	}

	if err := s.cloneImages(source.ID, clone.ID); err != nil {
		log.Printf("[CatalogService] failed to clone images for question %d: %v", source.ID, err)
	}
	return clone, nil
}

// cloneImages копирует файлы изображений вопроса под новыми uuid-именами
func (s *CatalogService) cloneImages(sourceID, cloneID uint) error {
	images, err := s.questionRepo.ListImages(sourceID)
	if err != nil {
		return err
	}
	for _, img := range images {
		newName := uuid.New().String() + filepath.Ext(img.Path)
		if err := copyFile(
			filepath.Join(s.uploadDir, img.Path),
			filepath.Join(s.uploadDir, newName),
		); err != nil {
			return err
		}
		if err := s.questionRepo.AddImage(&entity.QuestionImage{
			QuestionID: cloneID,
			Path:       newName,
			ImageType:  img.ImageType,
		}); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// ImportPaper создает билет и наполняет его разобранными из файла вопросами
// одним пакетом. Предмет должен принадлежать пользователю.
func (s *CatalogService) ImportPaper(userID, subjectID uint, paperName string, questions []entity.Question) (*entity.Paper, int, error) {
	if len(questions) == 0 {
		return nil, 0, fmt.Errorf("%w: no questions to import", apperrors.ErrValidation)
	}

	paper, err := s.CreatePaper(userID, subjectID, paperName)
	if err != nil {
		return nil, 0, err
	}

	for i := range questions {
		if !entity.IsValidQuestionType(questions[i].Type) {
			questions[i].Type = entity.QuestionTypeObjective
		}
		questions[i].SubjectID = subjectID
		questions[i].PaperID = &paper.ID
		questions[i].UserID = userID
	}
	if err := s.questionRepo.CreateBatch(questions); err != nil {
		return nil, 0, err
	}

	log.Printf("[CatalogService] paper %d imported with %d questions by user %d", paper.ID, len(questions), userID)
	return paper, len(questions), nil
}

// --- Изображения ---

// AttachImage сохраняет файл изображения под uuid-именем и привязывает его
// к вопросу. Разрешено только владельцу вопроса.
func (s *CatalogService) AttachImage(questionID, userID uint, imageType, originalName string, data io.Reader) (*entity.QuestionImage, error) {
	if imageType != entity.ImageTypeQuestion && imageType != entity.ImageTypeAnswer {
		return nil, fmt.Errorf("%w: unknown image type %q", apperrors.ErrValidation, imageType)
	}

	question, err := s.questionRepo.GetAccessible(questionID, userID)
	if err != nil {
		return nil, err
	}
	if !question.IsOwnedBy(userID) {
		return nil, apperrors.ErrForbidden
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		return nil, fmt.Errorf("%w: unsupported image extension %q", apperrors.ErrValidation, ext)
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, err
	}

	name := uuid.New().String() + ext
	out, err := os.Create(filepath.Join(s.uploadDir, name))
	if err != nil {
		return nil, err
	}
	defer out.Close()
	if _, err := io.Copy(out, data); err != nil {
		return nil, err
	}

	image := &entity.QuestionImage{
		QuestionID: questionID,
		Path:       name,
		ImageType:  imageType,
	}
	if err := s.questionRepo.AddImage(image); err != nil {
		return nil, err
	}
	return image, nil
}

// --- Раздачи ---

// DistributePaper раздает билет пользователям. Владение билетом не
// требуется: раздающий администратор и автор содержимого — разные роли,
// владельцем остается автор. Повторные раздачи той же пары игнорируются,
// сам раздающий пропускается. Возвращает число созданных раздач.
func (s *CatalogService) DistributePaper(paperID, grantorID uint, userIDs []uint) (int, error) {
	if _, err := s.paperRepo.GetByID(paperID); err != nil {
		return 0, err
	}

	created := 0
	for _, userID := range userIDs {
		if userID == grantorID {
			continue
		}
		if _, err := s.userRepo.GetByID(userID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return created, err
		}
		exists, err := s.assignmentRepo.Exists(paperID, userID)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}
		err = s.assignmentRepo.Create(&entity.PaperAssignment{
			PaperID:    paperID,
			UserID:     userID,
			AssignedBy: grantorID,
		})
		if err != nil {
			return created, err
		}
		created++
	}

	log.Printf("[CatalogService] paper %d distributed by user %d: %d new assignments", paperID, grantorID, created)
	return created, nil
}

// RevokePaper отзывает раздачи билета, выданные вызывающим; чужие раздачи
// того же билета не трогает. Вопросы билета мгновенно исчезают у
// получателей; их статусы остаются и оживают при повторной раздаче.
func (s *CatalogService) RevokePaper(paperID, grantorID uint) error {
	if _, err := s.paperRepo.GetByID(paperID); err != nil {
		return err
	}
	return s.assignmentRepo.DeleteByPaperAndGrantor(paperID, grantorID)
}
