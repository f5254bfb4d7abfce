package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/study-api/internal/domain/entity"
	apperrors "github.com/yourusername/study-api/internal/pkg/errors"
)

const testUploadDir = "testdata/uploads"

func newCatalogServiceForTest(
	subjectRepo *MockSubjectRepository,
	paperRepo *MockPaperRepository,
	questionRepo *MockQuestionRepository,
	assignmentRepo *MockAssignmentRepository,
	userRepo *MockUserRepository,
) *CatalogService {
	return NewCatalogService(subjectRepo, paperRepo, questionRepo, assignmentRepo, userRepo, testUploadDir)
}

func TestCatalogService_CreateSubject(t *testing.T) {
	t.Run("пустое имя — ошибка валидации", func(t *testing.T) {
		// Arrange
		subjectRepo := new(MockSubjectRepository)
		service := newCatalogServiceForTest(subjectRepo, new(MockPaperRepository), new(MockQuestionRepository), new(MockAssignmentRepository), new(MockUserRepository))

		// Act
		subject, err := service.CreateSubject(1, "   ")

		// Assert
		assert.Nil(t, subject)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		subjectRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("дубликат имени у того же владельца — ErrConflict", func(t *testing.T) {
		// Arrange
		subjectRepo := new(MockSubjectRepository)
		service := newCatalogServiceForTest(subjectRepo, new(MockPaperRepository), new(MockQuestionRepository), new(MockAssignmentRepository), new(MockUserRepository))

		subjectRepo.On("Create", mock.Anything).Return(apperrors.ErrConflict)

		// Act
		subject, err := service.CreateSubject(1, "математика")

		// Assert
		assert.Nil(t, subject)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("имя обрезается по краям", func(t *testing.T) {
		// Arrange
		subjectRepo := new(MockSubjectRepository)
		service := newCatalogServiceForTest(subjectRepo, new(MockPaperRepository), new(MockQuestionRepository), new(MockAssignmentRepository), new(MockUserRepository))

		subjectRepo.On("Create", mock.MatchedBy(func(s *entity.Subject) bool {
			return s.Name == "физика" && s.UserID == 1
		})).Return(nil)

		// Act
		_, err := service.CreateSubject(1, "  физика  ")

		// Assert
		require.NoError(t, err)
		subjectRepo.AssertExpectations(t)
	})
}

func TestCatalogService_CreateQuestion(t *testing.T) {
	t.Run("неизвестный тип — ошибка валидации", func(t *testing.T) {
		// Arrange
		service := newCatalogServiceForTest(new(MockSubjectRepository), new(MockPaperRepository), new(MockQuestionRepository), new(MockAssignmentRepository), new(MockUserRepository))

		// Act
		_, err := service.CreateQuestion(&entity.Question{
			SubjectID: 1, UserID: 1, Text: "вопрос", Type: "matching",
		})

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("билет должен принадлежать тому же предмету", func(t *testing.T) {
		// Arrange
		subjectRepo := new(MockSubjectRepository)
		paperRepo := new(MockPaperRepository)
		service := newCatalogServiceForTest(subjectRepo, paperRepo, new(MockQuestionRepository), new(MockAssignmentRepository), new(MockUserRepository))

		subjectRepo.On("GetOwned", uint(1), uint(1)).Return(&entity.Subject{ID: 1, UserID: 1}, nil)
		paperRepo.On("GetByID", uint(2)).Return(&entity.Paper{ID: 2, SubjectID: 9, UserID: 1}, nil)

		// Act
		_, err := service.CreateQuestion(&entity.Question{
			SubjectID: 1, PaperID: uintPtr(2), UserID: 1,
			Text: "вопрос", Type: entity.QuestionTypeObjective,
		})

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("чужой билет неотличим от несуществующего", func(t *testing.T) {
		// Arrange
		subjectRepo := new(MockSubjectRepository)
		paperRepo := new(MockPaperRepository)
		service := newCatalogServiceForTest(subjectRepo, paperRepo, new(MockQuestionRepository), new(MockAssignmentRepository), new(MockUserRepository))

		subjectRepo.On("GetOwned", uint(1), uint(1)).Return(&entity.Subject{ID: 1, UserID: 1}, nil)
		paperRepo.On("GetByID", uint(2)).Return(&entity.Paper{ID: 2, SubjectID: 1, UserID: 7}, nil)

		// Act
		_, err := service.CreateQuestion(&entity.Question{
			SubjectID: 1, PaperID: uintPtr(2), UserID: 1,
			Text: "вопрос", Type: entity.QuestionTypeObjective,
		})

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCatalogService_CloneToBank(t *testing.T) {
	t.Run("клонирование в собственный банк с подбором предмета по имени", func(t *testing.T) {
		// Arrange
		subjectRepo := new(MockSubjectRepository)
		paperRepo := new(MockPaperRepository)
		questionRepo := new(MockQuestionRepository)
		service := newCatalogServiceForTest(subjectRepo, paperRepo, questionRepo, new(MockAssignmentRepository), new(MockUserRepository))

		source := &entity.Question{
			ID: 5, SubjectID: 7, PaperID: uintPtr(3), UserID: 1,
			Text: "вопрос из билета", Type: entity.QuestionTypeObjective,
			OptionA: "а", OptionB: "б", CorrectAnswer: "A",
		}
		questionRepo.On("GetAccessible", uint(5), uint(2)).Return(source, nil)
		subjectRepo.On("GetByID", uint(7)).Return(&entity.Subject{ID: 7, Name: "математика", UserID: 1}, nil)
		// Собственного предмета с таким именем еще нет — будет создан
		subjectRepo.On("GetByNameAndOwner", "математика", uint(2)).Return(nil, apperrors.ErrNotFound)
		subjectRepo.On("Create", mock.Anything).Run(func(args mock.Arguments) {
			args.Get(0).(*entity.Subject).ID = 20
		}).Return(nil)
		paperRepo.On("GetByID", uint(3)).Return(&entity.Paper{ID: 3, Name: "билет 1", SubjectID: 7, UserID: 1}, nil)
		questionRepo.On("Create", mock.Anything).Run(func(args mock.Arguments) {
			args.Get(0).(*entity.Question).ID = 99
		}).Return(nil)
		questionRepo.On("ListImages", uint(5)).Return([]entity.QuestionImage{}, nil)

		// Act
		clone, err := service.CloneToBank(5, 2)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, clone.PaperID)
		assert.Equal(t, uint(2), clone.UserID)
		assert.Equal(t, uint(20), clone.SubjectID)
		assert.Equal(t, "билет 1", clone.Source)
		assert.Equal(t, source.Text, clone.Text)
	})

	t.Run("недоступный источник — ErrNotFound", func(t *testing.T) {
		// Arrange
		questionRepo := new(MockQuestionRepository)
		service := newCatalogServiceForTest(new(MockSubjectRepository), new(MockPaperRepository), questionRepo, new(MockAssignmentRepository), new(MockUserRepository))

		questionRepo.On("GetAccessible", uint(5), uint(2)).Return(nil, apperrors.ErrNotFound)

		// Act
		clone, err := service.CloneToBank(5, 2)

		// Assert
		assert.Nil(t, clone)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCatalogService_DistributePaper(t *testing.T) {
	t.Run("владелец и существующие раздачи пропускаются", func(t *testing.T) {
		// Arrange
		paperRepo := new(MockPaperRepository)
		assignmentRepo := new(MockAssignmentRepository)
		userRepo := new(MockUserRepository)
		service := newCatalogServiceForTest(new(MockSubjectRepository), paperRepo, new(MockQuestionRepository), assignmentRepo, userRepo)

		paperRepo.On("GetByID", uint(3)).Return(&entity.Paper{ID: 3, UserID: 1}, nil)
		userRepo.On("GetByID", uint(2)).Return(&entity.User{ID: 2}, nil)
		userRepo.On("GetByID", uint(4)).Return(&entity.User{ID: 4}, nil)
		assignmentRepo.On("Exists", uint(3), uint(2)).Return(true, nil)
		assignmentRepo.On("Exists", uint(3), uint(4)).Return(false, nil)
		assignmentRepo.On("Create", mock.MatchedBy(func(a *entity.PaperAssignment) bool {
			return a.PaperID == 3 && a.UserID == 4 && a.AssignedBy == 1
		})).Return(nil)

		// Act: владелец (1), уже имеющий раздачу (2), новый получатель (4)
		created, err := service.DistributePaper(3, 1, []uint{1, 2, 4})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, created)
		assignmentRepo.AssertExpectations(t)
	})

	t.Run("владение билетом не требуется: раздать можно чужой билет", func(t *testing.T) {
		// Arrange
		paperRepo := new(MockPaperRepository)
		assignmentRepo := new(MockAssignmentRepository)
		userRepo := new(MockUserRepository)
		service := newCatalogServiceForTest(new(MockSubjectRepository), paperRepo, new(MockQuestionRepository), assignmentRepo, userRepo)

		// Билет принадлежит пользователю 9, раздает администратор 1
		paperRepo.On("GetByID", uint(3)).Return(&entity.Paper{ID: 3, UserID: 9}, nil)
		userRepo.On("GetByID", uint(2)).Return(&entity.User{ID: 2}, nil)
		assignmentRepo.On("Exists", uint(3), uint(2)).Return(false, nil)
		assignmentRepo.On("Create", mock.MatchedBy(func(a *entity.PaperAssignment) bool {
			return a.PaperID == 3 && a.UserID == 2 && a.AssignedBy == 1
		})).Return(nil)

		// Act
		created, err := service.DistributePaper(3, 1, []uint{2})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, created)
		assignmentRepo.AssertExpectations(t)
	})

	t.Run("несуществующий билет — ErrNotFound", func(t *testing.T) {
		// Arrange
		paperRepo := new(MockPaperRepository)
		service := newCatalogServiceForTest(new(MockSubjectRepository), paperRepo, new(MockQuestionRepository), new(MockAssignmentRepository), new(MockUserRepository))

		paperRepo.On("GetByID", uint(3)).Return(nil, apperrors.ErrNotFound)

		// Act
		created, err := service.DistributePaper(3, 1, []uint{2})

		// Assert
		assert.Zero(t, created)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCatalogService_RevokePaper(t *testing.T) {
	t.Run("отзыв удаляет раздачи, выданные вызывающим", func(t *testing.T) {
		// Arrange
		paperRepo := new(MockPaperRepository)
		assignmentRepo := new(MockAssignmentRepository)
		service := newCatalogServiceForTest(new(MockSubjectRepository), paperRepo, new(MockQuestionRepository), assignmentRepo, new(MockUserRepository))

		paperRepo.On("GetByID", uint(3)).Return(&entity.Paper{ID: 3, UserID: 1}, nil)
		assignmentRepo.On("DeleteByPaperAndGrantor", uint(3), uint(1)).Return(nil)

		// Act
		err := service.RevokePaper(3, 1)

		// Assert
		require.NoError(t, err)
		assignmentRepo.AssertExpectations(t)
	})

	t.Run("отзыв чужого билета снимает только раздачи вызывающего", func(t *testing.T) {
		// Arrange
		paperRepo := new(MockPaperRepository)
		assignmentRepo := new(MockAssignmentRepository)
		service := newCatalogServiceForTest(new(MockSubjectRepository), paperRepo, new(MockQuestionRepository), assignmentRepo, new(MockUserRepository))

		// Билет принадлежит пользователю 9; раздачи выдавал администратор 1
		paperRepo.On("GetByID", uint(3)).Return(&entity.Paper{ID: 3, UserID: 9}, nil)
		assignmentRepo.On("DeleteByPaperAndGrantor", uint(3), uint(1)).Return(nil)

		// Act
		err := service.RevokePaper(3, 1)

		// Assert
		require.NoError(t, err)
		assignmentRepo.AssertExpectations(t)
	})
}

func TestCatalogService_ImportPaper(t *testing.T) {
	t.Run("вопросы привязываются к новому билету и владельцу", func(t *testing.T) {
		// Arrange
		subjectRepo := new(MockSubjectRepository)
		paperRepo := new(MockPaperRepository)
		questionRepo := new(MockQuestionRepository)
		service := newCatalogServiceForTest(subjectRepo, paperRepo, questionRepo, new(MockAssignmentRepository), new(MockUserRepository))

		subjectRepo.On("GetOwned", uint(5), uint(1)).Return(&entity.Subject{ID: 5, UserID: 1}, nil)
		paperRepo.On("Create", mock.Anything).Run(func(args mock.Arguments) {
			args.Get(0).(*entity.Paper).ID = 8
		}).Return(nil)
		questionRepo.On("CreateBatch", mock.MatchedBy(func(qs []entity.Question) bool {
			for _, q := range qs {
				if q.PaperID == nil || *q.PaperID != 8 || q.UserID != 1 || q.SubjectID != 5 {
					return false
				}
			}
			return len(qs) == 2
		})).Return(nil)

		// Act
		paper, count, err := service.ImportPaper(1, 5, "импорт 2026", []entity.Question{
			{Text: "первый", Type: entity.QuestionTypeObjective},
			{Text: "второй", Type: "bogus"}, // неизвестный тип падает в objective
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, uint(8), paper.ID)
		assert.Equal(t, 2, count)
		questionRepo.AssertExpectations(t)
	})

	t.Run("пустой импорт — ошибка валидации", func(t *testing.T) {
		// Arrange
		service := newCatalogServiceForTest(new(MockSubjectRepository), new(MockPaperRepository), new(MockQuestionRepository), new(MockAssignmentRepository), new(MockUserRepository))

		// Act
		_, _, err := service.ImportPaper(1, 5, "пустой", nil)

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
