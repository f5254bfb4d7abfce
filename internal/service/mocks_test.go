package service

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/study-api/internal/domain/entity"
	"github.com/yourusername/study-api/internal/domain/repository"
)

// ============================================================================
// Общие моки репозиториев для тестов сервисов
// ============================================================================

// helper для создания pointer
func uintPtr(v uint) *uint { return &v }

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) CreateBatch(questions []entity.Question) error {
	args := m.Called(questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetAccessible(id, userID uint) (*entity.Question, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetEffective(id, userID uint) (*entity.EffectiveQuestionView, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.EffectiveQuestionView), args.Error(1)
}

func (m *MockQuestionRepository) ListIDs(filter repository.StudyFilter) ([]uint, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockQuestionRepository) ListByPaper(paperID uint) ([]entity.Question, error) {
	args := m.Called(paperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) Delete(id, userID uint) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

func (m *MockQuestionRepository) CountAccessible(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestionRepository) AddImage(image *entity.QuestionImage) error {
	args := m.Called(image)
	return args.Error(0)
}

func (m *MockQuestionRepository) ListImages(questionID uint) ([]entity.QuestionImage, error) {
	args := m.Called(questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuestionImage), args.Error(1)
}

// MockStatusRepository реализует repository.StatusRepository
type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) Get(userID, questionID uint) (*entity.UserQuestionStatus, error) {
	args := m.Called(userID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserQuestionStatus), args.Error(1)
}

func (m *MockStatusRepository) ClearProgress(userID, questionID uint) error {
	args := m.Called(userID, questionID)
	return args.Error(0)
}

func (m *MockStatusRepository) ResetForOwnedQuestions(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockStudyRecordRepository реализует repository.StudyRecordRepository
type MockStudyRecordRepository struct {
	mock.Mock
}

func (m *MockStudyRecordRepository) Create(record *entity.StudyRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockStudyRecordRepository) DeleteByUser(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStudyRecordRepository) CountSince(userID uint, since time.Time) (int64, error) {
	args := m.Called(userID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudyRecordRepository) Totals(userID uint) (int64, int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

// MockSubjectRepository реализует repository.SubjectRepository
type MockSubjectRepository struct {
	mock.Mock
}

func (m *MockSubjectRepository) Create(subject *entity.Subject) error {
	args := m.Called(subject)
	return args.Error(0)
}

func (m *MockSubjectRepository) GetByID(id uint) (*entity.Subject, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subject), args.Error(1)
}

func (m *MockSubjectRepository) GetOwned(id, userID uint) (*entity.Subject, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subject), args.Error(1)
}

func (m *MockSubjectRepository) GetByNameAndOwner(name string, userID uint) (*entity.Subject, error) {
	args := m.Called(name, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subject), args.Error(1)
}

func (m *MockSubjectRepository) ListSummaries(userID uint) ([]repository.SubjectSummary, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SubjectSummary), args.Error(1)
}

func (m *MockSubjectRepository) Delete(id, userID uint) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

// MockPaperRepository реализует repository.PaperRepository
type MockPaperRepository struct {
	mock.Mock
}

func (m *MockPaperRepository) Create(paper *entity.Paper) error {
	args := m.Called(paper)
	return args.Error(0)
}

func (m *MockPaperRepository) GetByID(id uint) (*entity.Paper, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Paper), args.Error(1)
}

func (m *MockPaperRepository) GetAccessible(id, userID uint) (*entity.Paper, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Paper), args.Error(1)
}

func (m *MockPaperRepository) ListAccessible(userID uint) ([]repository.PaperListItem, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PaperListItem), args.Error(1)
}

func (m *MockPaperRepository) ListAssigned(userID uint) ([]repository.PaperListItem, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PaperListItem), args.Error(1)
}

func (m *MockPaperRepository) Delete(id, userID uint) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

// MockAssignmentRepository реализует repository.AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Create(assignment *entity.PaperAssignment) error {
	args := m.Called(assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Exists(paperID, userID uint) (bool, error) {
	args := m.Called(paperID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) DeleteByPaperAndGrantor(paperID, grantedBy uint) error {
	args := m.Called(paperID, grantedBy)
	return args.Error(0)
}

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) List() ([]entity.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}
