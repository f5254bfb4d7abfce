package service

import (
	"log"
	"math"
	"time"

	"github.com/yourusername/study-api/internal/domain/repository"
)

// dashboardCacheTTL — время жизни кеша статистики. Короткое: статистика
// и так инвалидируется при записи ответа, TTL страхует пропущенные сбросы.
const dashboardCacheTTL = 5 * time.Minute

// DashboardStats — агрегаты для главной страницы
type DashboardStats struct {
	TotalQuestions int64   `json:"total_questions"`
	TotalAnswers   int64   `json:"total_answers"`
	CorrectAnswers int64   `json:"correct_answers"`
	TodayAnswers   int64   `json:"today_answers"`
	Accuracy       float64 `json:"accuracy"`
}

// StatsService считает агрегаты по журналу ответов и каталогу
type StatsService struct {
	questionRepo repository.QuestionRepository
	recordRepo   repository.StudyRecordRepository
	cacheRepo    repository.CacheRepository

	// now выдает текущее локальное время; подменяется в тестах
	now func() time.Time
}

// NewStatsService создает новый сервис статистики.
// cacheRepo может быть nil — тогда агрегаты считаются на каждый запрос.
func NewStatsService(
	questionRepo repository.QuestionRepository,
	recordRepo repository.StudyRecordRepository,
	cacheRepo repository.CacheRepository,
) *StatsService {
	return &StatsService{
		questionRepo: questionRepo,
		recordRepo:   recordRepo,
		cacheRepo:    cacheRepo,
		now:          time.Now,
	}
}

// Dashboard возвращает агрегаты пользователя, при возможности — из кеша.
// "Сегодня" определяется по локальному календарному дню.
func (s *StatsService) Dashboard(userID uint) (*DashboardStats, error) {
	key := dashboardCacheKey(userID)
	if s.cacheRepo != nil {
		var cached DashboardStats
		if err := s.cacheRepo.GetJSON(key, &cached); err == nil {
			return &cached, nil
		}
	}

	totalQuestions, err := s.questionRepo.CountAccessible(userID)
	if err != nil {
		return nil, err
	}
	total, correct, err := s.recordRepo.Totals(userID)
	if err != nil {
		return nil, err
	}

	t := s.now()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	today, err := s.recordRepo.CountSince(userID, midnight)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalQuestions: totalQuestions,
		TotalAnswers:   total,
		CorrectAnswers: correct,
		TodayAnswers:   today,
	}
	if total > 0 {
		stats.Accuracy = math.Round(float64(correct)/float64(total)*1000) / 10
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(key, stats, dashboardCacheTTL); err != nil {
			log.Printf("[StatsService] failed to cache dashboard for user %d: %v", userID, err)
		}
	}
	return stats, nil
}
