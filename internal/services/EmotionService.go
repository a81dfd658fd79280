package services

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"nest/internal/emotion"
	"nest/internal/models"
	"nest/internal/providers"
	"nest/internal/repositories"
)

const DefaultReportDays = 30

type EmotionServiceInterface interface {
	Record(ctx context.Context, req *models.RecordEmotionRequest) (*models.EmotionRecord, error)
	ListByUser(ctx context.Context, userID int64, start, end *time.Time) ([]*models.EmotionRecord, error)
	BuildReport(ctx context.Context, userID int64, days int) (*models.EmotionReport, error)
	Correlations(ctx context.Context, userID int64, days int) (*models.CorrelationResult, error)
	Analyze(ctx context.Context, text string) (models.EmotionData, error)
}

type EmotionService struct {
	repo     repositories.EmotionRepositoryInterface
	analyzer emotion.Analyzer
	cache    providers.CacheProviderInterface
	logger   providers.Logger
	now      func() time.Time
}

func NewEmotionService(repo repositories.EmotionRepositoryInterface, analyzer emotion.Analyzer, cache providers.CacheProviderInterface, logger providers.Logger) *EmotionService {
	return &EmotionService{
		repo:     repo,
		analyzer: analyzer,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

// Record stores a new emotion record. When the payload is missing or empty
// and text is present, the payload comes from the analyzer.
func (s *EmotionService) Record(ctx context.Context, req *models.RecordEmotionRequest) (*models.EmotionRecord, error) {
	data := req.EmotionData
	if len(data) == 0 && req.TextContent != nil && *req.TextContent != "" {
		analyzed, err := s.analyzer.AnalyzeText(ctx, *req.TextContent)
		if err != nil {
			return nil, fmt.Errorf("analyze text: %w", err)
		}
		data = analyzed
	}

	record := &models.EmotionRecord{
		UserID:        req.UserID,
		Timestamp:     s.now().UTC(),
		EmotionData:   data,
		TextContent:   req.TextContent,
		VoiceFilePath: req.VoiceFilePath,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *EmotionService) ListByUser(ctx context.Context, userID int64, start, end *time.Time) ([]*models.EmotionRecord, error) {
	if start != nil && end != nil && end.Before(*start) {
		return nil, fmt.Errorf("%w: end before start", models.ErrValidation)
	}
	return s.repo.ListByUser(ctx, userID, start, end)
}

func reportCacheKey(userID int64, days int) string {
	return fmt.Sprintf("report:%d:%d", userID, days)
}

func (s *EmotionService) window(days int) (time.Time, time.Time, error) {
	if days <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: days must be positive", models.ErrValidation)
	}
	end := s.now().UTC()
	return end.AddDate(0, 0, -days), end, nil
}

// BuildReport summarises the last days of records. Reports are cached per
// user and window for the cache TTL.
func (s *EmotionService) BuildReport(ctx context.Context, userID int64, days int) (*models.EmotionReport, error) {
	if days == 0 {
		days = DefaultReportDays
	}
	start, end, err := s.window(days)
	if err != nil {
		return nil, err
	}

	key := reportCacheKey(userID, days)
	if raw, ok := s.cache.Get(key); ok {
		var cached models.EmotionReport
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warnf(providers.TypeApp, "Dropping undecodable cached report %s", key)
	}

	records, err := s.repo.ListByUser(ctx, userID, &start, &end)
	if err != nil {
		return nil, err
	}
	report, err := emotion.BuildReport(records, models.ReportPeriod{StartDate: start, EndDate: end})
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Report for user %d failed: %v", userID, err)
		return nil, err
	}

	if raw, err := json.Marshal(report); err == nil {
		s.cache.Set(key, raw)
	}
	return report, nil
}

func (s *EmotionService) Correlations(ctx context.Context, userID int64, days int) (*models.CorrelationResult, error) {
	if days == 0 {
		days = DefaultReportDays
	}
	start, end, err := s.window(days)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListByUser(ctx, userID, &start, &end)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &models.CorrelationResult{Error: models.NoRecordsMessage}, nil
	}
	return &models.CorrelationResult{Message: "Correlation analysis not yet implemented"}, nil
}

func (s *EmotionService) Analyze(ctx context.Context, text string) (models.EmotionData, error) {
	return s.analyzer.AnalyzeText(ctx, text)
}
