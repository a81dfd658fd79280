package emotion

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nest/internal/models"
)

var base = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func rec(id int64, ts time.Time, emo string, score float64) *models.EmotionRecord {
	return &models.EmotionRecord{
		ID:        id,
		UserID:    1,
		Timestamp: ts,
		EmotionData: models.EmotionData{
			models.KeyDominantEmotion: emo,
			models.KeySentimentScore:  score,
		},
	}
}

func period() models.ReportPeriod {
	return models.ReportPeriod{StartDate: base.AddDate(0, 0, -30), EndDate: base.AddDate(0, 0, 1)}
}

func TestBuildReport_EmptyWindow(t *testing.T) {
	report, err := BuildReport(nil, period())
	require.NoError(t, err)
	assert.False(t, report.HasData())
	assert.Equal(t, models.NoRecordsMessage, report.Error)
	assert.Nil(t, report.Summary)
}

func TestBuildReport_DistributionSumsToOne(t *testing.T) {
	emotions := []string{"joy", "sadness", "joy", "anger", "anxiety", "joy", "stress", "sadness", "fear", "joy", "neutral"}
	var records []*models.EmotionRecord
	for i, e := range emotions {
		records = append(records, rec(int64(i), base.Add(time.Duration(i)*time.Hour), e, float64(i%3)-1))
	}

	report, err := BuildReport(records, period())
	require.NoError(t, err)
	require.True(t, report.HasData())

	var sum float64
	for _, v := range report.Summary.EmotionDistribution {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Equal(t, len(emotions), report.Summary.TotalRecords)
	assert.Equal(t, "joy", report.Summary.MostCommonEmotion)
	assert.InDelta(t, 4.0/11.0, report.Summary.EmotionDistribution["joy"], 1e-9)
}

func TestBuildReport_ModeTieBreaksLexically(t *testing.T) {
	records := []*models.EmotionRecord{
		rec(1, base, "sadness", 0),
		rec(2, base.Add(time.Hour), "joy", 0),
	}
	report, err := BuildReport(records, period())
	require.NoError(t, err)
	assert.Equal(t, "joy", report.Summary.MostCommonEmotion)
}

func TestBuildReport_SentimentTrendPadding(t *testing.T) {
	var records []*models.EmotionRecord
	for i := 0; i < 9; i++ {
		records = append(records, rec(int64(i), base.Add(time.Duration(i)*time.Minute), "joy", float64(i)))
	}
	report, err := BuildReport(records, period())
	require.NoError(t, err)

	trend := report.Trends.SentimentTrend
	require.Len(t, trend, 9)
	for i := 0; i < 6; i++ {
		assert.Nil(t, trend[i], "index %d", i)
	}
	require.NotNil(t, trend[6])
	assert.InDelta(t, 3.0, *trend[6], 1e-9)
	assert.InDelta(t, 4.0, *trend[7], 1e-9)
	assert.InDelta(t, 5.0, *trend[8], 1e-9)
}

func TestBuildReport_DailyStats(t *testing.T) {
	day2 := base.AddDate(0, 0, 1)
	records := []*models.EmotionRecord{
		rec(1, base, "joy", 1),
		rec(2, base.Add(time.Hour), "joy", 3),
		rec(3, base.Add(2*time.Hour), "sadness", 2),
		rec(4, day2, "anger", -1),
	}
	report, err := BuildReport(records, period())
	require.NoError(t, err)

	stats := report.Trends.DailyStats
	require.Len(t, stats, 2)
	assert.Equal(t, "2026-03-10", stats[0].Date)
	assert.InDelta(t, 2.0, stats[0].SentimentMean, 1e-9)
	require.NotNil(t, stats[0].SentimentStd)
	assert.InDelta(t, 1.0, *stats[0].SentimentStd, 1e-9)
	assert.Equal(t, "joy", stats[0].DominantEmotion)

	assert.Equal(t, "2026-03-11", stats[1].Date)
	assert.Nil(t, stats[1].SentimentStd)
	assert.Equal(t, "anger", stats[1].DominantEmotion)
}

func TestBuildReport_PositiveTrendInsight(t *testing.T) {
	var records []*models.EmotionRecord
	for i := 0; i < 10; i++ {
		score := -1.0
		if i >= 3 {
			score = 1.0
		}
		records = append(records, rec(int64(i), base.Add(time.Duration(i)*time.Minute), "joy", score))
	}
	report, err := BuildReport(records, period())
	require.NoError(t, err)
	assert.Equal(t, "positive_trend", report.Insights[0].Type)
}

func TestBuildReport_NegativeTrendInsight(t *testing.T) {
	var records []*models.EmotionRecord
	for i := 0; i < 10; i++ {
		score := 1.0
		if i >= 3 {
			score = -1.0
		}
		records = append(records, rec(int64(i), base.Add(time.Duration(i)*time.Minute), "sadness", score))
	}
	report, err := BuildReport(records, period())
	require.NoError(t, err)
	assert.Equal(t, "negative_trend", report.Insights[0].Type)
}

func TestBuildReport_NoTrendInsightWhenEqual(t *testing.T) {
	records := []*models.EmotionRecord{
		rec(1, base, "joy", 0.5),
		rec(2, base.Add(time.Hour), "sadness", 0.5),
	}
	report, err := BuildReport(records, period())
	require.NoError(t, err)

	for _, in := range report.Insights {
		assert.NotEqual(t, "positive_trend", in.Type)
		assert.NotEqual(t, "negative_trend", in.Type)
	}
	assert.Equal(t, "daily_pattern", report.Insights[len(report.Insights)-1].Type)
}

func TestBuildReport_ConsistencyInsight(t *testing.T) {
	var records []*models.EmotionRecord
	for i := 0; i < 10; i++ {
		records = append(records, rec(int64(i), base.Add(time.Duration(i)*time.Minute), "stress", 0))
	}
	report, err := BuildReport(records, period())
	require.NoError(t, err)

	var types []string
	for _, in := range report.Insights {
		types = append(types, in.Type)
	}
	assert.Equal(t, []string{"emotion_consistency", "daily_pattern"}, types)
}

func TestBuildReport_DailyPatternHours(t *testing.T) {
	records := []*models.EmotionRecord{
		rec(1, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), "joy", 0.9),
		rec(2, time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC), "sadness", -0.8),
		rec(3, time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC), "joy", 0.7),
		rec(4, time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC), "anxiety", 0.1),
	}
	report, err := BuildReport(records, period())
	require.NoError(t, err)

	last := report.Insights[len(report.Insights)-1]
	assert.Equal(t, "daily_pattern", last.Type)
	assert.Equal(t, "You tend to feel best around 9:00 and most challenged around 22:00", last.Message)
}

func TestBuildReport_MissingKeysFails(t *testing.T) {
	records := []*models.EmotionRecord{
		rec(1, base, "joy", 1),
		{ID: 2, Timestamp: base.Add(time.Hour), EmotionData: models.EmotionData{"sentiment_score": 0.1}},
	}
	_, err := BuildReport(records, period())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrMalformedRecord))
}

func TestBuildReport_StringScoreFails(t *testing.T) {
	records := []*models.EmotionRecord{
		{ID: 1, Timestamp: base, EmotionData: models.EmotionData{"dominant_emotion": "joy", "sentiment_score": "high"}},
	}
	_, err := BuildReport(records, period())
	assert.ErrorIs(t, err, models.ErrMalformedRecord)
}
