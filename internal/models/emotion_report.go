package models

import "time"

const NoRecordsMessage = "No emotion records found for the specified period"

type ReportPeriod struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type ReportSummary struct {
	TotalRecords        int                `json:"total_records"`
	AverageSentiment    float64            `json:"average_sentiment"`
	MostCommonEmotion   string             `json:"most_common_emotion"`
	EmotionDistribution map[string]float64 `json:"emotion_distribution"`
}

type DailyStat struct {
	Date            string   `json:"date"`
	SentimentMean   float64  `json:"sentiment_mean"`
	SentimentStd    *float64 `json:"sentiment_std"`
	DominantEmotion string   `json:"dominant_emotion"`
}

type ReportTrends struct {
	DailyStats     []DailyStat `json:"daily_stats"`
	SentimentTrend []*float64  `json:"sentiment_trend"`
}

type Insight struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// EmotionReport is either a populated report or the no-data shape, which
// carries only Error.
type EmotionReport struct {
	Error    string         `json:"error,omitempty"`
	Period   *ReportPeriod  `json:"period,omitempty"`
	Summary  *ReportSummary `json:"summary,omitempty"`
	Trends   *ReportTrends  `json:"trends,omitempty"`
	Insights []Insight      `json:"insights,omitempty"`
}

func NoRecordsReport() *EmotionReport {
	return &EmotionReport{Error: NoRecordsMessage}
}

func (r *EmotionReport) HasData() bool {
	return r != nil && r.Summary != nil
}

type CorrelationResult struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}
