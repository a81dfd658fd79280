package emotion

import (
	"fmt"
	"math"
	"sort"
	"time"

	"nest/internal/models"
)

const (
	trendWindow        = 7
	recentWindow       = 7
	consistencyCeiling = 0.3
)

type sample struct {
	ts        time.Time
	emotion   string
	sentiment float64
}

// BuildReport aggregates records, ordered oldest first, into a report for
// period. An empty slice yields the no-data report; a record without the
// required payload keys fails the whole report.
func BuildReport(records []*models.EmotionRecord, period models.ReportPeriod) (*models.EmotionReport, error) {
	if len(records) == 0 {
		return models.NoRecordsReport(), nil
	}

	samples := make([]sample, 0, len(records))
	for _, r := range records {
		emo, err := r.DominantEmotion()
		if err != nil {
			return nil, err
		}
		score, err := r.SentimentScore()
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample{ts: r.Timestamp, emotion: emo, sentiment: score})
	}

	scores := make([]float64, len(samples))
	emotions := make([]string, len(samples))
	for i, s := range samples {
		scores[i] = s.sentiment
		emotions[i] = s.emotion
	}

	counts := countEmotions(emotions)
	distribution := make(map[string]float64, len(counts))
	for emo, n := range counts {
		distribution[emo] = float64(n) / float64(len(samples))
	}

	overall := mean(scores)
	return &models.EmotionReport{
		Period: &period,
		Summary: &models.ReportSummary{
			TotalRecords:        len(samples),
			AverageSentiment:    overall,
			MostCommonEmotion:   mode(counts),
			EmotionDistribution: distribution,
		},
		Trends: &models.ReportTrends{
			DailyStats:     dailyStats(samples),
			SentimentTrend: rollingMean(scores, trendWindow),
		},
		Insights: insights(samples, scores, counts, overall),
	}, nil
}

func dailyStats(samples []sample) []models.DailyStat {
	type bucket struct {
		scores   []float64
		emotions []string
	}
	buckets := make(map[string]*bucket)
	var days []string
	for _, s := range samples {
		day := s.ts.Format(time.DateOnly)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
			days = append(days, day)
		}
		b.scores = append(b.scores, s.sentiment)
		b.emotions = append(b.emotions, s.emotion)
	}
	sort.Strings(days)

	stats := make([]models.DailyStat, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		stats = append(stats, models.DailyStat{
			Date:            day,
			SentimentMean:   mean(b.scores),
			SentimentStd:    sampleStd(b.scores),
			DominantEmotion: mode(countEmotions(b.emotions)),
		})
	}
	return stats
}

// rollingMean is a trailing moving average; the first window-1 entries are
// nil because the window is not yet full.
func rollingMean(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			avg := sum / float64(window)
			out[i] = &avg
		}
	}
	return out
}

func insights(samples []sample, scores []float64, counts map[string]int, overall float64) []models.Insight {
	var out []models.Insight

	recent := scores
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	recentMean := mean(recent)
	switch {
	case recentMean > overall:
		out = append(out, models.Insight{
			Type:    "positive_trend",
			Message: "Your emotional state has been more positive recently",
		})
	case recentMean < overall:
		out = append(out, models.Insight{
			Type:    "negative_trend",
			Message: "Your emotional state has been more challenging recently",
		})
	}

	if float64(len(counts))/float64(len(samples)) < consistencyCeiling {
		out = append(out, models.Insight{
			Type:    "emotion_consistency",
			Message: "You've been experiencing consistent emotions recently",
		})
	}

	best, worst := hourExtremes(samples)
	out = append(out, models.Insight{
		Type:    "daily_pattern",
		Message: fmt.Sprintf("You tend to feel best around %d:00 and most challenged around %d:00", best, worst),
	})
	return out
}

// hourExtremes returns the clock hours with the highest and lowest mean
// sentiment. Ties resolve to the earliest hour.
func hourExtremes(samples []sample) (best, worst int) {
	var sums, ns [24]float64
	for _, s := range samples {
		h := s.ts.Hour()
		sums[h] += s.sentiment
		ns[h]++
	}
	bestMean, worstMean := math.Inf(-1), math.Inf(1)
	for h := 0; h < 24; h++ {
		if ns[h] == 0 {
			continue
		}
		m := sums[h] / ns[h]
		if m > bestMean {
			bestMean, best = m, h
		}
		if m < worstMean {
			worstMean, worst = m, h
		}
	}
	return best, worst
}

func countEmotions(emotions []string) map[string]int {
	counts := make(map[string]int)
	for _, e := range emotions {
		counts[e]++
	}
	return counts
}

// mode returns the most frequent key, lexically smallest on ties.
func mode(counts map[string]int) string {
	var best string
	bestN := -1
	for k, n := range counts {
		if n > bestN || (n == bestN && k < best) {
			best, bestN = k, n
		}
	}
	return best
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStd is the n-1 standard deviation, undefined for fewer than two values.
func sampleStd(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		ss += (v - m) * (v - m)
	}
	std := math.Sqrt(ss / float64(len(values)-1))
	return &std
}
