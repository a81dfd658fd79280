package emotion

import (
	"context"
	"time"

	"nest/internal/models"
	"nest/internal/nlp"
)

const (
	Joy     = "joy"
	Sadness = "sadness"
	Anger   = "anger"
	Anxiety = "anxiety"
	Stress  = "stress"
	Fear    = "fear"
	Neutral = "neutral"
)

// Labels is the fixed label order; it also breaks ties between equally
// scored emotions.
var Labels = []string{Joy, Sadness, Anger, Anxiety, Stress, Fear, Neutral}

var valence = map[string]float64{
	Joy:     1,
	Sadness: -1,
	Anger:   -1,
	Anxiety: -1,
	Stress:  -1,
	Fear:    -1,
}

var lexicon = map[string]string{}

func init() {
	words := map[string][]string{
		Joy:     {"happy", "happier", "glad", "joy", "joyful", "great", "good", "grateful", "excited", "calm", "relaxed", "love", "loved", "wonderful", "proud", "hopeful", "peaceful"},
		Sadness: {"sad", "sadder", "unhappy", "down", "depressed", "lonely", "cry", "crying", "cried", "hopeless", "miserable", "grief", "empty", "lost"},
		Anger:   {"angry", "mad", "furious", "annoyed", "irritated", "rage", "hate", "frustrated", "resentful"},
		Anxiety: {"anxious", "anxiety", "nervous", "worried", "worry", "panic", "uneasy", "restless", "overthinking"},
		Stress:  {"stress", "stressed", "overwhelmed", "pressure", "exhausted", "tired", "burnout", "deadline", "busy"},
		Fear:    {"afraid", "scared", "fear", "terrified", "frightened", "dread"},
	}
	for label, ws := range words {
		for _, w := range ws {
			lexicon[w] = label
		}
	}
}

// Analyzer turns free text into an emotion payload.
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) (models.EmotionData, error)
}

// LexiconAnalyzer scores text against a small keyword lexicon.
type LexiconAnalyzer struct {
	now func() time.Time
}

func NewLexiconAnalyzer() Analyzer {
	return &LexiconAnalyzer{now: time.Now}
}

func (a *LexiconAnalyzer) AnalyzeText(_ context.Context, text string) (models.EmotionData, error) {
	hits := make(map[string]int, len(Labels))
	total := 0
	for _, tok := range nlp.Tokenize(text) {
		if label, ok := lexicon[tok]; ok {
			hits[label]++
			total++
		}
	}

	scores := make(map[string]any, len(Labels))
	dominant := Neutral
	best := 0
	var sentiment float64
	for _, label := range Labels {
		n := hits[label]
		if total == 0 {
			scores[label] = 0.0
			continue
		}
		scores[label] = float64(n) / float64(total)
		sentiment += valence[label] * float64(n)
		if n > best {
			best = n
			dominant = label
		}
	}
	if total == 0 {
		scores[Neutral] = 1.0
	} else {
		sentiment /= float64(total)
	}

	return models.EmotionData{
		models.KeyDominantEmotion: dominant,
		models.KeySentimentScore:  sentiment,
		"emotions":                scores,
		"analyzed_at":             a.now().UTC().Format(time.RFC3339),
	}, nil
}
