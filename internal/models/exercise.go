package models

const (
	ExerciseTypeMeditation = "meditation"
	ExerciseTypeBreathing  = "breathing"

	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

type Exercise struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Duration     int      `json:"duration"`
	Type         string   `json:"type"`
	Difficulty   string   `json:"difficulty"`
	AudioURL     *string  `json:"audio_url"`
	Instructions []string `json:"instructions"`
	Benefits     []string `json:"benefits"`
}
