package training

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"nest/internal/models"
	"nest/internal/training/interfaces"
)

const (
	checkpointExt    = ".pt"
	checkpointLayout = "20060102_150405"

	legacyInputSize  = 100
	legacyHiddenSize = 128
	legacyNumClasses = 7
)

type architecture struct {
	InputSize  int `json:"input_size"`
	HiddenSize int `json:"hidden_size"`
	NumClasses int `json:"num_classes"`
}

// checkpoint is the on-disk form of a Classifier. Files written before the
// architecture header existed carry only the state.
type checkpoint struct {
	Arch  *architecture        `json:"arch,omitempty"`
	State map[string][]float64 `json:"state"`
}

func encodeCheckpoint(c *Classifier, compressor interfaces.CompressorInterface) ([]byte, error) {
	raw, err := json.Marshal(checkpoint{
		Arch: &architecture{InputSize: c.InputSize, HiddenSize: c.HiddenSize, NumClasses: c.NumClasses},
		State: map[string][]float64{
			"layer1.weight": c.W1,
			"layer1.bias":   c.B1,
			"layer2.weight": c.W2,
			"layer2.bias":   c.B2,
		},
	})
	if err != nil {
		return nil, err
	}
	return compressor.Compress(raw)
}

func decodeCheckpoint(data []byte, compressor interfaces.CompressorInterface) (*Classifier, error) {
	raw, err := compressor.Decompress(data)
	if err != nil {
		return nil, err
	}
	var cp checkpoint
	if err := json.Unmarshal(raw, &cp); err != nil {
		return nil, err
	}

	arch := architecture{InputSize: legacyInputSize, HiddenSize: legacyHiddenSize, NumClasses: legacyNumClasses}
	if cp.Arch != nil {
		arch = *cp.Arch
	}

	c := &Classifier{
		InputSize:  arch.InputSize,
		HiddenSize: arch.HiddenSize,
		NumClasses: arch.NumClasses,
		W1:         cp.State["layer1.weight"],
		B1:         cp.State["layer1.bias"],
		W2:         cp.State["layer2.weight"],
		B2:         cp.State["layer2.bias"],
	}
	want := map[string][2]int{
		"layer1.weight": {len(c.W1), arch.HiddenSize * arch.InputSize},
		"layer1.bias":   {len(c.B1), arch.HiddenSize},
		"layer2.weight": {len(c.W2), arch.NumClasses * arch.HiddenSize},
		"layer2.bias":   {len(c.B2), arch.NumClasses},
	}
	for name, got := range want {
		if got[0] != got[1] {
			return nil, fmt.Errorf("%w: %s has %d values, expected %d", models.ErrShapeMismatch, name, got[0], got[1])
		}
	}
	return c, nil
}

func checkpointPath(dir, name string, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", name, at.Format(checkpointLayout), checkpointExt))
}

// latestCheckpoint returns the most recently modified checkpoint for name,
// or an empty string when there is none.
func latestCheckpoint(dir, name string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, name+"_*"+checkpointExt))
	if err != nil {
		return "", err
	}

	var latest string
	var latestMod time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest, latestMod = m, info.ModTime()
		}
	}
	return latest, nil
}
