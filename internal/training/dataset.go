package training

import (
	"fmt"
	"math"
	"math/rand"

	"nest/internal/models"
	"nest/internal/nlp"
)

const (
	splitSeed    = 42
	testFraction = 0.2
)

// Dataset is a feature matrix with one integer label per row.
type Dataset struct {
	X [][]float64
	Y []int
}

func (d *Dataset) Len() int {
	return len(d.Y)
}

// Featurize converts samples into hashed bag-of-words vectors.
func Featurize(samples []models.TrainingSample) (*Dataset, error) {
	d := &Dataset{X: make([][]float64, 0, len(samples)), Y: make([]int, 0, len(samples))}
	for i, s := range samples {
		if s.Emotion < 0 {
			return nil, fmt.Errorf("%w: sample %d has negative label %d", models.ErrValidation, i, s.Emotion)
		}
		d.X = append(d.X, nlp.HashFeatures(s.Text, nlp.FeatureSize))
		d.Y = append(d.Y, s.Emotion)
	}
	return d, nil
}

// Split shuffles with a fixed seed and holds out ceil(20%) of the rows.
func (d *Dataset) Split() (train, test *Dataset, err error) {
	n := d.Len()
	nTest := int(math.Ceil(testFraction * float64(n)))
	if n-nTest < 1 || nTest < 1 {
		return nil, nil, fmt.Errorf("%w: need at least 2 samples, got %d", models.ErrValidation, n)
	}

	perm := rand.New(rand.NewSource(splitSeed)).Perm(n)
	return d.subset(perm[nTest:]), d.subset(perm[:nTest]), nil
}

func (d *Dataset) subset(idx []int) *Dataset {
	out := &Dataset{X: make([][]float64, len(idx)), Y: make([]int, len(idx))}
	for i, j := range idx {
		out.X[i] = d.X[j]
		out.Y[i] = d.Y[j]
	}
	return out
}

// Batches yields row indices in groups of size, in order unless rng is set.
func (d *Dataset) Batches(size int, rng *rand.Rand) [][]int {
	order := make([]int, d.Len())
	for i := range order {
		order[i] = i
	}
	if rng != nil {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	var out [][]int
	for start := 0; start < len(order); start += size {
		end := min(start+size, len(order))
		out = append(out, order[start:end])
	}
	return out
}

func (d *Dataset) rows(idx []int) ([][]float64, []int) {
	xs := make([][]float64, len(idx))
	ys := make([]int, len(idx))
	for i, j := range idx {
		xs[i] = d.X[j]
		ys[i] = d.Y[j]
	}
	return xs, ys
}

func maxLabel(labels []int) int {
	m := 0
	for _, y := range labels {
		m = max(m, y)
	}
	return m
}
