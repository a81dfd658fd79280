package training

import (
	"math"
	"math/rand"
)

// Classifier is a two-layer perceptron: linear, ReLU, linear. Weights are
// stored row-major, one row per output unit.
type Classifier struct {
	InputSize  int
	HiddenSize int
	NumClasses int

	W1 []float64
	B1 []float64
	W2 []float64
	B2 []float64
}

// NewClassifier initialises weights uniformly in ±1/sqrt(fan_in).
func NewClassifier(inputSize, hiddenSize, numClasses int, rng *rand.Rand) *Classifier {
	c := &Classifier{
		InputSize:  inputSize,
		HiddenSize: hiddenSize,
		NumClasses: numClasses,
		W1:         make([]float64, hiddenSize*inputSize),
		B1:         make([]float64, hiddenSize),
		W2:         make([]float64, numClasses*hiddenSize),
		B2:         make([]float64, numClasses),
	}
	fill := func(dst []float64, fanIn int) {
		bound := 1 / math.Sqrt(float64(fanIn))
		for i := range dst {
			dst[i] = (rng.Float64()*2 - 1) * bound
		}
	}
	fill(c.W1, inputSize)
	fill(c.B1, inputSize)
	fill(c.W2, hiddenSize)
	fill(c.B2, hiddenSize)
	return c
}

func (c *Classifier) ParamCount() int {
	return len(c.W1) + len(c.B1) + len(c.W2) + len(c.B2)
}

func (c *Classifier) params() [][]float64 {
	return [][]float64{c.W1, c.B1, c.W2, c.B2}
}

// forward returns the hidden activations and the output logits for x.
func (c *Classifier) forward(x []float64) (hidden, logits []float64) {
	hidden = make([]float64, c.HiddenSize)
	for j := 0; j < c.HiddenSize; j++ {
		row := c.W1[j*c.InputSize : (j+1)*c.InputSize]
		sum := c.B1[j]
		for i, v := range x {
			sum += row[i] * v
		}
		if sum > 0 {
			hidden[j] = sum
		}
	}

	logits = make([]float64, c.NumClasses)
	for k := 0; k < c.NumClasses; k++ {
		row := c.W2[k*c.HiddenSize : (k+1)*c.HiddenSize]
		sum := c.B2[k]
		for j, h := range hidden {
			sum += row[j] * h
		}
		logits[k] = sum
	}
	return hidden, logits
}

// Probabilities is the softmax of the logits for x.
func (c *Classifier) Probabilities(x []float64) []float64 {
	_, logits := c.forward(x)
	return softmax(logits)
}

func (c *Classifier) Predict(x []float64) int {
	_, logits := c.forward(x)
	return argmax(logits)
}

// gradients accumulates the mean softmax cross-entropy loss and its gradient
// over a batch. The returned slices line up with params().
func (c *Classifier) gradients(xs [][]float64, ys []int) (float64, [][]float64) {
	gW1 := make([]float64, len(c.W1))
	gB1 := make([]float64, len(c.B1))
	gW2 := make([]float64, len(c.W2))
	gB2 := make([]float64, len(c.B2))

	n := float64(len(xs))
	var loss float64
	dHidden := make([]float64, c.HiddenSize)
	for s, x := range xs {
		hidden, logits := c.forward(x)
		probs := softmax(logits)
		loss -= math.Log(math.Max(probs[ys[s]], 1e-12))

		probs[ys[s]] -= 1
		for j := range dHidden {
			dHidden[j] = 0
		}
		for k, dz := range probs {
			dz /= n
			gB2[k] += dz
			row := c.W2[k*c.HiddenSize : (k+1)*c.HiddenSize]
			gRow := gW2[k*c.HiddenSize : (k+1)*c.HiddenSize]
			for j, h := range hidden {
				gRow[j] += dz * h
				dHidden[j] += row[j] * dz
			}
		}
		for j, dh := range dHidden {
			if hidden[j] <= 0 {
				continue
			}
			gB1[j] += dh
			gRow := gW1[j*c.InputSize : (j+1)*c.InputSize]
			for i, v := range x {
				gRow[i] += dh * v
			}
		}
	}
	return loss / n, [][]float64{gW1, gB1, gW2, gB2}
}

func softmax(logits []float64) []float64 {
	out := make([]float64, len(logits))
	peak := logits[argmax(logits)]
	var sum float64
	for i, z := range logits {
		out[i] = math.Exp(z - peak)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// argmax returns the first index of the largest value.
func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
