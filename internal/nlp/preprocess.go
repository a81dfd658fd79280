// Package nlp holds the deterministic text normalisation shared by the
// emotion analyzer and the classifier feature extractor.
package nlp

import (
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

// FeatureSize is the width of the hashed bag-of-words vector.
const FeatureSize = 100

var (
	urlPattern   = regexp.MustCompile(`https?\S+|www\S+`)
	symbolRegexp = regexp.MustCompile(`[^\w\s]`)
	digitRegexp  = regexp.MustCompile(`\d+`)
)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`a about above after again against all am an and any are as at be because been
		before being below between both but by can did do does doing down during each few for from further had has
		have having her here hers herself him himself his how into its itself just more most myself nor not now off
		once only other our ours ourselves out over own same she should some such than that the their theirs them
		themselves then there these they this those through too under until very was were what when where which
		while who whom why will with you your yours yourself yourselves`) {
		stopWords[w] = struct{}{}
	}
}

// Normalize lowercases text and strips URLs, punctuation and digits.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = symbolRegexp.ReplaceAllString(text, "")
	text = digitRegexp.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// Tokenize returns the normalised tokens longer than two characters that are
// not stop words.
func Tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) <= 2 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// HashFeatures maps text onto an L2-normalised hashed bag-of-words vector of
// the given width. Text without tokens yields the zero vector.
func HashFeatures(text string, dim int) []float64 {
	vec := make([]float64, dim)
	if dim <= 0 {
		return vec
	}
	for _, tok := range Tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		vec[h.Sum32()%uint32(dim)]++
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
