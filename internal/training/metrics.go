package training

import "nest/internal/models"

// Score computes accuracy and support-weighted precision, recall and F1 over
// the union of true and predicted labels. Undefined ratios count as zero.
func Score(truth, predicted []int) models.ModelMetrics {
	if len(truth) == 0 {
		return models.ModelMetrics{}
	}

	type counts struct{ tp, predicted, support int }
	perLabel := make(map[int]*counts)
	get := func(label int) *counts {
		c, ok := perLabel[label]
		if !ok {
			c = &counts{}
			perLabel[label] = c
		}
		return c
	}

	correct := 0
	for i, y := range truth {
		p := predicted[i]
		get(y).support++
		get(p).predicted++
		if y == p {
			correct++
			get(y).tp++
		}
	}

	var m models.ModelMetrics
	total := float64(len(truth))
	for _, c := range perLabel {
		if c.support == 0 {
			continue
		}
		var precision, recall, f1 float64
		if c.predicted > 0 {
			precision = float64(c.tp) / float64(c.predicted)
		}
		recall = float64(c.tp) / float64(c.support)
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}
		w := float64(c.support) / total
		m.Precision += w * precision
		m.Recall += w * recall
		m.F1Score += w * f1
	}
	m.Accuracy = float64(correct) / total
	return m
}
