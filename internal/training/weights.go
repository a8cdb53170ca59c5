package training

import (
	"math"

	"github.com/fact-agent/fact-engine/internal/search"
)

// weightTolerance is the floating-point tolerance on the sum-to-1.0
// invariant, used by import validation.
const weightTolerance = 1e-6

// signal carries one weight-adjustment request: the field scores of
// the rated match and the reinforcement direction (+1 correct, -1
// incorrect, +0.5 partial).
type signal struct {
	fields    search.FieldScores
	direction float64
}

// adjust returns a new weight vector with the signal applied. Pure
// function: deltas proportional to each field's contribution are
// added, every component is clamped to [floor, ceiling], and the
// vector is renormalized to sum to 1.0 before it is returned. The
// invariant is therefore structurally guaranteed, not hoped for.
func adjust(w search.Weights, sig signal, rate, floor, ceiling float64) search.Weights {
	w.Question += rate * sig.direction * sig.fields.Question
	w.Answer += rate * sig.direction * sig.fields.Answer
	w.Keyword += rate * sig.direction * sig.fields.Keyword
	w.Variation += rate * sig.direction * sig.fields.Variation

	return normalize(w, floor, ceiling)
}

// blend moves w toward target by factor in [0,1], renormalizing.
// Used by the bulk retrain pass to undo unhelpful drift.
func blend(w, target search.Weights, factor, floor, ceiling float64) search.Weights {
	if factor <= 0 {
		return normalize(w, floor, ceiling)
	}
	if factor > 1 {
		factor = 1
	}
	w.Question += factor * (target.Question - w.Question)
	w.Answer += factor * (target.Answer - w.Answer)
	w.Keyword += factor * (target.Keyword - w.Keyword)
	w.Variation += factor * (target.Variation - w.Variation)

	return normalize(w, floor, ceiling)
}

// normalize clamps each component to [floor, ceiling] and rescales to
// sum 1.0. Renormalizing can push a component back outside the clamp
// range, so the pass repeats until it settles (a handful of rounds is
// always enough for four components).
func normalize(w search.Weights, floor, ceiling float64) search.Weights {
	for i := 0; i < 4; i++ {
		w.Question = clamp(w.Question, floor, ceiling)
		w.Answer = clamp(w.Answer, floor, ceiling)
		w.Keyword = clamp(w.Keyword, floor, ceiling)
		w.Variation = clamp(w.Variation, floor, ceiling)

		sum := w.Sum()
		if sum <= 0 {
			return search.DefaultWeights()
		}
		w.Question /= sum
		w.Answer /= sum
		w.Keyword /= sum
		w.Variation /= sum

		if w.Question >= floor && w.Answer >= floor &&
			w.Keyword >= floor && w.Variation >= floor &&
			w.Question <= ceiling && w.Answer <= ceiling &&
			w.Keyword <= ceiling && w.Variation <= ceiling {
			break
		}
	}
	return w
}

func clamp(v, floor, ceiling float64) float64 {
	if v < floor {
		return floor
	}
	if v > ceiling {
		return ceiling
	}
	return v
}

// validWeights reports whether all components are within [0,1] and the
// vector sums to 1.0 within tolerance.
func validWeights(w search.Weights) bool {
	for _, v := range []float64{w.Question, w.Answer, w.Keyword, w.Variation} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return false
		}
	}
	return math.Abs(w.Sum()-1.0) <= weightTolerance
}
