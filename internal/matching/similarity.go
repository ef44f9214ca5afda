// Package matching holds the pure scoring primitives: similarity transform,
// hard eligibility filters and the display-only tag matcher. Nothing in this
// package performs I/O.
package matching

import "math"

// NeutralScore is substituted whenever an embedding is missing or unusable,
// so one degraded profile or opportunity cannot abort a batch.
const NeutralScore = 0.5

// Degradation identifies why the similarity transform fell back to a default
// instead of computing a real cosine. Callers use it for logging and metrics.
type Degradation string

const (
	DegradationNone             Degradation = ""
	DegradationMissingEmbedding Degradation = "missing_embedding"
	DegradationShapeMismatch    Degradation = "shape_mismatch"
	DegradationZeroNorm         Degradation = "zero_norm"
	DegradationNonFinite        Degradation = "non_finite"
)

// Anchor points for the perceptual stretch. Raw embedding cosines cluster in
// a narrow band (roughly 0.3-0.5 from unrelated to related content); the
// stretch maps that band onto a range users can read as weak-to-excellent
// without changing rank order.
const (
	cosLow  = 0.25
	cosHigh = 0.55
	outLow  = 0.50
	outHigh = 0.95
)

// SemanticScore maps two embeddings to a bounded similarity score in [0,1].
// Missing or malformed input never surfaces as an error; the returned
// Degradation tells the caller which default path was taken.
func SemanticScore(a, b []float32) (float64, Degradation) {
	if len(a) == 0 || len(b) == 0 {
		return NeutralScore, DegradationMissingEmbedding
	}
	if len(a) != len(b) {
		return NeutralScore, DegradationShapeMismatch
	}

	cos, deg := Cosine(a, b)
	if deg != DegradationNone {
		switch deg {
		case DegradationZeroNorm:
			return 0, deg
		default:
			return NeutralScore, deg
		}
	}

	return clamp01(StretchCosine(cos)), DegradationNone
}

// Cosine computes raw cosine similarity between two equal-length vectors.
func Cosine(a, b []float32) (float64, Degradation) {
	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, DegradationZeroNorm
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(cos) || math.IsInf(cos, 0) {
		return 0, DegradationNonFinite
	}
	return cos, DegradationNone
}

// StretchCosine applies the piecewise-linear perceptual stretch, mapping the
// expected operating range [0.25, 0.55] onto [0.50, 0.95]. Monotonically
// non-decreasing over the whole input domain.
func StretchCosine(cos float64) float64 {
	switch {
	case cos <= cosLow:
		return cos / cosLow * outLow
	case cos >= cosHigh:
		return outHigh + (cos-cosHigh)*0.5
	default:
		return outLow + (cos-cosLow)/(cosHigh-cosLow)*(outHigh-outLow)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
