package services

// Similarity converts a vector-store distance into a score in [0, 1].
// Distance 0 is an exact match; anything at or beyond 1 scores 0.
func Similarity(distance float64) float64 {
	s := 1 - distance
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
