package generation

// confidence thresholds: answers backed by five or more chunks get full base
// score, and answers longer than 50 characters get the full length bonus.
const (
	fullConfidenceChunks = 5
	shortAnswerChars     = 50
	shortAnswerPenalty   = 0.5
)

// Confidence scores an answer from the number of context chunks and the answer
// length in characters: min(chunkCount/5, 1) * (length > 50 ? 1 : 0.5).
// A crude proxy kept bit-for-bit stable for compatibility with recorded runs;
// it is not a calibrated probability.
func Confidence(chunkCount, answerLength int) float64 {
	base := float64(chunkCount) / fullConfidenceChunks
	if base > 1 {
		base = 1
	}
	bonus := shortAnswerPenalty
	if answerLength > shortAnswerChars {
		bonus = 1.0
	}
	return base * bonus
}
