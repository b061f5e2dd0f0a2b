package rag

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

const (
	// DefaultTopK is how many chunks FindRelevantChunks returns at most.
	DefaultTopK = 3
	// scoreFloor discards chunks whose similarity is noise-level: a score at
	// or below it means the chunk shares almost no vocabulary with the query.
	scoreFloor = 0.1
)

var reWord = regexp.MustCompile(`\w+`)

// textToVector builds a term-frequency vector of the lowercased words in
// text. Words shorter than three characters are dropped as stopword noise.
func textToVector(text string) map[string]float64 {
	vec := make(map[string]float64)
	for _, word := range reWord.FindAllString(strings.ToLower(text), -1) {
		if len(word) < 3 {
			continue
		}
		vec[word]++
	}
	return vec
}

// cosineSimilarity computes the cosine of the angle between two TF vectors.
// Either vector being empty (or all-zero) yields 0, never NaN.
func cosineSimilarity(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for word, countA := range a {
		dot += countA * b[word]
		normA += countA * countA
	}
	for _, countB := range b {
		normB += countB * countB
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// FindRelevantChunks ranks chunks against query by TF cosine similarity and
// returns the top topK whose score clears the noise floor, best first.
// Chunks with equal scores keep their original relative order. An empty
// query or chunk list returns nil.
func FindRelevantChunks(query string, chunks []string, topK int) []string {
	if strings.TrimSpace(query) == "" || len(chunks) == 0 {
		return nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryVec := textToVector(query)

	type scored struct {
		chunk string
		score float64
	}
	ranked := make([]scored, 0, len(chunks))
	for _, chunk := range chunks {
		ranked = append(ranked, scored{chunk: chunk, score: cosineSimilarity(queryVec, textToVector(chunk))})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	out := make([]string, 0, topK)
	for _, item := range ranked {
		if item.score <= scoreFloor {
			break
		}
		out = append(out, item.chunk)
		if len(out) == topK {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// RelevantContext chunks document and returns the chunks most relevant to
// query, ready to inject into a system prompt. It is the one-call form of
// ChunkText + FindRelevantChunks.
func RelevantContext(query, document string, chunkSize, overlap, topK int) []string {
	return FindRelevantChunks(query, ChunkText(document, chunkSize, overlap), topK)
}
