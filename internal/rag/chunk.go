// Package rag implements lightweight document grounding: sentence-aware text
// chunking plus term-frequency cosine ranking. There are no embeddings and no
// vector store — ranking is purely lexical, which keeps the pipeline
// dependency-free and fast enough to run inline on every request.
package rag

import (
	"regexp"
	"strings"
)

const (
	// DefaultChunkSize is the target chunk length in bytes.
	DefaultChunkSize = 1000
	// DefaultOverlap is how far consecutive chunks overlap.
	DefaultOverlap = 200
)

var reWhitespace = regexp.MustCompile(`\s+`)

// ChunkText splits text into overlapping chunks of roughly chunkSize bytes.
// Whitespace runs are collapsed to single spaces first. A chunk prefers to
// end at a sentence boundary ('.'), falling back to a word boundary (' '),
// but only when that boundary lies past the midpoint of the window — a break
// earlier than that would produce runt chunks. Input at or under chunkSize
// comes back as a single chunk.
//
// The window always advances: when overlap would step the cursor at or
// behind its current position (overlap >= produced chunk), the next window
// starts exactly where this one ended instead of looping.
func ChunkText(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}

	clean := strings.TrimSpace(reWhitespace.ReplaceAllString(text, " "))
	if clean == "" {
		return nil
	}
	if len(clean) <= chunkSize {
		return []string{clean}
	}

	var chunks []string
	start := 0
	for start < len(clean) {
		end := start + chunkSize
		if end > len(clean) {
			end = len(clean)
		}

		actualEnd := end
		if end < len(clean) {
			midpoint := start + chunkSize/2
			lastDot := strings.LastIndexByte(clean[:end+1], '.')
			lastSpace := strings.LastIndexByte(clean[:end+1], ' ')

			switch {
			case lastDot > midpoint:
				actualEnd = lastDot + 1
			case lastSpace > midpoint:
				actualEnd = lastSpace
			}
		}

		if chunk := strings.TrimSpace(clean[start:actualEnd]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := actualEnd - overlap
		if next <= start {
			next = actualEnd
		}
		start = next
	}

	return chunks
}
