package services

import "strings"

// DefaultChunkSize is the target chunk length in characters
const DefaultChunkSize = 800

// ChunkText splits text on whitespace and packs words into chunks. A chunk is
// closed as soon as its running length (each word plus one separator) reaches
// chunkSize, so chunks can run slightly over it but never split a word.
func ChunkText(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var (
		chunks  []string
		current []string
		length  int
	)
	for _, word := range strings.Fields(text) {
		current = append(current, word)
		length += len([]rune(word)) + 1
		if length >= chunkSize {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			length = 0
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}
