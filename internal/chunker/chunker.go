// Package chunker splits long transcripts into sentence-aligned pieces
// sized to a word budget, so each generation request stays inside the
// model's context window while keeping continuity across chunk borders.
package chunker

import (
	"math"
	"regexp"
	"strings"
)

const (
	// DefaultChunkWords targets ~3500 words per chunk: roughly 4500
	// input tokens plus the system prompt and output budget fits a 7K
	// native context window.
	DefaultChunkWords = 3500

	// DefaultCondenseWords is the budget for the arc-analysis sample.
	DefaultCondenseWords = 1500

	// overlapSentences is how many trailing sentences are repeated at
	// the start of the next chunk so the model keeps local context.
	overlapSentences = 2

	// avgSentenceWords approximates sentence length when computing the
	// condensing stride.
	avgSentenceWords = 15
)

// Matches one sentence including its terminal punctuation and the
// following whitespace character, plus any trailing text that never
// reaches terminal punctuation.
var sentenceRe = regexp.MustCompile(`[^.!?]*[.!?]+\s?|[^.!?]+$`)

// SplitSentences returns the sentence sequence of text. The sentences
// concatenate back to the original text. Empty or punctuation-free input
// yields a single element holding the whole text.
func SplitSentences(text string) []string {
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		return []string{text}
	}
	return sentences
}

// SplitIntoSentenceChunks splits text into chunks of roughly targetWords
// words, cut on sentence boundaries. Each chunk after the first starts
// with the last two sentences of the previous chunk. A non-positive
// targetWords falls back to DefaultChunkWords.
func SplitIntoSentenceChunks(text string, targetWords int) []string {
	if targetWords <= 0 {
		targetWords = DefaultChunkWords
	}

	sentences := SplitSentences(text)

	var chunks []string
	var current []string
	var overlap []string
	currentWords := 0

	for _, sentence := range sentences {
		current = append(current, sentence)
		currentWords += countWords(sentence)

		if currentWords >= targetWords {
			chunks = append(chunks, strings.Join(current, ""))
			start := len(current) - overlapSentences
			if start < 0 {
				start = 0
			}
			overlap = append([]string(nil), current[start:]...)
			current = append([]string(nil), overlap...)
			currentWords = countWords(strings.Join(overlap, " "))
		}
	}

	// Remaining sentences beyond the seeded overlap form the final chunk.
	if len(current) > len(overlap) {
		chunks = append(chunks, strings.Join(current, ""))
	}

	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}

// SplitChapterIntoSubChunks returns the chapter text unchanged when it is
// within budget, otherwise splits it like any long transcript.
func SplitChapterIntoSubChunks(text string, targetWords int) []string {
	if targetWords <= 0 {
		targetWords = DefaultChunkWords
	}
	if countWords(text) <= targetWords {
		return []string{text}
	}
	return SplitIntoSentenceChunks(text, targetWords)
}

// CondenseTranscript reduces text to roughly targetWords words by
// sampling every Nth sentence, approximating uniform coverage of the
// whole transcript. Text already under budget is returned unchanged.
func CondenseTranscript(text string, targetWords int) string {
	if targetWords <= 0 {
		targetWords = DefaultCondenseWords
	}
	if countWords(text) <= targetWords {
		return text
	}

	sentences := SplitSentences(text)
	targetSentences := float64(targetWords) / avgSentenceWords
	stride := int(math.Ceil(float64(len(sentences)) / targetSentences))
	if stride < 1 {
		stride = 1
	}

	var b strings.Builder
	for i := 0; i < len(sentences); i += stride {
		b.WriteString(sentences[i])
	}
	return b.String()
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

// CountWords reports the whitespace-separated word count of s.
func CountWords(s string) int {
	return countWords(s)
}
