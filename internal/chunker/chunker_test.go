package chunker

import (
	"strings"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "terminal punctuation with spaces",
			text: "First one. Second one! Third one?",
			want: []string{"First one. ", "Second one! ", "Third one?"},
		},
		{
			name: "trailing text without punctuation",
			text: "Complete sentence. and then it trails off",
			want: []string{"Complete sentence. ", "and then it trails off"},
		},
		{
			name: "no punctuation at all",
			text: "just words no stops",
			want: []string{"just words no stops"},
		},
		{
			name: "empty",
			text: "",
			want: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitSentencesConcatenate(t *testing.T) {
	text := "One sentence here. Another one follows! Does a question work? Trailing bit"
	got := strings.Join(SplitSentences(text), "")
	if got != text {
		t.Errorf("sentences do not concatenate back: %q", got)
	}
}

// genText builds n identical five-word sentences.
func genText(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString("This is a filler sentence.")
	}
	return b.String()
}

func TestSplitIntoSentenceChunksShortText(t *testing.T) {
	text := "Way under budget."
	chunks := SplitIntoSentenceChunks(text, 100)
	if len(chunks) != 1 || chunks[0] != text {
		t.Errorf("chunks = %q, want the text itself", chunks)
	}
}

func TestSplitIntoSentenceChunksOverlap(t *testing.T) {
	// 20 sentences of 5 words each; a 50 word budget cuts after every
	// 10th sentence.
	text := genText(20)
	chunks := SplitIntoSentenceChunks(text, 50)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := SplitSentences(strings.TrimSpace(chunks[i-1]))
		cur := SplitSentences(strings.TrimSpace(chunks[i]))
		if len(prev) < 2 || len(cur) < 2 {
			t.Fatalf("chunk too small to check overlap")
		}
		// The chunk starts with the last two sentences of its
		// predecessor.
		a := strings.TrimSpace(prev[len(prev)-2] + prev[len(prev)-1])
		b := strings.TrimSpace(cur[0] + cur[1])
		if a != b {
			t.Errorf("chunk %d overlap = %q, want %q", i, b, a)
		}
	}
}

func TestSplitIntoSentenceChunksNoTrailingOverlapOnlyChunk(t *testing.T) {
	// Exactly one cut with nothing after it: the seeded overlap alone
	// must not become a final chunk.
	text := genText(10)
	chunks := SplitIntoSentenceChunks(text, 50)
	if len(chunks) != 1 {
		t.Errorf("got %d chunks, want 1 (overlap-only tail dropped)", len(chunks))
	}
}

func TestSplitIntoSentenceChunksCoversAllText(t *testing.T) {
	text := genText(37)
	chunks := SplitIntoSentenceChunks(text, 50)

	total := 0
	for _, c := range chunks {
		total += CountWords(c)
	}
	// Overlapping duplicates make the sum exceed the source, never
	// undercut it.
	if total < CountWords(text) {
		t.Errorf("chunks cover %d words, source has %d", total, CountWords(text))
	}
}

func TestSplitIntoSentenceChunksDefaultBudget(t *testing.T) {
	chunks := SplitIntoSentenceChunks(genText(10), 0)
	if len(chunks) != 1 {
		t.Errorf("got %d chunks, want 1 under the default budget", len(chunks))
	}
}

func TestSplitChapterIntoSubChunks(t *testing.T) {
	short := "A short chapter."
	if got := SplitChapterIntoSubChunks(short, 100); len(got) != 1 || got[0] != short {
		t.Errorf("short chapter = %q", got)
	}

	long := genText(30)
	if got := SplitChapterIntoSubChunks(long, 50); len(got) < 2 {
		t.Errorf("long chapter got %d sub-chunks, want at least 2", len(got))
	}
}

func TestCondenseTranscriptUnderBudget(t *testing.T) {
	text := "Short enough already."
	if got := CondenseTranscript(text, 100); got != text {
		t.Errorf("got %q, want unchanged text", got)
	}
}

func TestCondenseTranscriptSamples(t *testing.T) {
	text := genText(200) // 1000 words
	got := CondenseTranscript(text, 150)

	if CountWords(got) >= CountWords(text) {
		t.Errorf("condensed to %d words from %d", CountWords(got), CountWords(text))
	}
	// Sampling keeps the opening sentence.
	if !strings.HasPrefix(got, "This is a filler sentence.") {
		t.Errorf("condensed text does not start at the beginning: %q", got[:40])
	}
	// Within a factor of the budget; the stride approximation is loose
	// but must land in the right ballpark.
	if CountWords(got) > 300 {
		t.Errorf("condensed to %d words, budget was 150", CountWords(got))
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"one two  three\nfour", 4},
	}
	for _, tt := range tests {
		if got := CountWords(tt.text); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
