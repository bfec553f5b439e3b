package transcript

import (
	"strconv"
	"strings"
)

// ParseSRT parses SubRip text into timed segments. Cue text lines are
// joined with spaces; malformed timestamp lines skip their cue.
//
//	1
//	00:00:00,000 --> 00:00:01,830
//	I'm happy to
//	have you here today.
func ParseSRT(text string) []Segment {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var (
		segments  []Segment
		startMs   float64
		endMs     float64
		haveTimes bool
		parts     []string
	)

	flush := func() {
		if haveTimes && len(parts) > 0 {
			segments = append(segments, Segment{
				Text:       strings.Join(parts, " "),
				StartMs:    startMs,
				DurationMs: endMs - startMs,
				EndMs:      endMs,
			})
		}
		parts = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			flush()
			continue
		}
		if isDigitOnly(line) && len(parts) == 0 {
			continue
		}
		if strings.Contains(line, "-->") {
			flush()
			times := strings.Split(line, "-->")
			if len(times) != 2 {
				haveTimes = false
				continue
			}
			var okStart, okEnd bool
			startMs, okStart = parseSRTTime(strings.TrimSpace(times[0]))
			endMs, okEnd = parseSRTTime(strings.TrimSpace(times[1]))
			haveTimes = okStart && okEnd
			continue
		}

		parts = append(parts, line)
	}
	flush()

	return segments
}

// parseSRTTime converts HH:MM:SS,mmm (or a dot separator) to
// milliseconds.
func parseSRTTime(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", ".")
	fields := strings.Split(s, ":")
	if len(fields) != 3 {
		return 0, false
	}
	hours, err1 := strconv.Atoi(fields[0])
	minutes, err2 := strconv.Atoi(fields[1])
	seconds, err3 := strconv.ParseFloat(fields[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return float64(hours*3600000+minutes*60000) + seconds*1000, true
}

func isDigitOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
