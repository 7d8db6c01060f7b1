package captions

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// PerCharacter is the estimated speaking time of one character of narration.
// Kept as the literal 0.1s heuristic so caption files stay compatible.
const PerCharacter = 100 * time.Millisecond

// Segment is one narration line. Timing is derived from the text.
type Segment struct {
	Text string `json:"text" yaml:"text"`
}

// Cue is a timed segment on the caption timeline
type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

type Generator struct {
	Language string
}

func NewGenerator(language string) *Generator {
	if language == "" {
		language = "en"
	}
	return &Generator{Language: language}
}

// SegmentsFromText wraps plain narration lines
func SegmentsFromText(lines []string) []Segment {
	segments := make([]Segment, len(lines))
	for i, line := range lines {
		segments[i] = Segment{Text: line}
	}
	return segments
}

// EstimateDuration is the spoken duration of a text: rune count times PerCharacter
func EstimateDuration(text string) time.Duration {
	return time.Duration(utf8.RuneCountInString(text)) * PerCharacter
}

// Timeline lays the segments back to back starting at zero
func (g *Generator) Timeline(segments []Segment) []Cue {
	cues := make([]Cue, len(segments))
	var start time.Duration
	for i, seg := range segments {
		end := start + EstimateDuration(seg.Text)
		cues[i] = Cue{Index: i + 1, Start: start, End: end, Text: seg.Text}
		start = end
	}
	return cues
}

// TotalDuration returns the end of the last cue in seconds
func (g *Generator) TotalDuration(segments []Segment) float64 {
	var total time.Duration
	for _, seg := range segments {
		total += EstimateDuration(seg.Text)
	}
	return total.Seconds()
}

// GenerateSRT renders SubRip subtitles. Blank segments are dropped and the rest renumbered.
func (g *Generator) GenerateSRT(segments []Segment) string {
	var sb strings.Builder
	index := 0
	for _, cue := range g.Timeline(segments) {
		if strings.TrimSpace(cue.Text) == "" || cue.Start >= cue.End {
			continue
		}
		index++
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n\n", index, srtTimestamp(cue.Start), srtTimestamp(cue.End), legalContent(cue.Text))
	}
	return sb.String()
}

// GenerateWebVTT renders a WebVTT track
func (g *Generator) GenerateWebVTT(segments []Segment) string {
	lines := []string{"WEBVTT", ""}
	for _, cue := range g.Timeline(segments) {
		lines = append(lines,
			vttTimestamp(cue.Start)+" --> "+vttTimestamp(cue.End),
			cue.Text,
			"",
		)
	}
	return strings.Join(lines, "\n")
}

// GenerateTranscript joins the segment texts, one per line
func (g *Generator) GenerateTranscript(segments []Segment) string {
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}
	return strings.Join(texts, "\n")
}

// largest whole second a time.Duration can hold
const maxSeconds = float64(math.MaxInt64/int64(time.Second) - 1)

// FormatTime formats seconds as HH:MM:SS.mmm. Input is rounded to the
// microsecond, then floored to the millisecond. Negative input clamps to zero.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || seconds <= 0 {
		return vttTimestamp(0)
	}
	if seconds > maxSeconds {
		seconds = maxSeconds
	}
	micros := math.Round(seconds * 1e6)
	return vttTimestamp(time.Duration(micros) * time.Microsecond)
}

func vttTimestamp(d time.Duration) string {
	return timestamp(d, '.')
}

func srtTimestamp(d time.Duration) string {
	return timestamp(d, ',')
}

func timestamp(d time.Duration, sep byte) string {
	if d < 0 {
		d = 0
	}
	ms := int64(d / time.Millisecond)
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	secs := (ms % 60_000) / 1000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, ms%1000)
}

var blankLines = regexp.MustCompile(`\n\n+`)

// legalContent keeps a cue body from containing a blank line, which would end the cue early
func legalContent(text string) string {
	if !strings.HasPrefix(text, "\n") && !strings.Contains(text, "\n\n") {
		return text
	}
	return blankLines.ReplaceAllString(strings.Trim(text, "\n"), "\n")
}
