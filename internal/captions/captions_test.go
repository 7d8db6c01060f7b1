package captions

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00.000"},
		{3661.5, "01:01:01.500"},
		{1.1, "00:00:01.100"},
		{2.3, "00:00:02.300"},
		{59.9999, "00:00:59.999"},
		{0.0004, "00:00:00.000"},
		{360000, "100:00:00.000"},
		{-5, "00:00:00.000"},
		{1e300, "2562047:47:15.000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTime(tt.seconds))
		})
	}
}

func TestGenerateSRTSingleSegment(t *testing.T) {
	g := NewGenerator("")
	assert.Equal(t, "en", g.Language)

	srt := g.GenerateSRT([]Segment{{Text: "Hello world"}})

	assert.Equal(t, "1\n00:00:00,000 --> 00:00:01,100\nHello world\n\n", srt)
}

func TestGenerateSRTSkipsBlankSegments(t *testing.T) {
	g := NewGenerator("en")

	srt := g.GenerateSRT([]Segment{{Text: "One"}, {Text: ""}, {Text: "Two"}})

	want := "1\n00:00:00,000 --> 00:00:00,300\nOne\n\n" +
		"2\n00:00:00,300 --> 00:00:00,600\nTwo\n\n"
	assert.Equal(t, want, srt)
}

func TestGenerateSRTCollapsesBlankLines(t *testing.T) {
	g := NewGenerator("en")

	srt := g.GenerateSRT([]Segment{{Text: "a\n\nb"}})

	assert.Equal(t, "1\n00:00:00,000 --> 00:00:00,400\na\nb\n\n", srt)
}

func TestGenerateWebVTT(t *testing.T) {
	g := NewGenerator("en")

	vtt := g.GenerateWebVTT([]Segment{{Text: "Hello"}, {Text: "World"}})

	lines := strings.Split(vtt, "\n")
	assert.Equal(t, []string{
		"WEBVTT",
		"",
		"00:00:00.000 --> 00:00:00.500",
		"Hello",
		"",
		"00:00:00.500 --> 00:00:01.000",
		"World",
		"",
	}, lines)

	assert.Equal(t, "WEBVTT\n", g.GenerateWebVTT(nil))
}

func TestGenerateTranscript(t *testing.T) {
	g := NewGenerator("en")

	assert.Equal(t, "Line 1\nLine 2", g.GenerateTranscript([]Segment{{Text: "Line 1"}, {Text: "Line 2"}}))
	assert.Equal(t, "", g.GenerateTranscript(nil))
}

func TestTimelineIsContiguous(t *testing.T) {
	g := NewGenerator("en")
	segments := SegmentsFromText([]string{"abc", "héllo", "", "x"})

	cues := g.Timeline(segments)
	require.Len(t, cues, 4)

	assert.Equal(t, time.Duration(0), cues[0].Start)
	for i := 1; i < len(cues); i++ {
		assert.Equal(t, cues[i-1].End, cues[i].Start)
	}
	assert.Equal(t, 500*time.Millisecond, cues[1].End-cues[1].Start)
	assert.InDelta(t, 0.9, g.TotalDuration(segments), 1e-9)
}

func TestWriteFiles(t *testing.T) {
	g := NewGenerator("en")
	dir := t.TempDir()

	files, err := g.WriteFiles(dir, []Segment{{Text: "Hi"}})
	require.NoError(t, err)

	srt, err := os.ReadFile(files.SRT)
	require.NoError(t, err)
	assert.Equal(t, g.GenerateSRT([]Segment{{Text: "Hi"}}), string(srt))

	transcript, err := os.ReadFile(files.Transcript)
	require.NoError(t, err)
	assert.Equal(t, "Hi", string(transcript))
}
