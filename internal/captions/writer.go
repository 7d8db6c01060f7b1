package captions

import (
	"os"
	"path/filepath"
)

// Files holds the paths written by WriteFiles
type Files struct {
	SRT        string
	VTT        string
	Transcript string
}

// WriteFiles writes captions.srt, captions.vtt and transcript.txt into dir
func (g *Generator) WriteFiles(dir string, segments []Segment) (Files, error) {
	files := Files{
		SRT:        filepath.Join(dir, "captions.srt"),
		VTT:        filepath.Join(dir, "captions.vtt"),
		Transcript: filepath.Join(dir, "transcript.txt"),
	}

	outputs := []struct {
		path    string
		content string
	}{
		{files.SRT, g.GenerateSRT(segments)},
		{files.VTT, g.GenerateWebVTT(segments)},
		{files.Transcript, g.GenerateTranscript(segments)},
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return Files{}, err
	}
	for _, out := range outputs {
		if err := os.WriteFile(out.path, []byte(out.content), 0644); err != nil {
			return Files{}, err
		}
	}
	return files, nil
}
