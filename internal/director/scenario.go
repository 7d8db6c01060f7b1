package director

import "github.com/ivlev/leet2video/internal/mobject"

// Scenario is the timeline of scenes for one episode
type Scenario struct {
	Version       string       `yaml:"version"`
	EpisodeID     string       `yaml:"episode_id,omitempty"`
	TotalDuration float64      `yaml:"total_duration"` // Seconds
	Scenes        []SceneEntry `yaml:"scenes"`
}

// SceneEntry places one rendered scene on the timeline
type SceneEntry struct {
	ID         int                 `yaml:"id"`
	Kind       string              `yaml:"kind"`
	Start      float64             `yaml:"start"`    // Offset from the start of the episode
	Duration   float64             `yaml:"duration"` // Seconds
	Mobjects   int                 `yaml:"mobjects"`
	Objects    []map[string]any    `yaml:"objects,omitempty"`
	Animations []mobject.Animation `yaml:"animations,omitempty"`
	Narration  []string            `yaml:"narration,omitempty"`
}

// End returns the time the scene stops
func (e SceneEntry) End() float64 {
	return e.Start + e.Duration
}
