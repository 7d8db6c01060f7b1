package director

import (
	"errors"
	"fmt"
	"math"

	"github.com/ivlev/leet2video/internal/episode"
	"github.com/ivlev/leet2video/internal/scene"
)

var ErrNoScenes = errors.New("no scenes to plan")

// Director renders scenes and lays them out on one timeline
type Director struct {
	Version string
}

// NewDirector creates a Director that writes version 1.0 scenarios
func NewDirector() *Director {
	return &Director{Version: "1.0"}
}

// Plan renders every scene in order and places them back to back starting at 0
func (d *Director) Plan(data episode.Data, scenes []scene.Scene) (*Scenario, error) {
	if len(scenes) == 0 {
		return nil, ErrNoScenes
	}

	scenario := &Scenario{Version: d.Version}
	if id, ok := data.ID(); ok {
		scenario.EpisodeID = id
	}

	currentTime := 0.0
	for i, s := range scenes {
		meta, err := scene.Render(s)
		if err != nil {
			return nil, fmt.Errorf("scene %d (%s): %w", i+1, scene.KindOf(s), err)
		}

		b := scene.BaseOf(s)
		objects := make([]map[string]any, 0, meta.Mobjects)
		for _, m := range b.Mobjects() {
			obj := m.Serialize()
			obj["kind"] = m.Kind()
			objects = append(objects, obj)
		}

		scenario.Scenes = append(scenario.Scenes, SceneEntry{
			ID:         i + 1,
			Kind:       scene.KindOf(s),
			Start:      currentTime,
			Duration:   meta.Duration,
			Mobjects:   meta.Mobjects,
			Objects:    objects,
			Animations: b.Animations(),
			Narration:  b.Narration(),
		})
		currentTime += meta.Duration
	}

	scenario.TotalDuration = currentTime
	return scenario, nil
}

// Scale stretches scene durations so the scenario lasts target seconds,
// aligned to whole frames. Starts are recomputed; order is kept.
func Scale(scenario *Scenario, target float64, fps int) {
	if scenario == nil || len(scenario.Scenes) == 0 || target <= 0 || scenario.TotalDuration <= 0 {
		return
	}

	factor := target / scenario.TotalDuration
	currentTime := 0.0
	for i := range scenario.Scenes {
		duration := scenario.Scenes[i].Duration * factor
		if fps > 0 {
			// Выравниваем по кадрам
			duration = math.Round(duration*float64(fps)) / float64(fps)
		}
		scenario.Scenes[i].Start = currentTime
		scenario.Scenes[i].Duration = duration
		currentTime += duration
	}
	scenario.TotalDuration = currentTime
}
