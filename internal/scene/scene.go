package scene

import (
	"errors"
	"fmt"

	"github.com/ivlev/leet2video/internal/episode"
	"github.com/ivlev/leet2video/internal/mobject"
)

// ErrNotImplemented is returned by a scene that does not override Construct
var ErrNotImplemented = errors.New("scene: Construct must be implemented by the concrete scene")

// Theme holds optional styling overrides (colors, fonts) for a scene
type Theme map[string]any

// Scene is a declarative description of what appears on screen and for how long.
// Concrete scenes embed *Base and override Construct.
type Scene interface {
	Construct() error
	base() *Base
}

// Metadata is the snapshot returned by Render
type Metadata struct {
	Mobjects  int     `json:"mobjects" yaml:"mobjects"`
	Duration  float64 `json:"duration" yaml:"duration"`
	EpisodeID *string `json:"episode_id" yaml:"episode_id"`
}

// Base holds the state shared by all scenes
type Base struct {
	Episode episode.Data
	Theme   Theme

	mobjects   []mobject.Renderable
	animations []mobject.Animation
	narration  []string
	duration   float64
}

func NewBase(data episode.Data, theme Theme) *Base {
	if theme == nil {
		theme = Theme{}
	}
	return &Base{Episode: data, Theme: theme}
}

func (b *Base) base() *Base {
	return b
}

// Construct fails on the base scene
func (b *Base) Construct() error {
	return ErrNotImplemented
}

// Add appends a mobject. Insertion order is build and z order.
func (b *Base) Add(m mobject.Renderable) {
	b.mobjects = append(b.mobjects, m)
}

// Play records an animation intent on the scene
func (b *Base) Play(a mobject.Animation) {
	b.animations = append(b.animations, a)
}

// Narrate queues a narration line. Synthesis happens outside the scene.
func (b *Base) Narrate(text string) {
	b.narration = append(b.narration, text)
}

func (b *Base) SetDuration(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	b.duration = seconds
}

// Mobjects returns a copy of the scene's objects in insertion order
func (b *Base) Mobjects() []mobject.Renderable {
	out := make([]mobject.Renderable, len(b.mobjects))
	copy(out, b.mobjects)
	return out
}

func (b *Base) Animations() []mobject.Animation {
	out := make([]mobject.Animation, len(b.animations))
	copy(out, b.animations)
	return out
}

func (b *Base) Narration() []string {
	out := make([]string, len(b.narration))
	copy(out, b.narration)
	return out
}

func (b *Base) Duration() float64 {
	return b.duration
}

func (b *Base) EpisodeID() (string, bool) {
	return b.Episode.ID()
}

func (b *Base) reset() {
	b.mobjects = nil
	b.animations = nil
	b.narration = nil
	b.duration = 0
}

// Render runs Construct on a fresh object list and returns the metadata snapshot.
// Rendering the same scene twice yields the same snapshot.
func Render(s Scene) (Metadata, error) {
	b := s.base()
	if b == nil {
		return Metadata{}, fmt.Errorf("scene %T has no base", s)
	}
	b.reset()

	if err := s.Construct(); err != nil {
		b.reset()
		return Metadata{}, fmt.Errorf("construct %T: %w", s, err)
	}

	meta := Metadata{
		Mobjects: len(b.mobjects),
		Duration: b.duration,
	}
	if id, ok := b.EpisodeID(); ok {
		meta.EpisodeID = &id
	}
	return meta, nil
}

// BaseOf exposes the shared state of a scene, for callers that need its objects after Render
func BaseOf(s Scene) *Base {
	return s.base()
}
