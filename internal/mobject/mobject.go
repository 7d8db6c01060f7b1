package mobject

// Point is a 2D position on the scene canvas
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Animation describes an intended animation. It is never scheduled or played here.
type Animation struct {
	Type     string  `json:"type" yaml:"type"`
	Duration float64 `json:"duration" yaml:"duration"`
	Mobject  string  `json:"mobject" yaml:"mobject"`
}

// Renderable is anything a scene can hold
type Renderable interface {
	Kind() string
	Serialize() map[string]any
	Animate(action string, duration float64) Animation
}

// Mobject is the base visual object: position, color, size and visibility
type Mobject struct {
	Position Point
	Color    string
	Size     float64
	Visible  bool
}

type Option func(*Mobject)

func WithPosition(x, y float64) Option {
	return func(m *Mobject) { m.Position = Point{X: x, Y: y} }
}

func WithColor(color string) Option {
	return func(m *Mobject) { m.Color = color }
}

func WithSize(size float64) Option {
	return func(m *Mobject) { m.Size = size }
}

// New creates a Mobject at the origin, white, size 1.0 and visible
func New(opts ...Option) *Mobject {
	m := base(opts)
	return &m
}

func base(opts []Option) Mobject {
	m := Mobject{
		Color:   "white",
		Size:    1.0,
		Visible: true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m *Mobject) Kind() string {
	return "Mobject"
}

func (m *Mobject) Serialize() map[string]any {
	return m.fields()
}

func (m *Mobject) Animate(action string, duration float64) Animation {
	return animation(m.Kind(), action, duration)
}

func (m *Mobject) fields() map[string]any {
	return map[string]any{
		"position": []float64{m.Position.X, m.Position.Y},
		"color":    m.Color,
		"size":     m.Size,
		"visible":  m.Visible,
	}
}

func animation(kind, action string, duration float64) Animation {
	return Animation{Type: action, Duration: duration, Mobject: kind}
}

// DataItem is a single value shown inside a data structure
type DataItem struct {
	Mobject
	Value any
}

func NewDataItem(value any, opts ...Option) *DataItem {
	return &DataItem{Mobject: base(opts), Value: value}
}

func (d *DataItem) Kind() string {
	return "DataItem"
}

func (d *DataItem) Serialize() map[string]any {
	data := d.fields()
	data["value"] = d.Value
	return data
}

func (d *DataItem) Animate(action string, duration float64) Animation {
	return animation(d.Kind(), action, duration)
}
