package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/leet2video/internal/episode"
	"github.com/ivlev/leet2video/internal/mobject"
)

// unfinishedScene forgets to override Construct
type unfinishedScene struct {
	*Base
}

// countingScene adds n objects with duration d
type countingScene struct {
	*Base
	n int
	d float64
}

func (s *countingScene) Construct() error {
	for i := 0; i < s.n; i++ {
		s.Add(mobject.New())
	}
	s.SetDuration(s.d)
	return nil
}

func TestRenderReturnsMetadata(t *testing.T) {
	s := &countingScene{Base: NewBase(episode.Data{"id": "two-sum"}, nil), n: 3, d: 7.5}

	meta, err := Render(s)
	require.NoError(t, err)

	assert.Equal(t, 3, meta.Mobjects)
	assert.Equal(t, 7.5, meta.Duration)
	require.NotNil(t, meta.EpisodeID)
	assert.Equal(t, "two-sum", *meta.EpisodeID)
}

func TestRenderWithoutEpisodeID(t *testing.T) {
	s := &countingScene{Base: NewBase(episode.Data{"title": "No id"}, nil), n: 1, d: 1}

	meta, err := Render(s)
	require.NoError(t, err)
	assert.Nil(t, meta.EpisodeID)
}

func TestRenderNotImplemented(t *testing.T) {
	s := &unfinishedScene{Base: NewBase(episode.Data{"id": "x"}, nil)}

	_, err := Render(s)
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.Empty(t, s.Mobjects())
}

func TestDurationBeforeConstruct(t *testing.T) {
	s, err := New("stack", episode.Data{"id": "x"}, nil)
	require.NoError(t, err)

	b := BaseOf(s)
	assert.Equal(t, 0.0, b.Duration())
	assert.Empty(t, b.Mobjects())
	assert.NotNil(t, b.Theme)
}

func TestRenderTwiceDoesNotDuplicate(t *testing.T) {
	s, err := New("pseudo_leetcode", episode.Data{"id": "x"}, nil)
	require.NoError(t, err)

	first, err := Render(s)
	require.NoError(t, err)
	second, err := Render(s)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, BaseOf(s).Mobjects(), 4)
}

func TestConcreteScenes(t *testing.T) {
	tests := []struct {
		kind     string
		mobjects int
		duration float64
		items    []any
	}{
		{"stack", 1, 3.0, []any{1, 2, 3}},
		{"queue", 1, 4.0, []any{1, 2, 3}},
		{"deque", 1, 5.0, []any{1, 2, 3}},
		{"narrated_stack", 1, 5.0, []any{1, 2}},
		{"pseudo_leetcode", 4, 10.0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			s, err := New(tt.kind, episode.Data{"id": "ep-1"}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, KindOf(s))

			meta, err := Render(s)
			require.NoError(t, err)
			assert.Equal(t, tt.mobjects, meta.Mobjects)
			assert.Equal(t, tt.duration, meta.Duration)
			require.NotNil(t, meta.EpisodeID)
			assert.Equal(t, "ep-1", *meta.EpisodeID)

			if tt.items != nil {
				data := BaseOf(s).Mobjects()[0].Serialize()
				assert.Equal(t, tt.items, data["items"])
			}
		})
	}
}

func TestPseudoLeetCodeLayout(t *testing.T) {
	s, err := New("pseudo_leetcode", episode.Data{}, nil)
	require.NoError(t, err)
	_, err = Render(s)
	require.NoError(t, err)

	want := []struct {
		pos  mobject.Point
		size float64
	}{
		{mobject.Point{X: 0, Y: 0}, 50},
		{mobject.Point{X: 100, Y: 100}, 400},
		{mobject.Point{X: 600, Y: 100}, 400},
		{mobject.Point{X: 0, Y: 600}, 100},
	}
	objs := BaseOf(s).Mobjects()
	require.Len(t, objs, len(want))
	for i, w := range want {
		m, ok := objs[i].(*mobject.Mobject)
		require.True(t, ok)
		assert.Equal(t, w.pos, m.Position)
		assert.Equal(t, w.size, m.Size)
	}
}

func TestNarratedStackQueuesNarration(t *testing.T) {
	s, err := New("narrated_stack", episode.Data{"id": "x"}, nil)
	require.NoError(t, err)

	_, err = Render(s)
	require.NoError(t, err)
	_, err = Render(s)
	require.NoError(t, err)

	assert.Equal(t, []string{NarrationLine}, BaseOf(s).Narration())
}

func TestThemeColor(t *testing.T) {
	s, err := New("stack", episode.Data{}, Theme{"color": "#4caf50"})
	require.NoError(t, err)
	_, err = Render(s)
	require.NoError(t, err)

	assert.Equal(t, "#4caf50", BaseOf(s).Mobjects()[0].Serialize()["color"])
}

func TestUnknownKind(t *testing.T) {
	_, err := New("heap", episode.Data{}, nil)
	assert.ErrorIs(t, err, ErrUnknownScene)
	assert.Equal(t, []string{"deque", "narrated_stack", "pseudo_leetcode", "queue", "stack"}, Kinds())
}
