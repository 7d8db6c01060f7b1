package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ivlev/leet2video/internal/episode"
)

var ErrUnknownScene = errors.New("unknown scene kind")

var constructors = map[string]func(*Base) Scene{
	"stack":           func(b *Base) Scene { return &StackScene{Base: b} },
	"queue":           func(b *Base) Scene { return &QueueScene{Base: b} },
	"deque":           func(b *Base) Scene { return &DequeScene{Base: b} },
	"narrated_stack":  func(b *Base) Scene { return &NarratedStackScene{Base: b} },
	"pseudo_leetcode": func(b *Base) Scene { return &PseudoLeetCodeScene{Base: b} },
}

// New creates a scene of the given kind
func New(kind string, data episode.Data, theme Theme) (Scene, error) {
	ctor, ok := constructors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, kind)
	}
	return ctor(NewBase(data, theme)), nil
}

// Kinds lists the registered scene kinds in sorted order
func Kinds() []string {
	kinds := make([]string, 0, len(constructors))
	for k := range constructors {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// KindOf returns the registry name of a scene, or its Go type for unregistered scenes
func KindOf(s Scene) string {
	switch s.(type) {
	case *StackScene:
		return "stack"
	case *QueueScene:
		return "queue"
	case *DequeScene:
		return "deque"
	case *NarratedStackScene:
		return "narrated_stack"
	case *PseudoLeetCodeScene:
		return "pseudo_leetcode"
	default:
		return fmt.Sprintf("%T", s)
	}
}
