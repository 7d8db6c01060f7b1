package scene

import (
	"github.com/ivlev/leet2video/internal/mobject"
)

// StackScene shows a stack preloaded with [1, 2, 3]
type StackScene struct {
	*Base
}

func (s *StackScene) Construct() error {
	stack := mobject.NewStack([]any{1, 2, 3}, s.themed()...)
	s.Add(stack)
	s.Play(stack.Animate("push", 1.0))
	s.Play(stack.Animate("pop", 1.0))
	s.SetDuration(3.0)
	return nil
}

// QueueScene shows a queue preloaded with [1, 2, 3]
type QueueScene struct {
	*Base
}

func (s *QueueScene) Construct() error {
	queue := mobject.NewQueue([]any{1, 2, 3}, s.themed()...)
	s.Add(queue)
	s.Play(queue.Animate("enqueue", 1.0))
	s.Play(queue.Animate("dequeue", 1.0))
	s.SetDuration(4.0)
	return nil
}

// DequeScene shows a deque preloaded with [1, 2, 3]
type DequeScene struct {
	*Base
}

func (s *DequeScene) Construct() error {
	deque := mobject.NewDeque([]any{1, 2, 3}, s.themed()...)
	s.Add(deque)
	s.Play(deque.Animate("push_front", 1.0))
	s.Play(deque.Animate("pop_back", 1.0))
	s.SetDuration(5.0)
	return nil
}

// NarrationLine is spoken over the narrated stack scene
const NarrationLine = "Let's push 3 onto the stack and then pop it."

// NarratedStackScene is the stack scene with a voiceover line
type NarratedStackScene struct {
	*Base
}

func (s *NarratedStackScene) Construct() error {
	stack := mobject.NewStack([]any{1, 2}, s.themed()...)
	s.Add(stack)
	s.Play(stack.Animate("push", 1.0))
	s.Play(stack.Animate("pop", 1.0))
	s.SetDuration(5.0)
	s.Narrate(NarrationLine)
	return nil
}

// PseudoLeetCodeScene lays out a LeetCode-like interface: header, description, editor, console
type PseudoLeetCodeScene struct {
	*Base
}

func (s *PseudoLeetCodeScene) Construct() error {
	header := mobject.New(mobject.WithPosition(0, 0), mobject.WithSize(50))
	description := mobject.New(mobject.WithPosition(100, 100), mobject.WithSize(400))
	editor := mobject.New(mobject.WithPosition(600, 100), mobject.WithSize(400))
	console := mobject.New(mobject.WithPosition(0, 600), mobject.WithSize(100))

	s.Add(header)
	s.Add(description)
	s.Add(editor)
	s.Add(console)

	s.Play(description.Animate("reveal_text", 2.0))
	s.Play(editor.Animate("type_code", 4.0))
	s.SetDuration(10.0)
	return nil
}

// themed applies the theme's "color" entry to container objects
func (b *Base) themed() []mobject.Option {
	if color, ok := b.Theme["color"].(string); ok && color != "" {
		return []mobject.Option{mobject.WithColor(color)}
	}
	return nil
}
