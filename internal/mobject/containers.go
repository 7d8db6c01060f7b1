package mobject

import (
	"github.com/gammazero/deque"
)

// Reads on an empty container return (nil, false). A stored nil comes back as (nil, true).

// Stack is a LIFO container object
type Stack struct {
	Mobject
	items []any
}

// NewStack copies items, so callers can reuse the slice
func NewStack(items []any, opts ...Option) *Stack {
	s := &Stack{Mobject: base(opts), items: make([]any, 0, len(items))}
	s.items = append(s.items, items...)
	return s
}

func (s *Stack) Push(item any) {
	s.items = append(s.items, item)
}

func (s *Stack) Pop() (any, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	last := len(s.items) - 1
	item := s.items[last]
	s.items[last] = nil
	s.items = s.items[:last]
	return item, true
}

func (s *Stack) Peek() (any, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[len(s.items)-1], true
}

func (s *Stack) Len() int {
	return len(s.items)
}

// Items returns a copy, bottom to top
func (s *Stack) Items() []any {
	out := make([]any, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Stack) Kind() string {
	return "Stack"
}

func (s *Stack) Serialize() map[string]any {
	data := s.fields()
	data["items"] = s.Items()
	return data
}

func (s *Stack) Animate(action string, duration float64) Animation {
	return animation(s.Kind(), action, duration)
}

// Queue is a FIFO container object
type Queue struct {
	Mobject
	items deque.Deque[any]
}

func NewQueue(items []any, opts ...Option) *Queue {
	q := &Queue{Mobject: base(opts)}
	for _, item := range items {
		q.items.PushBack(item)
	}
	return q
}

func (q *Queue) Enqueue(item any) {
	q.items.PushBack(item)
}

func (q *Queue) Dequeue() (any, bool) {
	if q.items.Len() == 0 {
		return nil, false
	}
	return q.items.PopFront(), true
}

// Peek reads the front of the queue
func (q *Queue) Peek() (any, bool) {
	if q.items.Len() == 0 {
		return nil, false
	}
	return q.items.Front(), true
}

func (q *Queue) Len() int {
	return q.items.Len()
}

// Items returns a copy, front to back
func (q *Queue) Items() []any {
	return snapshot(&q.items)
}

func (q *Queue) Kind() string {
	return "Queue"
}

func (q *Queue) Serialize() map[string]any {
	data := q.fields()
	data["items"] = q.Items()
	return data
}

func (q *Queue) Animate(action string, duration float64) Animation {
	return animation(q.Kind(), action, duration)
}

// Deque is a double-ended container object
type Deque struct {
	Mobject
	items deque.Deque[any]
}

func NewDeque(items []any, opts ...Option) *Deque {
	d := &Deque{Mobject: base(opts)}
	for _, item := range items {
		d.items.PushBack(item)
	}
	return d
}

func (d *Deque) PushFront(item any) {
	d.items.PushFront(item)
}

func (d *Deque) PushBack(item any) {
	d.items.PushBack(item)
}

func (d *Deque) PopFront() (any, bool) {
	if d.items.Len() == 0 {
		return nil, false
	}
	return d.items.PopFront(), true
}

func (d *Deque) PopBack() (any, bool) {
	if d.items.Len() == 0 {
		return nil, false
	}
	return d.items.PopBack(), true
}

func (d *Deque) PeekFront() (any, bool) {
	if d.items.Len() == 0 {
		return nil, false
	}
	return d.items.Front(), true
}

func (d *Deque) PeekBack() (any, bool) {
	if d.items.Len() == 0 {
		return nil, false
	}
	return d.items.Back(), true
}

func (d *Deque) Len() int {
	return d.items.Len()
}

// Items returns a copy, front to back
func (d *Deque) Items() []any {
	return snapshot(&d.items)
}

func (d *Deque) Kind() string {
	return "Deque"
}

func (d *Deque) Serialize() map[string]any {
	data := d.fields()
	data["items"] = d.Items()
	return data
}

func (d *Deque) Animate(action string, duration float64) Animation {
	return animation(d.Kind(), action, duration)
}

func snapshot(q *deque.Deque[any]) []any {
	out := make([]any, q.Len())
	for i := range out {
		out[i] = q.At(i)
	}
	return out
}
