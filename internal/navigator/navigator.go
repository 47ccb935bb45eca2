// Package navigator implements the drill-down view stack of the materials
// panel. An empty stack is the root view.
package navigator

// Kind is the type of a view on the stack.
type Kind int

const (
	KindCourses Kind = iota
	KindLessons
	KindFiles
	KindCategories
	KindAITutoring
)

func (k Kind) String() string {
	switch k {
	case KindCourses:
		return "courses"
	case KindLessons:
		return "lessons"
	case KindFiles:
		return "files"
	case KindCategories:
		return "categories"
	case KindAITutoring:
		return "ai-tutoring"
	default:
		return "unknown"
	}
}

// View describes one level of navigation depth. Views are values and are
// never mutated once pushed.
type View struct {
	Title string
	Kind  Kind
	ID    string
}

// Stack is a LIFO of views. The zero value is an empty stack at root.
type Stack struct {
	views []View
}

// New returns an empty stack.
func New() *Stack {
	return &Stack{}
}

// Push enters a deeper view.
func (s *Stack) Push(v View) {
	s.views = append(s.views, v)
}

// Pop returns to the parent view. Popping at root is a caller error and
// reports false without changing the stack.
func (s *Stack) Pop() bool {
	if len(s.views) == 0 {
		return false
	}
	s.views = s.views[:len(s.views)-1]
	return true
}

// Reset clears the stack back to root.
func (s *Stack) Reset() {
	s.views = nil
}

// Current returns the top view. The boolean is false at root.
func (s *Stack) Current() (View, bool) {
	if len(s.views) == 0 {
		return View{}, false
	}
	return s.views[len(s.views)-1], true
}

// IsRoot reports whether the stack is empty.
func (s *Stack) IsRoot() bool {
	return len(s.views) == 0
}

// Depth returns the number of views on the stack.
func (s *Stack) Depth() int {
	return len(s.views)
}

// Views returns a copy of the stack, bottom first.
func (s *Stack) Views() []View {
	return append([]View(nil), s.views...)
}

// Breadcrumb returns the view titles from bottom to top.
func (s *Stack) Breadcrumb() []string {
	out := make([]string, len(s.views))
	for i, v := range s.views {
		out[i] = v.Title
	}
	return out
}
