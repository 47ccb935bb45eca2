// Package panel owns the state of the materials panel: which tab and
// discipline are shown, the drill-down stack, the personal-files
// breadcrumbs, and the tutoring session reached from a lesson.
package panel

import (
	"github.com/vvai/classdesk/internal/catalog"
	"github.com/vvai/classdesk/internal/explorer"
	"github.com/vvai/classdesk/internal/navigator"
	"github.com/vvai/classdesk/internal/tutoring"
)

// Tab selects the top-level source of materials.
type Tab int

const (
	TabCourses Tab = iota
	TabPersonal
)

func (t Tab) String() string {
	if t == TabPersonal {
		return "个人资料"
	}
	return "课程资料"
}

// State is the materials panel. It is driven from a single goroutine.
type State struct {
	catalog  *catalog.Catalog
	nav      *navigator.Stack
	explorer *explorer.Explorer
	session  *tutoring.Session

	open          bool
	tab           Tab
	discipline    string
	defaultLesson string
}

// New creates a closed panel on the course tab with the first discipline
// selected.
func New(cat *catalog.Catalog, session *tutoring.Session) *State {
	s := &State{
		catalog:       cat,
		nav:           navigator.New(),
		explorer:      explorer.New(cat.PersonalFiles()),
		session:       session,
		defaultLesson: cat.DefaultLessonID(),
	}
	if ds := cat.Disciplines(); len(ds) > 0 {
		s.discipline = ds[0].ID
	}
	return s
}

// Open shows the panel. A non-nil initial view becomes the only entry on
// the stack; a tutoring view starts its session immediately.
func (s *State) Open(initial *navigator.View) {
	s.open = true
	s.nav.Reset()
	s.explorer.Reset()
	if initial != nil {
		s.Push(*initial)
	}
}

// Close hides the panel. Replies still in flight are dropped.
func (s *State) Close() {
	s.open = false
	s.session.Invalidate()
}

func (s *State) IsOpen() bool { return s.open }

// Push drills down one level. Entering a tutoring view initialises the
// session for that lesson.
func (s *State) Push(v navigator.View) {
	if v.Kind == navigator.KindAITutoring {
		if v.ID == "" {
			v.ID = s.defaultLesson
		}
		s.session.Init(v.ID, v.Title)
	}
	s.nav.Push(v)
}

// Pop goes back one level. It reports false at root.
func (s *State) Pop() bool {
	return s.nav.Pop()
}

// Reset returns to root, clears the personal-files breadcrumbs and
// drops the tutoring session along with any reply still in flight.
func (s *State) Reset() {
	s.nav.Reset()
	s.explorer.Reset()
	s.session.Reset()
}

func (s *State) SelectTab(t Tab) {
	s.tab = t
	s.Reset()
}

func (s *State) SelectDiscipline(id string) {
	s.discipline = id
	s.Reset()
}

func (s *State) Tab() Tab                   { return s.tab }
func (s *State) Discipline() string         { return s.discipline }
func (s *State) Depth() int                 { return s.nav.Depth() }
func (s *State) Breadcrumb() []string       { return s.nav.Breadcrumb() }
func (s *State) Session() *tutoring.Session { return s.session }

// Current returns the top view; false means root.
func (s *State) Current() (navigator.View, bool) {
	return s.nav.Current()
}

// InTutoring reports whether the tutoring chat is on top.
func (s *State) InTutoring() bool {
	v, ok := s.nav.Current()
	return ok && v.Kind == navigator.KindAITutoring
}

// Header returns the panel title and its English subtitle.
func (s *State) Header() (title, subtitle string) {
	if s.InTutoring() {
		return "AI 智能辅导", "AI Tutoring Mode"
	}
	return "我的资料", "My Materials"
}

func (s *State) Disciplines() []catalog.Discipline {
	return s.catalog.Disciplines()
}

// Courses lists the courses of the selected discipline.
func (s *State) Courses() []catalog.Folder {
	return s.catalog.Courses(s.discipline)
}

// Lessons lists the lessons of the course on top of the stack.
func (s *State) Lessons() []catalog.Folder {
	v, ok := s.nav.Current()
	if !ok || v.Kind != navigator.KindLessons {
		return nil
	}
	return s.catalog.Lessons(v.ID)
}

// Files lists the materials of the lesson on top of the stack. Unknown
// lessons list nothing.
func (s *State) Files() []catalog.Material {
	v, ok := s.nav.Current()
	if !ok || v.Kind != navigator.KindFiles {
		return nil
	}
	materials, _ := s.catalog.Materials(v.ID)
	return materials
}

// PersonalItems lists the current personal folder.
func (s *State) PersonalItems() []catalog.FileItem {
	return s.explorer.List()
}

func (s *State) PersonalPath() []catalog.FileItem {
	return s.explorer.Path()
}

// OpenFolder enters a personal folder.
func (s *State) OpenFolder(item catalog.FileItem) error {
	return s.explorer.NavigateInto(item)
}

// JumpTo truncates the personal breadcrumbs; -1 returns to the root.
func (s *State) JumpTo(index int) {
	s.explorer.JumpTo(index)
}

// OpenCourse drills into a course's lessons.
func (s *State) OpenCourse(course catalog.Folder) {
	s.Push(navigator.View{Title: course.Name, Kind: navigator.KindLessons, ID: course.ID})
}

// OpenLesson drills into a lesson's materials.
func (s *State) OpenLesson(lesson catalog.Folder) {
	s.Push(navigator.View{Title: lesson.Name, Kind: navigator.KindFiles, ID: lesson.ID})
}

// EnterTutoring opens the tutoring chat for the lesson whose files are
// shown. It reports false anywhere else.
func (s *State) EnterTutoring() bool {
	v, ok := s.nav.Current()
	if !ok || v.Kind != navigator.KindFiles {
		return false
	}
	s.Push(navigator.View{Title: v.Title, Kind: navigator.KindAITutoring, ID: v.ID})
	return true
}

// TutoringView builds the deep-link descriptor for a lesson.
func TutoringView(lessonID, title string) *navigator.View {
	return &navigator.View{Title: title, Kind: navigator.KindAITutoring, ID: lessonID}
}
