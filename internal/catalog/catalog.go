package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var embeddedCatalog []byte

// SupportedMajor is the catalog document major version this build reads.
const SupportedMajor = "v1"

var (
	ErrUnsupportedVersion = errors.New("unsupported catalog version")
	ErrUnknownCategory    = errors.New("unknown material category")
	ErrMissingDefault     = errors.New("default lesson has no materials")
)

// document mirrors the on-disk YAML layout.
type document struct {
	Version       string                `yaml:"version"`
	DefaultLesson string                `yaml:"default_lesson"`
	Disciplines   []Discipline          `yaml:"disciplines"`
	Courses       map[string][]Folder   `yaml:"courses"`
	Lessons       map[string][]Folder   `yaml:"lessons"`
	Materials     map[string][]Material `yaml:"materials"`
	PersonalFiles []FileItem            `yaml:"personal_files"`
	Plans         []CoursePlan          `yaml:"plans"`
}

// Catalog is a read-only view over the course, lesson, material and
// personal-file tables. All accessors return copies.
type Catalog struct {
	doc document
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// LoadFile reads and validates a catalog document from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %q: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validate(&doc); err != nil {
		return nil, err
	}
	return &Catalog{doc: doc}, nil
}

func validate(doc *document) error {
	if !semver.IsValid(doc.Version) || semver.Major(doc.Version) != SupportedMajor {
		return fmt.Errorf("%w: %q (want %s.x.y)", ErrUnsupportedVersion, doc.Version, SupportedMajor)
	}

	for lessonID, list := range doc.Materials {
		for _, m := range list {
			if !m.Category.Valid() {
				return fmt.Errorf("%w: %q on material %s of lesson %s", ErrUnknownCategory, m.Category, m.ID, lessonID)
			}
		}
	}
	if err := validateFiles(doc.PersonalFiles); err != nil {
		return err
	}

	if doc.DefaultLesson == "" {
		doc.DefaultLesson = "l1"
	}
	if len(doc.Materials[doc.DefaultLesson]) == 0 {
		return fmt.Errorf("%w: %q", ErrMissingDefault, doc.DefaultLesson)
	}
	return nil
}

func validateFiles(items []FileItem) error {
	for _, it := range items {
		switch it.Kind {
		case FileKindFolder:
			if err := validateFiles(it.Children); err != nil {
				return err
			}
		case FileKindFile:
			if it.Category != "" && !it.Category.Valid() {
				return fmt.Errorf("%w: %q on file %s", ErrUnknownCategory, it.Category, it.ID)
			}
		default:
			return fmt.Errorf("file %s: unknown kind %q", it.ID, it.Kind)
		}
	}
	return nil
}

// Version returns the canonical semantic version of the loaded document.
func (c *Catalog) Version() string {
	return semver.Canonical(c.doc.Version)
}

// DefaultLessonID is the lesson substituted when a lookup misses.
func (c *Catalog) DefaultLessonID() string {
	return c.doc.DefaultLesson
}

// Disciplines returns the subject rail in display order.
func (c *Catalog) Disciplines() []Discipline {
	return append([]Discipline(nil), c.doc.Disciplines...)
}

// Courses returns the course folders of a discipline, or nil.
func (c *Catalog) Courses(disciplineID string) []Folder {
	return append([]Folder(nil), c.doc.Courses[disciplineID]...)
}

// Lessons returns the lesson folders of a course, or nil.
func (c *Catalog) Lessons(courseID string) []Folder {
	return append([]Folder(nil), c.doc.Lessons[courseID]...)
}

// Lesson finds a lesson folder by id across every course.
func (c *Catalog) Lesson(lessonID string) (Folder, bool) {
	for _, lessons := range c.doc.Lessons {
		for _, l := range lessons {
			if l.ID == lessonID {
				return l, true
			}
		}
	}
	return Folder{}, false
}

// Materials returns the materials of a lesson and whether the lesson exists.
func (c *Catalog) Materials(lessonID string) ([]Material, bool) {
	list, ok := c.doc.Materials[lessonID]
	if !ok {
		return nil, false
	}
	return append([]Material(nil), list...), true
}

// MaterialsOrDefault returns the lesson's materials, substituting the
// default lesson's materials when lessonID is unknown.
func (c *Catalog) MaterialsOrDefault(lessonID string) ([]Material, Resolution) {
	if list, ok := c.Materials(lessonID); ok {
		return list, Resolved
	}
	list, _ := c.Materials(c.doc.DefaultLesson)
	return list, Defaulted
}

// PersonalFiles returns a deep copy of the personal-files tree.
func (c *Catalog) PersonalFiles() []FileItem {
	return cloneFiles(c.doc.PersonalFiles)
}

// Plans returns the dashboard course plans.
func (c *Catalog) Plans() []CoursePlan {
	out := make([]CoursePlan, len(c.doc.Plans))
	for i, p := range c.doc.Plans {
		if p.Shortcut != nil {
			sc := *p.Shortcut
			p.Shortcut = &sc
		}
		out[i] = p
	}
	return out
}

func cloneFiles(items []FileItem) []FileItem {
	if items == nil {
		return nil
	}
	out := make([]FileItem, len(items))
	for i, it := range items {
		it.Children = cloneFiles(it.Children)
		out[i] = it
	}
	return out
}
