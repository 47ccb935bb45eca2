package catalog

// Category identifies the kind of a learning resource.
type Category string

const (
	CategoryPPT       Category = "PPT"
	CategoryWord      Category = "Word"
	CategoryTestPaper Category = "TestPaper"
	CategoryHomework  Category = "Homework"
	CategoryVideo     Category = "Video"
	CategoryAudio     Category = "Audio"
	CategoryImage     Category = "Image"
	CategoryOther     Category = "Other"
)

// Categories is the full set of valid material categories.
var Categories = []Category{
	CategoryPPT,
	CategoryWord,
	CategoryTestPaper,
	CategoryHomework,
	CategoryVideo,
	CategoryAudio,
	CategoryImage,
	CategoryOther,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Discipline is a top-level subject shown in the course tab rail.
type Discipline struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

// Folder is a course or lesson row with the number of items it holds.
type Folder struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// Material is a learning resource attached to a lesson.
type Material struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Date     string   `yaml:"date"`
	Size     string   `yaml:"size"`
	Category Category `yaml:"type"`
	Label    string   `yaml:"label"`
}

// FileKind distinguishes folders from files in the personal tree.
type FileKind string

const (
	FileKindFolder FileKind = "folder"
	FileKindFile   FileKind = "file"
)

// FileItem is a node of the personal-files tree.
type FileItem struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	Kind     FileKind   `yaml:"kind"`
	Category Category   `yaml:"type,omitempty"`
	Size     string     `yaml:"size,omitempty"`
	Date     string     `yaml:"date"`
	Children []FileItem `yaml:"children,omitempty"`
}

// IsFolder reports whether the item can be navigated into.
func (f FileItem) IsFolder() bool {
	return f.Kind == FileKindFolder
}

// PlanStatus is the fulfilment state of a course plan.
type PlanStatus string

const (
	PlanPending   PlanStatus = "pending"
	PlanOngoing   PlanStatus = "ongoing"
	PlanCompleted PlanStatus = "completed"
)

// Label returns the dashboard badge text for the status.
func (s PlanStatus) Label() string {
	switch s {
	case PlanOngoing:
		return "进行中"
	case PlanCompleted:
		return "已完成"
	default:
		return "待开始"
	}
}

// Shortcut deep-links a plan card straight into a tutoring session.
type Shortcut struct {
	LessonID string `yaml:"lesson_id"`
	Title    string `yaml:"title"`
}

// CoursePlan is a scheduled class shown on the dashboard.
type CoursePlan struct {
	ID            string     `yaml:"id"`
	Date          string     `yaml:"date"`
	Time          string     `yaml:"time"`
	EndTime       string     `yaml:"end_time"`
	Title         string     `yaml:"title"`
	Status        PlanStatus `yaml:"status"`
	Subject       string     `yaml:"subject"`
	Student       string     `yaml:"student"`
	Location      string     `yaml:"location"`
	MaterialCount int        `yaml:"material_count"`
	HomeworkCount int        `yaml:"homework_count"`
	Shortcut      *Shortcut  `yaml:"shortcut,omitempty"`
}

// Resolution tags whether a lookup found the requested key or fell back to
// the default.
type Resolution int

const (
	Resolved Resolution = iota
	Defaulted
)

func (r Resolution) String() string {
	if r == Defaulted {
		return "defaulted"
	}
	return "resolved"
}
