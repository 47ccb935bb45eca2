package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return c
}

func TestDefaultCatalog(t *testing.T) {
	c := loadDefault(t)

	assert.Equal(t, "v1.0.0", c.Version())
	assert.Equal(t, "l1", c.DefaultLessonID())

	disciplines := c.Disciplines()
	require.Len(t, disciplines, 4)
	assert.Equal(t, "d1", disciplines[0].ID)
	assert.Equal(t, "数学", disciplines[0].Name)

	courses := c.Courses("d1")
	require.Len(t, courses, 2)
	assert.Equal(t, "大宝的奥数特训班", courses[0].Name)
	assert.Empty(t, c.Courses("d4"))

	lessons := c.Lessons("mc1")
	require.Len(t, lessons, 2)
	assert.Equal(t, "第1课：函数单调性", lessons[0].Name)
	assert.Empty(t, c.Lessons("mc2"))
}

func TestMaterialsLookup(t *testing.T) {
	c := loadDefault(t)

	list, ok := c.Materials("l1")
	require.True(t, ok)
	require.Len(t, list, 3)
	assert.Equal(t, []Category{CategoryPPT, CategoryWord, CategoryVideo},
		[]Category{list[0].Category, list[1].Category, list[2].Category})

	_, ok = c.Materials("l2")
	assert.False(t, ok)
}

func TestLessonLookup(t *testing.T) {
	c := loadDefault(t)

	l, ok := c.Lesson("l2")
	require.True(t, ok)
	assert.Equal(t, "第2课：几何图形的平移", l.Name)

	_, ok = c.Lesson("nope")
	assert.False(t, ok)
}

func TestMaterialsOrDefault(t *testing.T) {
	c := loadDefault(t)

	tests := []struct {
		name     string
		lessonID string
		wantRes  Resolution
		wantLen  int
	}{
		{"known lesson", "l1", Resolved, 3},
		{"unknown lesson", "l2", Defaulted, 3},
		{"empty id", "", Defaulted, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, res := c.MaterialsOrDefault(tt.lessonID)
			assert.Equal(t, tt.wantRes, res)
			assert.Len(t, list, tt.wantLen)
			assert.Equal(t, "m1", list[0].ID)
		})
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := loadDefault(t)

	list, _ := c.Materials("l1")
	list[0].Title = "changed"
	again, _ := c.Materials("l1")
	assert.NotEqual(t, "changed", again[0].Title)

	files := c.PersonalFiles()
	files[0].Children[0].Name = "changed"
	assert.NotEqual(t, "changed", c.PersonalFiles()[0].Children[0].Name)

	plans := c.Plans()
	require.NotNil(t, plans[0].Shortcut)
	plans[0].Shortcut.Title = "changed"
	assert.Equal(t, "第1课：巧解一元一次方程", c.Plans()[0].Shortcut.Title)
}

func TestPersonalFilesTree(t *testing.T) {
	c := loadDefault(t)

	files := c.PersonalFiles()
	require.Len(t, files, 3)
	assert.True(t, files[0].IsFolder())
	assert.False(t, files[1].IsFolder())
	require.Len(t, files[0].Children, 1)
	assert.Equal(t, CategoryPPT, files[0].Children[0].Category)
}

func TestParseRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "missing version",
			doc:  "materials: {l1: [{id: m1, type: PPT}]}",
			want: ErrUnsupportedVersion,
		},
		{
			name: "future major",
			doc:  "version: v2.0.0\nmaterials: {l1: [{id: m1, type: PPT}]}",
			want: ErrUnsupportedVersion,
		},
		{
			name: "unknown category",
			doc:  "version: v1.2.0\nmaterials: {l1: [{id: m1, type: Slides}]}",
			want: ErrUnknownCategory,
		},
		{
			name: "unknown file category",
			doc:  "version: v1.0.0\nmaterials: {l1: [{id: m1, type: PPT}]}\npersonal_files: [{id: f, kind: file, type: Zip}]",
			want: ErrUnknownCategory,
		},
		{
			name: "no default materials",
			doc:  "version: v1.0.0\ndefault_lesson: l9\nmaterials: {l1: [{id: m1, type: PPT}]}",
			want: ErrMissingDefault,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseDefaultsLessonToL1(t *testing.T) {
	c, err := Parse([]byte("version: v1.3.1\nmaterials: {l1: [{id: m1, type: Audio}]}"))
	require.NoError(t, err)
	assert.Equal(t, "l1", c.DefaultLessonID())
	assert.Equal(t, "v1.3.1", c.Version())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: v1.0.0\nmaterials: {l1: [{id: x1, type: Image}]}"), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	list, res := c.MaterialsOrDefault("nope")
	assert.Equal(t, Defaulted, res)
	assert.Equal(t, "x1", list[0].ID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPlanStatusLabel(t *testing.T) {
	assert.Equal(t, "待开始", PlanPending.Label())
	assert.Equal(t, "进行中", PlanOngoing.Label())
	assert.Equal(t, "已完成", PlanCompleted.Label())
}
