package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vvai/classdesk/internal/catalog"
	"github.com/vvai/classdesk/internal/panel"
)

var tutorCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Open the AI tutoring chat for a lesson",
	RunE: func(cmd *cobra.Command, args []string) error {
		lesson, _ := cmd.Flags().GetString("lesson")
		title, _ := cmd.Flags().GetString("title")

		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		if title == "" {
			title = lessonTitle(cat, lesson)
		}
		return runApp(cmd, panel.TutoringView(lesson, title), false)
	},
}

// lessonTitle names a lesson for display, falling back to its id.
func lessonTitle(cat *catalog.Catalog, lessonID string) string {
	if l, ok := cat.Lesson(lessonID); ok {
		return l.Name
	}
	if lessonID == "" {
		if l, ok := cat.Lesson(cat.DefaultLessonID()); ok {
			return l.Name
		}
	}
	return lessonID
}

func init() {
	tutorCmd.Flags().StringP("lesson", "l", "l1", "Lesson id")
	tutorCmd.Flags().StringP("title", "t", "", "Lesson title shown in the greeting (default: catalog name)")
}
