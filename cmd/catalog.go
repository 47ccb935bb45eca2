package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vvai/classdesk/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print disciplines, courses, lessons and materials",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		printCatalog(cat)
		return nil
	},
}

func printCatalog(cat *catalog.Catalog) {
	heading := color.New(color.FgCyan, color.Bold)
	course := color.New(color.FgYellow)
	dim := color.New(color.Faint)

	dim.Printf("catalog %s, default lesson %s\n", cat.Version(), cat.DefaultLessonID())
	for _, d := range cat.Disciplines() {
		fmt.Println()
		heading.Printf("%s %s", d.Icon, d.Name)
		dim.Printf("  (%s)\n", d.ID)

		courses := cat.Courses(d.ID)
		if len(courses) == 0 {
			dim.Println("  (no courses)")
		}
		for _, c := range courses {
			course.Printf("  %s", c.Name)
			dim.Printf("  %s · %d 个课时\n", c.ID, c.Count)

			for _, l := range cat.Lessons(c.ID) {
				fmt.Printf("    %s", l.Name)
				dim.Printf("  %s · %d 份资料\n", l.ID, l.Count)

				materials, _ := cat.Materials(l.ID)
				for _, m := range materials {
					categoryColor(m.Category).Printf("      ● ")
					fmt.Printf("%s", m.Title)
					dim.Printf("  %s · %s · %s\n", m.Label, m.Size, m.Date)
				}
			}
		}
	}
}

func categoryColor(c catalog.Category) *color.Color {
	switch c {
	case catalog.CategoryPPT:
		return color.New(color.FgRed)
	case catalog.CategoryWord:
		return color.New(color.FgBlue)
	case catalog.CategoryTestPaper:
		return color.New(color.FgMagenta)
	case catalog.CategoryHomework:
		return color.New(color.FgGreen)
	case catalog.CategoryVideo, catalog.CategoryAudio:
		return color.New(color.FgCyan)
	case catalog.CategoryImage:
		return color.New(color.FgHiMagenta)
	default:
		return color.New(color.FgWhite)
	}
}
