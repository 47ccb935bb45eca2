package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vvai/classdesk/internal/catalog"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Print the personal files tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		printFiles(cat.PersonalFiles(), 0)
		return nil
	},
}

func printFiles(items []catalog.FileItem, depth int) {
	folder := color.New(color.FgBlue, color.Bold)
	dim := color.New(color.Faint)
	indent := strings.Repeat("  ", depth)

	for _, it := range items {
		if it.IsFolder() {
			folder.Printf("%s▸ %s/", indent, it.Name)
			dim.Printf("  %s\n", it.Date)
			printFiles(it.Children, depth+1)
			continue
		}
		fmt.Printf("%s  ", indent)
		categoryColor(it.Category).Printf("● ")
		fmt.Print(it.Name)
		dim.Printf("  %s · %s\n", it.Size, it.Date)
	}
}
