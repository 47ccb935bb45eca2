package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vvai/classdesk/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "classdesk",
	Short: "Course materials and AI tutoring in the terminal",
	Long:  "classdesk is a teacher's desk in the terminal: today's course plans, lesson materials, personal files and an AI tutoring chat per lesson.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil, true)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite journal file (overrides CLASSDESK_DB env var)")
	pf.String("catalog", "", "Path to a catalog YAML file (default: built-in catalog)")
	pf.String("oracle", "static", "Reply oracle: static or llm")
	pf.Duration("reply-delay", 0, "Delay before the tutor replies (default 800ms, CLASSDESK_REPLY_DELAY)")
	pf.Bool("debug", false, "Log at debug level")

	rootCmd.AddCommand(tutorCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CLASSDESK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
