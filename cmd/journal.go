package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vvai/classdesk/internal/store"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect journaled tutoring and LLM events",
}

// openJournal opens the store for read-only inspection.
func openJournal(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent tutoring events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		session, _ := cmd.Flags().GetString("session")

		s, err := openJournal(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.Journal().QueryTutoringEvents(context.Background(),
			store.QueryOpts{Limit: limit, SessionID: session})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No tutoring events found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-10s  %-18s  %-10s  %-4s  %s\n",
			"Seq", "Timestamp", "Lesson", "Kind", "Role", "Gen", "Content")
		fmt.Println(strings.Repeat("─", 100))

		for _, e := range events {
			kind := fmt.Sprintf("%-18s", e.Kind)
			if e.Kind == store.KindReplyDiscarded {
				kind = color.YellowString("%-18s", e.Kind)
			}
			fmt.Printf("%-5d  %-19s  %-10s  %s  %-10s  %-4d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.LessonID, 10),
				kind,
				e.Role,
				e.Generation,
				truncate(oneLine(e.Content), 40),
			)
		}
		return nil
	},
}

var journalSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recent tutoring session ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openJournal(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ids, err := s.Journal().SessionIDs(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(ids) == 0 {
			fmt.Println("No tutoring sessions found.")
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

var journalLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "List recent LLM request events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openJournal(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.Journal().QueryLLMEvents(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No LLM events found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-14s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 100))

		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := color.GreenString("✓")
			if !e.Success {
				ok = color.RedString("✗")
			}
			fmt.Printf("%-5d  %-19s  %-14s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var journalViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openJournal(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.Journal().GetLLMEvent(context.Background(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		sep := strings.Repeat("─", 60)

		fmt.Printf("ID:        %d\n", e.ID)
		fmt.Printf("Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Provider:  %s\n", e.Provider)
		fmt.Printf("Model:     %s\n", e.Model)
		fmt.Printf("Purpose:   %s\n", e.Purpose)
		fmt.Printf("Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Printf("Latency:   %dms\n", e.LatencyMs)
		fmt.Printf("Success:   %v\n", e.Success)
		if e.ErrorMessage != "" {
			color.Red("Error:     %s", e.ErrorMessage)
		}

		for _, part := range []struct{ name, body string }{
			{"REQUEST", e.RequestBody},
			{"RESPONSE", e.ResponseBody},
		} {
			fmt.Println()
			fmt.Println(sep)
			color.Cyan(part.name)
			fmt.Println(sep)
			if part.body != "" {
				fmt.Println(part.body)
			} else {
				fmt.Println("(not captured)")
			}
		}
		return nil
	},
}

var journalStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openJournal(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		stats, err := s.Journal().LLMUsageByPurpose(context.Background())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Println("Usage by Purpose")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-16s  %6s  %10s  %10s  %10s  %8s\n",
			"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
		fmt.Println(strings.Repeat("─", 72))

		var totalCalls, totalIn, totalOut int
		for _, st := range stats {
			total := st.InputTokens + st.OutputTokens
			fmt.Printf("%-16s  %6d  %10d  %10d  %10d  %8d\n",
				st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, total, st.AvgLatencyMs)
			totalCalls += st.Calls
			totalIn += st.InputTokens
			totalOut += st.OutputTokens
		}

		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-16s  %6d  %10d  %10d  %10d\n",
			"TOTAL", totalCalls, totalIn, totalOut, totalIn+totalOut)
		return nil
	},
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func init() {
	journalListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	journalListCmd.Flags().StringP("session", "s", "", "Only events of this session id")
	journalSessionsCmd.Flags().IntP("limit", "n", 10, "Number of sessions to show")
	journalLLMCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	journalLLMCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. tutoring)")

	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalSessionsCmd)
	journalCmd.AddCommand(journalLLMCmd)
	journalCmd.AddCommand(journalViewCmd)
	journalCmd.AddCommand(journalStatsCmd)
}
