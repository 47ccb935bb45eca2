package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvai/classdesk/internal/notify"
	"github.com/vvai/classdesk/internal/tutoring"
)

var askCmd = &cobra.Command{
	Use:   "ask <text>",
	Short: "Ask the tutor one question about a lesson and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lesson, _ := cmd.Flags().GetString("lesson")
		only, _ := cmd.Flags().GetStringSlice("select")

		d, err := loadDeps(cmd, true)
		if err != nil {
			return err
		}
		defer d.Close()

		rec := &notify.Recorder{}
		session := d.session(rec)
		session.Init(lesson, lessonTitle(d.catalog, lesson))

		if len(only) > 0 {
			keepSelected(session, only)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		reply, err := askOnce(ctx, session, strings.Join(args, " "))
		for _, m := range rec.Messages {
			fmt.Fprintln(os.Stderr, m)
		}
		if err != nil {
			return err
		}
		fmt.Println(reply)
		return nil
	},
}

// keepSelected deselects every material not named in ids.
func keepSelected(session *tutoring.Session, ids []string) {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	for _, id := range session.SelectedIDs() {
		if !keep[id] {
			session.ToggleSelection(id)
		}
	}
}

// askOnce sends text and waits for the reply. The start phrase goes
// through the same selection guard as the start button.
func askOnce(ctx context.Context, session *tutoring.Session, text string) (string, error) {
	var (
		pending tutoring.PendingReply
		ok      bool
	)
	if strings.TrimSpace(text) == tutoring.StartStudyPhrase {
		pending, ok = session.RequestStartStudy()
		if !ok {
			return "", errors.New("nothing to study: no materials selected")
		}
	} else {
		pending, ok = session.SendMessage(text)
		if !ok {
			return "", errors.New("nothing to ask: message is blank")
		}
	}

	reply := session.ResolveReply(ctx, pending)
	session.DeliverReply(pending, reply)
	return reply, nil
}

func init() {
	askCmd.Flags().StringP("lesson", "l", "l1", "Lesson id")
	askCmd.Flags().StringSlice("select", nil, "Material ids to keep selected (default: all)")
}
