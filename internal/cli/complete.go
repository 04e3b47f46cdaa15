package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/daemon"
	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

func init() {
	rootCmd.AddCommand(completeCmd)
}

var completeCmd = &cobra.Command{
	Use:   "complete <learner-id> <task-id>",
	Short: "Mark a task complete and pay its reward",
	Args:  cobra.ExactArgs(2),
	RunE:  runComplete,
}

func runComplete(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p, err := d.Engine.CompleteTask(args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Done! %s is now level %d with %d XP (streak: %d days)\n",
		p.Name, domain.LevelForXP(p.XP), p.XP, p.Streak)
	return nil
}
