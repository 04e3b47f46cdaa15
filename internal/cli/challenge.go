package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/daemon"
)

func init() {
	challengeCmd.Flags().StringVar(&challengeLearner, "learner", "", "Learner ID for a per-learner pick")
	rootCmd.AddCommand(challengeCmd)
}

var challengeLearner string

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Show today's challenge task",
	RunE:  runChallenge,
}

func runChallenge(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	task, err := d.Engine.TodaysChallenge(challengeLearner)
	if err != nil {
		return err
	}

	fmt.Printf("Today's challenge: %s\n", task.ID)
	fmt.Printf("  Corridor: %s\n", task.Corridor)
	fmt.Printf("  %s\n", task.Question)
	fmt.Printf("  Reward: %d XP", task.XP)
	if task.Gems > 0 {
		fmt.Printf(" + %d gems", task.Gems)
	}
	fmt.Println()
	return nil
}
