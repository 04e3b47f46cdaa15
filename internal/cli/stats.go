package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/daemon"
	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats <learner-id>",
	Short: "Show a learner's progress, streak and unlocks",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p, err := d.Engine.Profile(args[0])
	if err != nil {
		return err
	}
	unlocks, err := d.Engine.UnlockedState(args[0])
	if err != nil {
		return err
	}
	lootboxes, err := d.Engine.ClaimCount(args[0], domain.RewardStreak)
	if err != nil {
		return err
	}

	level := domain.LevelForXP(p.XP)
	fmt.Printf("%s\n", p.Name)
	fmt.Printf("  Level:   %d (%d XP)\n", level, p.XP)
	fmt.Printf("  Gems:    %d\n", p.Gems)
	fmt.Printf("  Streak:  %d days (freezes: %d, lootboxes: %d)\n", p.Streak, p.Freezes, lootboxes)
	fmt.Printf("  Tasks:   %d completed\n", len(p.CompletedTasks))
	if p.ClassCode != "" {
		fmt.Printf("  Class:   %s\n", p.ClassCode)
	}

	fmt.Printf("  Corridors: %d unlocked\n", len(unlocks.Corridors))
	for _, id := range unlocks.Corridors {
		fmt.Printf("    - %s\n", id)
	}
	fmt.Printf("  Supermoce: %d unlocked\n", len(unlocks.Supermoce))
	for _, id := range unlocks.Supermoce {
		fmt.Printf("    - %s\n", id)
	}

	if len(p.Badges) > 0 {
		badges := make([]string, 0, len(p.Badges))
		for b := range p.Badges {
			badges = append(badges, b)
		}
		sort.Strings(badges)
		fmt.Printf("  Badges: %v\n", badges)
	}
	return nil
}
