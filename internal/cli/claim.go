package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/daemon"
	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

func init() {
	rootCmd.AddCommand(claimCmd)
}

var claimCmd = &cobra.Command{
	Use:   "claim <learner-id> <kind> <period-key>",
	Short: "Claim a one-time reward (daily, streak, section)",
	Long: `Claim a one-time reward. Examples:

  kopalnia claim <id> daily 2026-08-31
  kopalnia claim <id> streak streak-7
  kopalnia claim <id> section 2026-08-31::matematyka`,
	Args: cobra.ExactArgs(3),
	RunE: runClaim,
}

func runClaim(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.Engine.ClaimReward(args[0], domain.RewardKind(args[1]), args[2])
	if err != nil {
		return err
	}

	if !res.Granted {
		fmt.Println("Already claimed — nothing granted.")
		return nil
	}

	fmt.Printf("Granted: %d XP", res.Amount.XP)
	if res.Amount.Gems > 0 {
		fmt.Printf(" + %d gems", res.Amount.Gems)
	}
	fmt.Println()
	if res.Badge != "" {
		fmt.Printf("  Badge: %s\n", res.Badge)
	}
	if res.Freeze {
		fmt.Println("  Bonus: +1 streak freeze")
	}
	return nil
}
