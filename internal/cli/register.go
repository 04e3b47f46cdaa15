package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/daemon"
)

func init() {
	rootCmd.AddCommand(registerCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register <name>",
	Short: "Register a new learner",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p, err := d.Engine.Register(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Registered %s\n", p.Name)
	fmt.Printf("  ID: %s\n", p.ID)
	return nil
}
