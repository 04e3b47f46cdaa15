package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/daemon"
)

func init() {
	topCmd.Flags().BoolVar(&topClasses, "classes", false, "Show the class leaderboard instead")
	rootCmd.AddCommand(topCmd)
}

var topClasses bool

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the hall of fame or class leaderboard",
	RunE:  runTop,
}

func runTop(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	if topClasses {
		entries, err := d.Engine.Leaderboard()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No classes yet.")
			return nil
		}
		fmt.Fprintln(w, "CLASS\tTOTAL XP\tLEARNERS")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%d\t%d\n", e.GroupID, e.TotalXP, e.Learners)
		}
		return w.Flush()
	}

	rows, err := d.Engine.TopLearners()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No learners yet.")
		return nil
	}
	fmt.Fprintln(w, "NAME\tLEVEL\tXP\tSTREAK")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", r.Name, r.Level, r.XP, r.Streak)
	}
	return w.Flush()
}
