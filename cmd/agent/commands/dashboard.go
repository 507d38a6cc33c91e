package commands

import (
	"fmt"

	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the role-shaped dashboard",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	d, err := a.client.Dashboard(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", d.User.Name, d.User.Role)

	if d.User.Role == models.RoleStudent {
		if d.User.StudentProfile != nil {
			fmt.Printf("Quota: %d/%d  Streak: %d  Badges: %v\n",
				d.User.Quota.Completed, d.User.Quota.Target, d.User.Streaks, d.User.Badges)
		}
		fmt.Printf("Cases: %d\n", len(d.Cases))
		fmt.Println("Leaderboard:")
		for i, entry := range d.Leaderboard {
			fmt.Printf("  %d. %s: %d completed (streak %d)\n", i+1, entry.Name, entry.Completed, entry.Streaks)
		}
		return nil
	}

	fmt.Println("Students:")
	for _, s := range d.Students {
		fmt.Printf("  %s: %d case(s), %d%% of quota\n", s.Name, s.Cases, s.Progress)
	}
	return nil
}
