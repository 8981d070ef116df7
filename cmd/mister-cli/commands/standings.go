package commands

import (
	"fmt"
	"os"

	"misterstats-backend/cmd/mister-cli/utils"
	"misterstats-backend/lib/moneyutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(standingsCmd)
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the league standings.",
	Run: func(cmd *cobra.Command, args []string) {
		service := createService()

		entries, err := service.GetStandings(cmd.Context())
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"#", "Name", "Points", "Diff", "Players", "Team value"})
		for _, e := range entries {
			t.AppendRow(table.Row{
				e.Position,
				e.Name,
				e.Points,
				e.PointsDiff,
				e.PlayerCount,
				moneyutil.FormatEuros(e.TeamValue),
			})
		}
		t.Render()
	},
}
