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
	rootCmd.AddCommand(teamCmd)
}

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Show your team roster with positions, values and points.",
	Run: func(cmd *cobra.Command, args []string) {
		service := createService()

		players, summary, err := service.GetTeam(cmd.Context())
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Id", "Name", "Position", "Value", "Points", "Avg"})
		for _, p := range players {
			t.AppendRow(table.Row{
				p.Id,
				p.Name,
				p.Position.String(),
				moneyutil.FormatEuros(p.Value),
				p.Points,
				p.Average,
			})
		}
		t.AppendFooter(table.Row{"", summary.PlayerCount, "", summary.TeamValue, summary.Balance, ""})
		t.Render()
	},
}
