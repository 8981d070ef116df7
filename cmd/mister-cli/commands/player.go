package commands

import (
	"fmt"
	"os"

	"misterstats-backend/cmd/mister-cli/utils"
	"misterstats-backend/lib/moneyutil"
	"misterstats-backend/lib/scrapers/mister"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playerCmd)
}

func formatOptional(v mister.OptionalInt) string {
	if !v.Valid {
		return mister.NotAvailable
	}
	return moneyutil.FormatEuros(v.Value)
}

var playerCmd = &cobra.Command{
	Use:   "player <id>",
	Short: "Show market and points detail for a player.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := createService()

		detail, err := service.GetPlayerDetail(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		fmt.Printf("%s (%s)\n", detail.Player.Name, detail.Player.Team.Name)
		fmt.Printf("market value: %s\n", formatOptional(detail.Player.Value))
		fmt.Printf("clause:       %s\n", formatOptional(detail.Player.Clause.Value))

		if len(detail.Values) > 0 {
			t := utils.NewTable()
			t.AppendHeader(table.Row{"Period", "Change"})
			for _, v := range detail.Values {
				t.AppendRow(table.Row{v.Period, moneyutil.FormatSigned(int(v.Change))})
			}
			t.Render()
		}

		if len(detail.PointsHistory) > 0 {
			t := utils.NewTable()
			t.AppendHeader(table.Row{"Season", "Points", "Avg"})
			for _, h := range detail.PointsHistory {
				t.AppendRow(table.Row{h.Season, h.Points, fmt.Sprintf("%.2f", h.Average)})
			}
			t.Render()
		}

		history, err := mister.ValueHistory(detail)
		if err != nil {
			fmt.Fprintln(os.Stderr, "some chart points were skipped:", err.Error())
		}
		if len(history) > 0 {
			mister.SortValueHistory(history)
			first := history[0]
			last := history[len(history)-1]
			fmt.Printf(
				"value history: %d points, %s (%s) -> %s (%s)\n",
				len(history),
				moneyutil.FormatEuros(int(first.Value)), first.Date.Format("2006-01-02"),
				moneyutil.FormatEuros(int(last.Value)), last.Date.Format("2006-01-02"),
			)
		}
	},
}
