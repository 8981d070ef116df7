package commands

import (
	"fmt"
	"os"
	"sort"

	"misterstats-backend/cmd/mister-cli/utils"
	"misterstats-backend/lib/moneyutil"
	"misterstats-backend/services/misterstats"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var variationParallel *int

func init() {
	variationParallel = variationCmd.Flags().IntP(
		"parallel", "p", 0,
		"fetch player details with up to N concurrent requests (0 = sequential)",
	)
	rootCmd.AddCommand(variationCmd)
}

var variationCmd = &cobra.Command{
	Use:   "variation",
	Short: "Show the daily market value change of every rostered player.",
	Run: func(cmd *cobra.Command, args []string) {
		service := createService()
		ctx := cmd.Context()

		players, _, err := service.GetTeam(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		var changes map[string]int
		if *variationParallel > 0 {
			changes = service.GetDailyVariationConcurrent(ctx, players, *variationParallel)
		} else {
			changes = service.GetDailyVariation(ctx, players)
		}

		byId := map[string]string{}
		for _, p := range players {
			byId[p.Id] = p.Name
		}
		ids := make([]string, 0, len(changes))
		for id := range changes {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			return changes[ids[i]] > changes[ids[j]]
		})

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Name", "Change"})
		for _, id := range ids {
			t.AppendRow(table.Row{byId[id], moneyutil.FormatSigned(changes[id])})
		}
		t.AppendFooter(table.Row{
			"Total", moneyutil.FormatSigned(misterstats.ComputeTotalVariation(changes)),
		})
		t.Render()

		if len(changes) < len(players) {
			fmt.Fprintf(os.Stderr, "%d of %d players had no daily change available\n",
				len(players)-len(changes), len(players))
		}
	},
}
