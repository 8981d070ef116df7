package commands

import (
	"fmt"
	"os"

	"misterstats-backend/lib/moneyutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(balanceCmd)
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the manager's current budget.",
	Run: func(cmd *cobra.Command, args []string) {
		service := createService()

		balance, err := service.GetBalance(cmd.Context())
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Println(moneyutil.FormatEuros(balance))
	},
}
