package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"misterstats-backend/lib/configutil"
	"misterstats-backend/lib/restyutil"
	"misterstats-backend/lib/scrapers/mister"
	"misterstats-backend/lib/serviceutil"
	"misterstats-backend/lib/telemetry"
	"misterstats-backend/services/misterstats"

	"github.com/spf13/cobra"
)

const defaultBaseUrl = "https://mister.mundodeportivo.com"

var verbose *bool
var httpDump *string

var rootCmd = &cobra.Command{
	Use:   "mister-cli",
	Short: "mister-cli inspects a Mister fantasy league through its undocumented web endpoints.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
	httpDump = rootCmd.PersistentFlags().String("http-dump", "", "Directory to dump raw upstream exchanges to.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Config is read from config.json5 next to the binary's cwd. The
// session material is lifted from a logged-in browser, the cli never
// performs a login of its own.
type Config struct {
	BaseUrl string               `json:"base_url"`
	Session mister.SessionConfig `json:"session"`
}

func createService() misterstats.Service {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.BaseUrl == "" {
		cfg.BaseUrl = defaultBaseUrl
	}

	if *httpDump != "" {
		mister.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(*httpDump))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	client, err := mister.NewClient(ctx, mister.ClientOptions{
		BaseUrl: cfg.BaseUrl,
		Session: cfg.Session,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize upstream client", err)
	}
	return misterstats.NewService(client)
}
