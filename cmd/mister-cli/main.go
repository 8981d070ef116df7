package main

import (
	"context"
	"log/slog"

	"misterstats-backend/cmd/mister-cli/commands"
	"misterstats-backend/lib/serviceutil"
	"misterstats-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "mister-cli")
	if err == nil {
		defer func() {
			err := tel.Shutdown(context.Background())
			if err != nil {
				slog.Warn("failed to shut down telemetry", "err", err)
			}
		}()
		telemetry.InstrumentPerfStats(ctx)
	}

	commands.ExecuteContext(ctx)
}
