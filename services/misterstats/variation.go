package misterstats

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"misterstats-backend/lib/scrapers/mister"

	"github.com/sourcegraph/conc/pool"
)

// the upstream labels its one-day change bucket in spanish
func isDailyPeriod(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "1 día", "1 day":
		return true
	}
	return false
}

func dailyChange(detail mister.PlayerDetail) (int, bool) {
	for _, v := range detail.Values {
		if isDailyPeriod(v.Period) {
			return int(v.Change), true
		}
	}
	return 0, false
}

// GetDailyVariation fetches the detail of every player sequentially
// and collects each one's one-day value change. Players whose fetch
// fails (or whose payload has no daily bucket) are simply absent from
// the result. One round-trip per player, this is the dominant latency
// cost of the whole service.
func (s Service) GetDailyVariation(ctx context.Context, players []mister.Player) map[string]int {
	ctx, span := tracer.Start(ctx, "service:GetDailyVariation")
	defer span.End()

	out := make(map[string]int, len(players))
	for _, player := range players {
		detail, err := s.client.PlayerDetail(ctx, player.Id)
		if err != nil {
			slog.WarnContext(ctx, "skipping player in daily variation", "player", player.Id, "err", err)
			continue
		}
		change, ok := dailyChange(detail)
		if !ok {
			continue
		}
		out[player.Id] = change
	}
	return out
}

// GetDailyVariationConcurrent is GetDailyVariation with a bounded
// fan-out: at most `limit` detail fetches in flight at once. Failure
// semantics are identical, failed players are omitted.
func (s Service) GetDailyVariationConcurrent(ctx context.Context, players []mister.Player, limit int) map[string]int {
	ctx, span := tracer.Start(ctx, "service:GetDailyVariationConcurrent")
	defer span.End()

	if limit < 1 {
		limit = 1
	}

	out := make(map[string]int, len(players))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(limit)
	for _, player := range players {
		player := player
		p.Go(func() {
			detail, err := s.client.PlayerDetail(ctx, player.Id)
			if err != nil {
				slog.WarnContext(ctx, "skipping player in daily variation", "player", player.Id, "err", err)
				return
			}
			change, ok := dailyChange(detail)
			if !ok {
				return
			}
			mu.Lock()
			out[player.Id] = change
			mu.Unlock()
		})
	}
	p.Wait()

	return out
}

// ComputeTotalVariation sums a variation mapping; an empty mapping
// sums to 0.
func ComputeTotalVariation(variations map[string]int) int {
	total := 0
	for _, v := range variations {
		total += v
	}
	return total
}
