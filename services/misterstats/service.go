// Package misterstats composes the upstream session client, the markup
// extractors and the normalizers into the operations the presentation
// layer calls. Transport, envelope and markup-shape failures all
// surface here as error results; nothing below this boundary panics
// into caller code.
package misterstats

import (
	"context"
	"fmt"
	"log/slog"

	"misterstats-backend/lib/htmlutil"
	"misterstats-backend/lib/scrapers/mister"

	"go.opentelemetry.io/otel/codes"
)

type Service struct {
	client *mister.Client
}

func NewService(client *mister.Client) Service {
	return Service{client: client}
}

func (s Service) markupDocument(payload mister.Payload) (htmlutil.Node, error) {
	if payload.Kind == mister.PayloadFailure {
		return nil, payload.Err
	}
	if payload.Kind != mister.PayloadMarkup {
		return nil, fmt.Errorf("%w: expected markup, got json", mister.ErrUnavailable)
	}
	doc, err := htmlutil.Parse(payload.Markup)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", mister.ErrUnavailable, err)
	}
	return doc, nil
}

// GetTeam fetches the team page and extracts the roster together with
// its footer summary.
func (s Service) GetTeam(ctx context.Context) ([]mister.Player, mister.RosterSummary, error) {
	ctx, span := tracer.Start(ctx, "service:GetTeam")
	defer span.End()

	doc, err := s.markupDocument(s.client.Team(ctx))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch team page")
		return nil, mister.RosterSummary{}, err
	}

	players, summary := mister.ExtractRoster(doc)
	slog.DebugContext(ctx, "extracted roster", "players", len(players))
	return players, summary, nil
}

// GetLineup fetches the team page and resolves the formation lines
// against the roster extracted from the same document.
func (s Service) GetLineup(ctx context.Context) (mister.Formation, error) {
	ctx, span := tracer.Start(ctx, "service:GetLineup")
	defer span.End()

	doc, err := s.markupDocument(s.client.Team(ctx))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch team page")
		return nil, err
	}

	roster, _ := mister.ExtractRoster(doc)
	return mister.ExtractFormation(doc, roster), nil
}

func (s Service) GetStandings(ctx context.Context) ([]mister.StandingEntry, error) {
	ctx, span := tracer.Start(ctx, "service:GetStandings")
	defer span.End()

	doc, err := s.markupDocument(s.client.Standings(ctx))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch standings page")
		return nil, err
	}

	entries := mister.ExtractStandings(doc)
	slog.DebugContext(ctx, "extracted standings", "entries", len(entries))
	return entries, nil
}

func (s Service) GetPlayerDetail(ctx context.Context, id string) (mister.PlayerDetail, error) {
	ctx, span := tracer.Start(ctx, "service:GetPlayerDetail")
	defer span.End()

	detail, err := s.client.PlayerDetail(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch player detail")
		return mister.PlayerDetail{}, err
	}
	return detail, nil
}

func (s Service) GetUserDetail(ctx context.Context, id, slug string) (mister.UserDetail, error) {
	ctx, span := tracer.Start(ctx, "service:GetUserDetail")
	defer span.End()

	detail, err := s.client.UserDetail(ctx, id, slug)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch user detail")
		return mister.UserDetail{}, err
	}
	return detail, nil
}

type balanceData struct {
	Balance mister.OptionalInt `json:"balance"`
}

// GetBalance returns the account balance. Unknown is reported as an
// error rather than a zero balance.
func (s Service) GetBalance(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "service:GetBalance")
	defer span.End()

	var data balanceData
	err := mister.DecodeEnvelope(s.client.Balance(ctx), &data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch balance")
		return 0, err
	}
	if !data.Balance.Valid {
		return 0, fmt.Errorf("%w: balance missing from payload", mister.ErrUnavailable)
	}
	return data.Balance.Value, nil
}

// GetValueHistory returns the dated market values of a player in
// upstream order. The error reports chart points whose dates failed to
// parse; the returned points are still usable alongside it.
func (s Service) GetValueHistory(ctx context.Context, id string) ([]mister.ValueHistoryPoint, error) {
	ctx, span := tracer.Start(ctx, "service:GetValueHistory")
	defer span.End()

	detail, err := s.client.PlayerDetail(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch player detail")
		return nil, err
	}

	points, err := mister.ValueHistory(detail)
	if err != nil {
		span.RecordError(err)
		slog.WarnContext(ctx, "skipped unparsable chart points", "player", id, "err", err)
	}
	return points, err
}
