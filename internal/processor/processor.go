package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/broadcast"
	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/standings"
	"golang.org/x/sync/errgroup"
)

// New creates a new Processor.
func New(store Store, publisher broadcast.Publisher, notifier Notifier, metrics metrics.Metrics) *Processor {
	return &Processor{
		store:     store,
		publisher: publisher,
		notifier:  notifier,
		metrics:   metrics,
		cards:     make(map[string]cardCount),
	}
}

// Snapshot loads the four league collections concurrently.
func (p *Processor) Snapshot(ctx context.Context) (league.Snapshot, error) {
	var snap league.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Teams, err = p.store.GetAllTeams(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Players, err = p.store.GetAllPlayers(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Matches, err = p.store.GetAllMatches(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Events, err = p.store.GetAllEvents(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return league.Snapshot{}, fmt.Errorf("failed to load league snapshot: %w", err)
	}
	return snap, nil
}

// Recalculate re-derives every player's statistics and every team's record from
// scratch, writes them back and publishes teams, matches, standings and players.
func (p *Processor) Recalculate(ctx context.Context, reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	startTime := time.Now()
	p.metrics.IncRecalculations()
	log.Debug("Starting standings recalculation", "reason", reason)

	err := p.recalculate(ctx)
	p.metrics.ObserveRecalculationDuration(time.Since(startTime).Seconds())
	if err != nil {
		p.metrics.IncRecalculationFailures()
		return err
	}
	log.Info("Standings recalculated", "reason", reason, "duration_ms", time.Since(startTime).Milliseconds())
	return nil
}

func (p *Processor) recalculate(ctx context.Context) error {
	snap, err := p.Snapshot(ctx)
	if err != nil {
		return err
	}

	p.warnManualCardEdits(snap.Players)
	res := standings.Compute(snap)

	if err := p.store.ReplacePlayerStats(ctx, res.PlayerStats); err != nil {
		return fmt.Errorf("failed to write player stats: %w", err)
	}
	if err := p.store.ReplaceTeamRecords(ctx, res.TeamRecords); err != nil {
		return fmt.Errorf("failed to write team records: %w", err)
	}

	teams := make([]league.Team, len(snap.Teams))
	for i, team := range snap.Teams {
		team.TeamRecord = res.TeamRecords[i].TeamRecord
		teams[i] = team
	}

	players := make([]league.Player, len(snap.Players))
	cards := make(map[string]cardCount, len(snap.Players))
	for i, pl := range snap.Players {
		pl.Stats = res.PlayerStats[i].PlayerStats
		players[i] = pl
		cards[pl.ID] = cardCount{yellow: pl.Stats.YellowCards, red: pl.Stats.RedCards}
	}
	p.cards = cards

	return errors.Join(
		p.publish(broadcast.EventTeams, teams),
		p.publish(broadcast.EventMatches, snap.Matches),
		p.publish(broadcast.EventStandings, res.Table),
		p.publish(broadcast.EventPlayers, players),
	)
}

// warnManualCardEdits logs players whose stored card counts differ from what the
// last pass wrote. Those counts were edited directly and are about to be
// replaced by the counts derived from match events.
func (p *Processor) warnManualCardEdits(players []league.Player) {
	for _, pl := range players {
		last, ok := p.cards[pl.ID]
		if !ok {
			continue
		}
		if last.yellow != pl.Stats.YellowCards || last.red != pl.Stats.RedCards {
			log.Warn("Manually edited card counts will be replaced by match events",
				"playerID", pl.ID,
				"player", pl.Name,
				"yellowCards", pl.Stats.YellowCards,
				"redCards", pl.Stats.RedCards)
		}
	}
}

// Refresh runs a recalculation pass after a write. A failed pass is logged and
// counted, never returned: the write that triggered it has already succeeded.
func (p *Processor) Refresh(ctx context.Context, reason string) {
	if err := p.Recalculate(context.WithoutCancel(ctx), reason); err != nil {
		log.Error("Standings recalculation failed", "error", err, "reason", reason)
	}
}

// Alert publishes an alert to viewers and forwards it to the notifier. When a
// match has ended the final table is posted as well.
func (p *Processor) Alert(ctx context.Context, alert broadcast.Alert, dryRun bool) {
	p.metrics.IncAlerts(string(alert.Type))
	if err := p.publish(broadcast.EventAlert, alert); err != nil {
		log.Error("Failed to publish alert", "error", err, "matchID", alert.MatchID)
	}
	if err := p.notifier.SendAlert(alert, dryRun); err != nil {
		log.Error("Failed to send alert notification", "error", err, "matchID", alert.MatchID)
	}
	if alert.Type != broadcast.AlertMatchEnd {
		return
	}

	ctx = context.WithoutCancel(ctx)
	teams, err := p.store.GetAllTeams(ctx)
	if err != nil {
		log.Error("Failed to load teams for final table", "error", err)
		return
	}
	matches, err := p.store.GetAllMatches(ctx)
	if err != nil {
		log.Error("Failed to load matches for final table", "error", err)
		return
	}
	if err := p.notifier.SendStandings(standings.FinalTable(teams, matches), teams, dryRun); err != nil {
		log.Error("Failed to send standings notification", "error", err)
	}
}

// PublishTeams pushes the current team list.
func (p *Processor) PublishTeams(ctx context.Context) {
	teams, err := p.store.GetAllTeams(context.WithoutCancel(ctx))
	if err != nil {
		log.Error("Failed to load teams for broadcast", "error", err)
		return
	}
	if err := p.publish(broadcast.EventTeams, teams); err != nil {
		log.Error("Failed to publish teams", "error", err)
	}
}

// PublishPlayers pushes the current player list.
func (p *Processor) PublishPlayers(ctx context.Context) {
	players, err := p.store.GetAllPlayers(context.WithoutCancel(ctx))
	if err != nil {
		log.Error("Failed to load players for broadcast", "error", err)
		return
	}
	if err := p.publish(broadcast.EventPlayers, players); err != nil {
		log.Error("Failed to publish players", "error", err)
	}
}

// CurrentState returns the messages a newly connected viewer needs.
func (p *Processor) CurrentState(ctx context.Context) []broadcast.Envelope {
	snap, err := p.Snapshot(ctx)
	if err != nil {
		log.Error("Failed to load state for new viewer", "error", err)
		return nil
	}
	return []broadcast.Envelope{
		{Type: broadcast.EventTeams, Data: snap.Teams},
		{Type: broadcast.EventPlayers, Data: snap.Players},
		{Type: broadcast.EventMatches, Data: snap.Matches},
		{Type: broadcast.EventStandings, Data: standings.Table(snap.Teams, snap.Matches, standings.ScopeProvisional)},
	}
}

func (p *Processor) publish(eventType broadcast.EventType, data any) error {
	if err := p.publisher.Publish(eventType, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	return nil
}
