package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/broadcast"
	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/notifier"
	"github.com/mauv0809/matchday/internal/standings"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendAlert(alert broadcast.Alert, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatAlert(alert), dryRun)
	return err
}

func (s *Notifier) SendStandings(rows []standings.Row, teams []league.Team, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatStandings(rows, teams), dryRun)
	return err
}

// FormatStandingsResponse formats the league table for a slash command response.
func (s *Notifier) FormatStandingsResponse(rows []standings.Row, teams []league.Team) (any, error) {
	return s.formatStandings(rows, teams), nil
}

// FormatPlayerStatsResponse formats a player's statistics for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(player league.Player, teamName string) (any, error) {
	return s.formatPlayerStats(player, teamName), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

func alertHeader(t broadcast.AlertType) string {
	switch t {
	case broadcast.AlertGoal:
		return "⚽ Goal!"
	case broadcast.AlertCard:
		return "🟨 Card"
	case broadcast.AlertMatchEnd:
		return "🏁 Full time"
	default:
		return "📣 Match update"
	}
}

// formatAlert creates the Slack message for a match alert using Block Kit.
func (s *Notifier) formatAlert(alert broadcast.Alert) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", alertHeader(alert.Type), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", alert.Message, true, false), nil, nil))

	contextText := fmt.Sprintf("Match %s", alert.MatchID)
	if alert.Minute != "" {
		contextText = fmt.Sprintf("%s | %s'", contextText, alert.Minute)
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates a Slack message to display the league table.
func (s *Notifier) formatStandings(rows []standings.Row, teams []league.Team) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 League Table 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(rows) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No teams yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	for i, row := range rows {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}
		name := names[row.TeamID]
		if name == "" {
			name = row.TeamID
		}

		rowText := fmt.Sprintf("%d. %s %s - %d pts\n> P %d | W %d | D %d | L %d | GF %d | GA %d | GD %+d",
			rank,
			medal,
			name,
			row.Points,
			row.Played,
			row.Won,
			row.Drawn,
			row.Lost,
			row.GoalsFor,
			row.GoalsAgainst,
			row.GoalDiff,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", rowText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message for a single player's statistics.
func (s *Notifier) formatPlayerStats(player league.Player, teamName string) slack.Message {
	if teamName == "" {
		teamName = "Free agent"
	}
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("📊 %s", player.Name), true, false)
	statsText := fmt.Sprintf("%s | #%d %s\n> Goals: %d | Assists: %d | Yellow cards: %d | Red cards: %d | Minutes: %d",
		teamName,
		player.JerseyNumber,
		player.Position,
		player.Stats.Goals,
		player.Stats.Assists,
		player.Stats.YellowCards,
		player.Stats.RedCards,
		player.Stats.Minutes,
	)
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(headerText),
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", statsText, true, false), nil, nil),
	)
}

// formatPlayerNotFound creates a Slack message for when a player cannot be found.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Could not find a player named '%s'.", query)
	return slack.NewBlockMessage(slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil))
}
