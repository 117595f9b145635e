package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/stumps/internal/metrics"
	"github.com/mauv0809/stumps/internal/notifier"
	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/mauv0809/stumps/internal/tournament"
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
	return &Notifier{
		api:       slack.New(token),
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
		return "dry-run-channel", "dry-run-ts", nil
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

func (s *Notifier) SendResultNotification(match *scoring.Match, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatResultNotification(match), dryRun)
	return err
}

func (s *Notifier) SendStandingsNotification(t *tournament.Tournament, dryRun bool) error {
	_, _, err := s.sendMessage(FormatStandings(t), dryRun)
	return err
}

// formatResultNotification renders the scorecard summary of a finished match.
func (s *Notifier) formatResultNotification(match *scoring.Match) slack.Message {
	blocks := make([]slack.Block, 0, 4)

	headerText := slack.NewTextBlockObject("plain_text", "🏏 Match finished! 🏏", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	title := fmt.Sprintf("%s vs %s", match.Teams[0].Name, match.Teams[1].Name)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", title, true, false), nil, nil))

	var fields []*slack.TextBlockObject
	for _, in := range match.Innings {
		if in.Status == scoring.InningsUpcoming && in.LegalBalls == 0 {
			continue
		}
		team, _ := match.Team(in.BattingTeamID)
		text := fmt.Sprintf("*%s*\n%d/%d (%s ov)", team.Name, in.Runs, in.Wickets, in.OversText())
		fields = append(fields, slack.NewTextBlockObject("mrkdwn", text, false, false))
	}
	summary := "Result pending"
	if match.Result != nil {
		summary = match.Result.Summary
	}
	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("Result: *%s*", summary), false, false), fields, nil))

	contextText := fmt.Sprintf("%d overs a side", match.TotalOvers)
	if match.Toss != nil {
		winner, _ := match.Team(match.Toss.WinnerTeamID)
		contextText = fmt.Sprintf("%s · %s won the toss and chose to %s", contextText, winner.Name, match.Toss.Decision)
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// FormatStandings renders the points table as a code block so columns line up.
// The /standings slash command answers with the same message.
func FormatStandings(t *tournament.Tournament) slack.Message {
	blocks := make([]slack.Block, 0, 2)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 %s standings 🏆", t.Name), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(t.Standings.Rows) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("mrkdwn", "No results yet.", false, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var b strings.Builder
	b.WriteString("```\n")
	fmt.Fprintf(&b, "%-3s %-16s %2s %2s %2s %2s %2s %3s %7s\n", "#", "Team", "P", "W", "L", "T", "NR", "Pts", "NRR")
	for i, row := range t.Standings.Rows {
		fmt.Fprintf(&b, "%-3d %-16s %2d %2d %2d %2d %2d %3d %+7.3f\n",
			i+1, truncate(row.TeamName, 16), row.MatchesPlayed, row.Won, row.Lost, row.Tied, row.NoResult, row.Points, row.NetRunRate)
	}
	b.WriteString("```")
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", b.String(), false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
