package main

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/mauv0809/stumps/internal/processor"
	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/spf13/cobra"
)

var (
	listTournamentID string
	listStatus       string
	listLimit        int

	scheduleInput processor.ScheduleMatchInput

	tossWinner   string
	tossDecision string

	xiTeam    string
	xiPlayers []string

	ball      scoring.BallInput
	dismissal string
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List matches or score one of them",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if listTournamentID != "" {
			q.Set("tournament_id", listTournamentID)
		}
		if listStatus != "" {
			q.Set("status", listStatus)
		}
		if listLimit > 0 {
			q.Set("limit", strconv.Itoa(listLimit))
		}
		endpoint := "/matches"
		if len(q) > 0 {
			endpoint += "?" + q.Encode()
		}
		return performGetRequest(cmd.OutOrStdout(), endpoint)
	},
}

var matchGetCmd = &cobra.Command{
	Use:   "get <match-id>",
	Short: "Show a full scorecard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/matches/"+args[0])
	},
}

var matchScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule a new match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), "POST", "/matches", scheduleInput)
	},
}

var matchTossCmd = &cobra.Command{
	Use:   "toss <match-id>",
	Short: "Record the toss",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), "POST", "/matches/"+args[0]+"/toss", scoring.Toss{
			WinnerTeamID: tossWinner,
			Decision:     scoring.TossDecision(tossDecision),
		})
	},
}

var matchXICmd = &cobra.Command{
	Use:   "xi <match-id>",
	Short: "Name a team's playing XI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), "POST", "/matches/"+args[0]+"/xi", map[string]any{
			"team_id":    xiTeam,
			"player_ids": xiPlayers,
		})
	},
}

var matchBallCmd = &cobra.Command{
	Use:   "ball <match-id> <innings>",
	Short: "Record one delivery",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ball.Dismissal = scoring.DismissalType(dismissal)
		return performRequest(cmd.OutOrStdout(), "POST", fmt.Sprintf("/matches/%s/innings/%s/balls", args[0], args[1]), ball)
	},
}

var matchEndInningsCmd = &cobra.Command{
	Use:   "end-innings <match-id> <innings>",
	Short: "Close an innings",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), "POST", fmt.Sprintf("/matches/%s/innings/%s/end", args[0], args[1]), nil)
	},
}

var matchNextInningsCmd = &cobra.Command{
	Use:   "next-innings <match-id>",
	Short: "Start the chase after the innings break",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), "POST", "/matches/"+args[0]+"/innings/next", nil)
	},
}

var matchReduceOversCmd = &cobra.Command{
	Use:   "reduce-overs <match-id> <overs>",
	Short: "Shorten the match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		overs, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("overs must be a number: %w", err)
		}
		return performRequest(cmd.OutOrStdout(), "POST", "/matches/"+args[0]+"/overs", map[string]int{"overs": overs})
	},
}

var matchAbandonCmd = &cobra.Command{
	Use:   "abandon <match-id>",
	Short: "Abandon a match as a no-result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), "POST", "/matches/"+args[0]+"/abandon", nil)
	},
}

func init() {
	matchesCmd.Flags().StringVar(&listTournamentID, "tournament", "", "Only matches in this tournament")
	matchesCmd.Flags().StringVar(&listStatus, "status", "", "Only matches in this status")
	matchesCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of matches")

	matchScheduleCmd.Flags().StringVar(&scheduleInput.TournamentID, "tournament", "", "Tournament the match belongs to")
	matchScheduleCmd.Flags().StringVar(&scheduleInput.Home.ID, "home", "", "Home team id")
	matchScheduleCmd.Flags().StringVar(&scheduleInput.Home.Name, "home-name", "", "Home team name")
	matchScheduleCmd.Flags().StringVar(&scheduleInput.Away.ID, "away", "", "Away team id")
	matchScheduleCmd.Flags().StringVar(&scheduleInput.Away.Name, "away-name", "", "Away team name")
	matchScheduleCmd.Flags().IntVar(&scheduleInput.TotalOvers, "overs", 0, "Overs per side")

	matchTossCmd.Flags().StringVar(&tossWinner, "winner", "", "Team that won the toss")
	matchTossCmd.Flags().StringVar(&tossDecision, "decision", "bat", "bat or bowl")

	matchXICmd.Flags().StringVar(&xiTeam, "team", "", "Team id")
	matchXICmd.Flags().StringSliceVar(&xiPlayers, "players", nil, "Comma separated player ids")

	matchBallCmd.Flags().StringVar(&ball.StrikerID, "striker", "", "Striker id")
	matchBallCmd.Flags().StringVar(&ball.NonStrikerID, "non-striker", "", "Non-striker id")
	matchBallCmd.Flags().StringVar(&ball.BowlerID, "bowler", "", "Bowler id")
	matchBallCmd.Flags().IntVar(&ball.Runs, "runs", 0, "Runs off the delivery")
	matchBallCmd.Flags().BoolVar(&ball.Wide, "wide", false, "Wide")
	matchBallCmd.Flags().BoolVar(&ball.NoBall, "no-ball", false, "No-ball")
	matchBallCmd.Flags().BoolVar(&ball.Bye, "bye", false, "Runs are byes")
	matchBallCmd.Flags().BoolVar(&ball.LegBye, "leg-bye", false, "Runs are leg-byes")
	matchBallCmd.Flags().BoolVar(&ball.Wicket, "wicket", false, "A wicket fell")
	matchBallCmd.Flags().StringVar(&dismissal, "dismissal", "", "How the batter was out")
	matchBallCmd.Flags().StringVar(&ball.DismissedID, "dismissed", "", "Dismissed batter, defaults to the striker")
	matchBallCmd.Flags().StringVar(&ball.Fielder, "fielder", "", "Fielder involved in the dismissal")
	matchBallCmd.Flags().StringVar(&ball.Commentary, "commentary", "", "Commentary line instead of a generated one")

	matchesCmd.AddCommand(
		matchGetCmd,
		matchScheduleCmd,
		matchTossCmd,
		matchXICmd,
		matchBallCmd,
		matchEndInningsCmd,
		matchNextInningsCmd,
		matchReduceOversCmd,
		matchAbandonCmd,
	)
}
