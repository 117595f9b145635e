package main

import (
	"fmt"
	"strings"

	"github.com/mauv0809/stumps/internal/processor"
	"github.com/mauv0809/stumps/internal/scoring"
	"github.com/spf13/cobra"
)

var (
	tournamentName  string
	tournamentOvers int
	tournamentTeams []string
)

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments",
	Short: "List tournaments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/tournaments")
	},
}

var tournamentGetCmd = &cobra.Command{
	Use:   "get <tournament-id>",
	Short: "Show a tournament and its standings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/tournaments/"+args[0])
	},
}

var tournamentCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		teams, err := parseTeams(tournamentTeams)
		if err != nil {
			return err
		}
		return performRequest(cmd.OutOrStdout(), "POST", "/tournaments", processor.CreateTournamentInput{
			Name:       tournamentName,
			TotalOvers: tournamentOvers,
			Teams:      teams,
		})
	},
}

var tournamentApplyCmd = &cobra.Command{
	Use:   "apply <tournament-id> <match-id>",
	Short: "Apply a completed match to the standings",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), "POST", fmt.Sprintf("/tournaments/%s/matches/%s/result", args[0], args[1]), nil)
	},
}

// parseTeams reads "id=Name" pairs. A bare id is also its name.
func parseTeams(values []string) ([]scoring.Team, error) {
	teams := make([]scoring.Team, 0, len(values))
	for _, v := range values {
		id, name, found := strings.Cut(v, "=")
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("team %q has no id", v)
		}
		if !found {
			name = id
		}
		teams = append(teams, scoring.Team{ID: id, Name: strings.TrimSpace(name)})
	}
	return teams, nil
}

func init() {
	tournamentCreateCmd.Flags().StringVar(&tournamentName, "name", "", "Tournament name")
	tournamentCreateCmd.Flags().IntVar(&tournamentOvers, "overs", 0, "Overs per side, server default when 0")
	tournamentCreateCmd.Flags().StringSliceVar(&tournamentTeams, "team", nil, "Team as id=Name, repeatable")

	tournamentsCmd.AddCommand(tournamentGetCmd, tournamentCreateCmd, tournamentApplyCmd)
}
