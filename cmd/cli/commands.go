package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/standings"
	"github.com/spf13/cobra"
)

var (
	mirror bool
	final  bool
	async  bool
)

func init() {
	standingsCmd.Flags().BoolVar(&mirror, "mirror", false, "Compute the final table locally from /teams and /matches")
	standingsCmd.Flags().BoolVar(&final, "final", false, "Ask the server for the table of finished matches only")
	recalculateCmd.Flags().BoolVar(&async, "async", false, "Queue the pass on Pub/Sub instead of waiting for it")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(recalculateCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health")
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the teams with their records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/teams")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players with their stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/players")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches")
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the league table",
	Long: `Show the league table. By default the server's provisional table is shown,
which counts live matches. --mirror derives the final table locally from the
team and match lists, the way viewers do.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !mirror {
			endpoint := "/standings"
			if final {
				endpoint += "?scope=final"
			}
			return performRequest(http.MethodGet, endpoint)
		}

		var teams []league.Team
		if err := getJSON("/teams", &teams); err != nil {
			return err
		}
		var matches []league.Match
		if err := getJSON("/matches", &matches); err != nil {
			return err
		}
		printTable(os.Stdout, standings.FinalTable(teams, matches), teams)
		return nil
	},
}

var recalculateCmd = &cobra.Command{
	Use:   "recalculate",
	Short: "Trigger a full standings recalculation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if async {
			return performRequest(http.MethodPost, "/recalculate?async=true")
		}
		return performRequest(http.MethodPost, "/recalculate")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics")
	},
}

func performRequest(method, endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}

func getJSON(endpoint string, v any) error {
	resp, err := http.Get(host + endpoint)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", endpoint, err)
	}
	return nil
}

func printTable(out io.Writer, rows []standings.Row, teams []league.Team) {
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTeam\tP\tW\tD\tL\tGF\tGA\tGD\tPts")
	for i, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%+d\t%d\n",
			i+1, names[r.TeamID], r.Played, r.Won, r.Drawn, r.Lost, r.GoalsFor, r.GoalsAgainst, r.GoalDiff, r.Points)
	}
	tw.Flush()
}
