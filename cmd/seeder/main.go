package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/matchday/internal/broadcast"
	"github.com/mauv0809/matchday/internal/database"
	"github.com/mauv0809/matchday/internal/league"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/notifier"
	"github.com/mauv0809/matchday/internal/processor"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           os.Getenv("DB_NAME"),
		"TURSO_PRIMARY_URL": os.Getenv("TURSO_PRIMARY_URL"),
		"TURSO_AUTH_TOKEN":  os.Getenv("TURSO_AUTH_TOKEN"),
	}
	if config["DB_NAME"] == "" && config["TURSO_PRIMARY_URL"] == "" {
		log.Fatal("Error: set DB_NAME or TURSO_PRIMARY_URL.")
	}
	return config
}

var (
	teamNames  = []string{"Northside Rovers", "Harbour City", "Eastfield Athletic", "Riverside Wanderers"}
	firstNames = []string{"Alex", "Sam", "Jordan", "Robin", "Casey", "Morgan", "Jamie", "Charlie"}
	positions  = []string{"GK", "DF", "MF", "FW"}
)

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed for scores and scorers")
	flag.Parse()

	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	ctx := context.Background()
	store := league.New(db)
	rng := rand.New(rand.NewSource(*seed))
	startTime := time.Now()

	teams := make([]league.Team, len(teamNames))
	squads := make(map[string][]league.Player, len(teamNames))
	for i, name := range teamNames {
		teams[i] = league.Team{Name: name, Franchise: "Seeded League"}
		if err := store.CreateTeam(ctx, &teams[i]); err != nil {
			log.Fatalf("Failed to insert team %s: %s", name, err)
		}
		for n, pos := range positions {
			player := league.Player{
				Name:         fmt.Sprintf("%s %s", firstNames[rng.Intn(len(firstNames))], name[:1]+fmt.Sprint(n+1)),
				TeamID:       teams[i].ID,
				Position:     pos,
				JerseyNumber: n + 1,
			}
			if err := store.CreatePlayer(ctx, &player); err != nil {
				log.Fatalf("Failed to insert player: %s", err)
			}
			squads[teams[i].ID] = append(squads[teams[i].ID], player)
		}
	}
	log.Info("Inserted teams and squads", "teams", len(teams), "players_per_team", len(positions))

	// Single round robin. The last fixture is left live, the rest are finished.
	day := time.Now().AddDate(0, 0, -14)
	var fixtures int
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			fixtures++
			status := league.StatusFinished
			if i == len(teams)-2 && j == len(teams)-1 {
				status = league.StatusLive
			}
			match := league.Match{
				HomeTeamID: teams[i].ID,
				AwayTeamID: teams[j].ID,
				Date:       day.AddDate(0, 0, fixtures).Format("2006-01-02"),
				Time:       "19:30",
				Status:     status,
				HomeScore:  rng.Intn(4),
				AwayScore:  rng.Intn(4),
			}
			if err := store.CreateMatch(ctx, &match); err != nil {
				log.Fatalf("Failed to insert match: %s", err)
			}
			seedGoals(ctx, store, rng, match.ID, teams[i].ID, squads[teams[i].ID], match.HomeScore)
			seedGoals(ctx, store, rng, match.ID, teams[j].ID, squads[teams[j].ID], match.AwayScore)
		}
	}
	log.Info("Inserted matches", "total", fixtures)

	proc := processor.New(store, broadcast.NewFanout(), notifier.Disabled{}, metrics.NewService())
	if err := proc.Recalculate(ctx, "seed"); err != nil {
		log.Fatalf("Failed to recalculate standings: %s", err)
	}

	log.Info("Successfully seeded the league.", "duration", time.Since(startTime))
}

// seedGoals records one goal event per goal, with an occasional assist and card.
func seedGoals(ctx context.Context, store league.LeagueStore, rng *rand.Rand, matchID, teamID string, squad []league.Player, goals int) {
	record := func(kind league.EventKind, player league.Player) {
		event := league.MatchEvent{
			MatchID:  matchID,
			Kind:     kind,
			TeamID:   teamID,
			PlayerID: player.ID,
			Minute:   fmt.Sprint(1 + rng.Intn(90)),
		}
		if err := store.CreateEvent(ctx, &event); err != nil {
			log.Fatalf("Failed to insert match event: %s", err)
		}
	}
	for g := 0; g < goals; g++ {
		record(league.EventGoal, squad[rng.Intn(len(squad))])
		if rng.Intn(2) == 0 {
			record(league.EventAssist, squad[rng.Intn(len(squad))])
		}
	}
	if rng.Intn(3) == 0 {
		record(league.EventYellowCard, squad[rng.Intn(len(squad))])
	}
}
