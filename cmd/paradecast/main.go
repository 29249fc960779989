package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"paradecast/internal/advisor"
	"paradecast/internal/api"
	"paradecast/internal/power"
	"paradecast/internal/store"
)

var cli struct {
	DB           string        `help:"Path to the SQLite database." default:"data/paradecast.db"`
	Port         string        `help:"HTTP server port." default:"8080"`
	CacheTTL     time.Duration `help:"How long cached climate datasets stay fresh." default:"24h"`
	PowerBaseURL string        `help:"NASA POWER API base URL override." env:"POWER_BASE_URL"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("paradecast"),
		kong.Description("Weather risk assessment and Plan B recommendation service."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	db, err := sql.Open("sqlite", cli.DB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("database migrated")

	source := power.NewClient(cli.PowerBaseURL)

	// Plan B generation is optional: without an API key the static catalog
	// serves every unfavorable verdict.
	var adv api.PlanBAdvisor
	if a, err := advisor.New(); err != nil {
		log.Printf("AI plan B generation disabled: %v", err)
	} else {
		adv = a
	}

	server := api.NewServer(source, adv, st, cli.Port, cli.CacheTTL)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("starting server on :%s", cli.Port)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
