// Command visited inspects and edits the visited-places set from the
// command line:
//
//	visited list
//	visited toggle <key>
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"itinerary/internal/config"
	"itinerary/internal/env"
	"itinerary/internal/storage"
	"itinerary/internal/visited"
	"itinerary/pkg/graceful"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: visited list | visited toggle <key>")
		os.Exit(2)
	}

	env.LoadEnv()
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}
	if cfg.PostgresDSN == "" {
		log.Fatal().Msg("POSTGRES_DSN must be set; an in-memory visited set would not outlive this command")
	}

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	kv, err := storage.NewPostgresKV(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to postgres")
	}
	defer kv.Close()

	store := visited.NewStore(kv, log)

	switch os.Args[1] {
	case "list":
		printKeys(store.Load(ctx))
	case "toggle":
		if len(os.Args) != 3 {
			fmt.Fprintln(os.Stderr, "usage: visited toggle <key>")
			os.Exit(2)
		}
		printKeys(store.Toggle(ctx, os.Args[2]))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		os.Exit(2)
	}
}

func printKeys(set map[string]struct{}) {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Println(k)
	}
}
