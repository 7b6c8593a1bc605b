package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"itinerary/internal/config"
	"itinerary/internal/enrich"
	"itinerary/internal/env"
	"itinerary/internal/geocache"
	"itinerary/internal/models"
	"itinerary/internal/rank"
	"itinerary/internal/storage"
	"itinerary/internal/trip"
	"itinerary/internal/visited"
	"itinerary/pkg/geo"
	"itinerary/pkg/graceful"
	"itinerary/pkg/kafkaclient"
	"itinerary/pkg/locate"
	"itinerary/pkg/nominatim"
	"itinerary/pkg/wikipedia"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	env.LoadEnv()
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	store, err := newTripStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to trip data store")
	}
	loader := trip.NewLoader(store, cfg.TripBucket)

	tripCfg, err := loader.Config(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("loading trip config")
	}
	booked, err := loader.Itinerary(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("loading booked itinerary")
	}
	days, err := loader.SuggestedDays(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("loading suggested itinerary")
	}
	log.Info().Str("trip", tripCfg.TripName).Int("booked", len(booked)).Int("days", len(days)).Msg("trip data loaded")

	kv := newKV(ctx, cfg, log)
	if closer, ok := kv.(*storage.PostgresKV); ok {
		defer closer.Close()
	}
	cache := geocache.New(kv, log)
	visits := visited.NewStore(kv, log)

	observers := []enrich.Observer{loggingObserver(log)}
	if cfg.KafkaBroker != "" {
		producer := kafkaclient.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic)
		defer producer.Close()
		observers = append(observers, enrich.ObserverFunc(func(u enrich.Update) {
			if err := producer.PublishUpdate(ctx, u); err != nil {
				log.Warn().Err(err).Str("key", u.Key).Msg("publishing enrichment update")
			}
		}))
	}

	geocoder := nominatim.NewClient(cfg.UserAgent, cfg.CountryCodes)
	scheduler := enrich.NewScheduler(geocoder, cache, cfg.Pacing(), log, observers...)
	scheduler.Run(ctx, days, *tripCfg)

	images := enrich.FetchImages(ctx, wikipedia.NewClient(cfg.UserAgent), days, log)

	ref := locate.NewProvider(cfg.GeolocateEndpoint, log).Current(ctx)

	fmt.Printf("%s — %s\n", tripCfg.TripName, tripCfg.TripSubtitle)
	printBooked(booked)
	printReport(ctx, days, scheduler, images, visits, ref)

	if ctx.Err() != nil {
		log.Warn().Msg("interrupted before completion")
		return
	}
	log.Info().Msg("enrichment finished")
}

// newTripStore prefers a local data directory and falls back to MinIO.
func newTripStore(cfg config.Config) (trip.ObjectGetter, error) {
	if cfg.TripDataDir != "" {
		return storage.NewFileStore(cfg.TripDataDir), nil
	}
	return storage.NewObjectStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
}

// newKV falls back to process-local state when Postgres is not
// configured or unreachable, so a broken database never blocks a run.
func newKV(ctx context.Context, cfg config.Config, log zerolog.Logger) storage.KV {
	if cfg.PostgresDSN == "" {
		return storage.NewMemoryKV()
	}
	pg, err := storage.NewPostgresKV(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Warn().Err(err).Msg("postgres unavailable, falling back to in-memory state")
		return storage.NewMemoryKV()
	}
	return pg
}

func loggingObserver(log zerolog.Logger) enrich.Observer {
	return enrich.ObserverFunc(func(u enrich.Update) {
		ev := log.Debug().Str("key", u.Key).Stringer("status", u.Status)
		if u.Coords != nil {
			ev = ev.Float64("lat", u.Coords.Lat).Float64("lng", u.Coords.Lng)
		}
		ev.Msg("item updated")
	})
}

// printBooked lists confirmed bookings in source order; they carry
// their own locations and are never geocoded.
func printBooked(items []models.ItineraryItem) {
	if len(items) == 0 {
		return
	}
	fmt.Println("\nBooked:")
	for _, item := range items {
		line := fmt.Sprintf("  %s %-8s %s", item.Date, item.Type, item.Title)
		if item.Location != "" {
			line += " @ " + item.Location
		}
		fmt.Println(line)
	}
}

// printReport lists each suggested day with its items ordered by
// category and distance from the reference location.
func printReport(ctx context.Context, days []models.SuggestedDay, s *enrich.Scheduler, images map[string]string, visits *visited.Store, ref *models.Coordinates) {
	coords := s.Coordinates()
	seen := visits.Load(ctx)

	for _, day := range days {
		fmt.Printf("\n%s", day.Date)
		if day.Area != "" {
			fmt.Printf(" — %s", day.Area)
		}
		fmt.Println()

		items := make([]models.SuggestedItem, len(day.Items))
		copy(items, day.Items)
		rank.SortItems(items, coords, ref)

		for _, item := range items {
			key := item.Key()
			marker := " "
			if _, ok := seen[key]; ok {
				marker = "x"
			}
			line := fmt.Sprintf("  [%s] %-10s %s", marker, item.Category, item.DisplayName())
			if c, ok := coords[key]; ok && ref != nil {
				line += fmt.Sprintf(" (%.1f km)", geo.DistanceKm(*ref, c))
			} else if s.Status(key) == enrich.StatusFailed {
				line += " (location unknown)"
			}
			fmt.Println(line)
			if img, ok := images[key]; ok {
				fmt.Printf("      %s\n", img)
			} else if item.Image != "" {
				fmt.Printf("      %s\n", item.Image)
			}
		}
	}
}
