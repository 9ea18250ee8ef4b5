package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/roomfinder/roomfinder-backend/internal/config"
	"github.com/roomfinder/roomfinder-backend/internal/database"
	"github.com/roomfinder/roomfinder-backend/internal/logger"
	"github.com/roomfinder/roomfinder-backend/internal/repository"
	"github.com/roomfinder/roomfinder-backend/internal/service"
)

func main() {
	roomsPerFloor := flag.Int("rooms-per-floor", 3, "Rooms created on every floor")
	seed := flag.Int64("seed", 42, "Seed for the generated weekly availability")
	freeRatio := flag.Float64("free-ratio", 0.5, "Share of slots marked free (0..1)")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	classroomRepo := repository.NewClassroomRepository(pool)

	rooms := planRooms(*roomsPerFloor, *seed, *freeRatio)
	fmt.Printf("=== Seeding %d Classrooms ===\n", len(rooms))

	successCount := 0
	for i, plan := range rooms {
		room := plan.Room
		if err := classroomRepo.UpsertRoom(ctx, &room); err != nil {
			fmt.Printf("Error creating classroom %s: %v\n", room.Number, err)
			continue
		}

		ok := true
		for _, day := range plan.Days {
			if err := classroomRepo.SetAvailability(ctx, room.ID, day.Day, day.Slots); err != nil {
				fmt.Printf("Error setting %s availability for %s: %v\n", day.Day, room.Number, err)
				ok = false
			}
		}
		if ok {
			successCount++
		}
		if (i+1)%10 == 0 {
			fmt.Printf("Seeded %d classrooms...\n", i+1)
		}
	}

	// The server caches the catalog; drop it so the new rows show up.
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, catalog cache not invalidated")
	} else {
		defer rdb.Close()
		classroomService := service.NewClassroomService(classroomRepo, repository.NewCatalogCache(rdb), cfg.CatalogCacheTTL, cfg.Location, log)
		if err := classroomService.InvalidateCatalog(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to invalidate catalog cache")
		}
	}

	fmt.Printf("\nSeed completed! Successfully seeded %d/%d classrooms.\n", successCount, len(rooms))
}
