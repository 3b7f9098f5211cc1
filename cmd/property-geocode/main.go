// Command property-geocode backfills coordinates for properties that were
// created before the map picker existed. It pages through properties missing
// coordinates, forward geocodes their formatted address, and writes the
// result back through the property backend.
package main

import (
	"context"
	"os"
	"time"

	"jacs_portal_backend/internal/address"
	"jacs_portal_backend/internal/geocode"
	"jacs_portal_backend/internal/properties"
	"jacs_portal_backend/internal/session"
	"jacs_portal_backend/platform/config"
	"jacs_portal_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting property geocode backfill")

	sessions := session.NewMemoryStore()
	sessions.Save(session.Session{
		Token: os.Getenv("PROPERTY_API_TOKEN"),
		Role:  "service",
	})

	ctx := context.Background()
	geocoder := geocode.NewClient(cfg, log)
	client := properties.NewClient(cfg.GetPropertyAPIBaseURL(), sessions, log)

	const batchSize = 25
	for {
		batch, err := client.List(ctx, true, batchSize)
		if err != nil {
			log.Error("failed to list properties", "error", err)
			return
		}
		if len(batch) == 0 {
			log.Info("no properties left to geocode")
			return
		}

		progress := false

		for _, property := range batch {
			formatted := property.Address
			if formatted == "" {
				formatted = address.FormatString(address.Structured{
					Street:   property.Street,
					Barangay: property.Barangay,
					City:     property.City,
					Province: property.Province,
				})
			}
			if formatted == "" {
				log.Info("skipping property without address", "propertyId", property.ID)
				continue
			}

			results := geocoder.ForwardGeocode(ctx, formatted, geocode.Options{})
			if len(results) == 0 {
				log.Info("no geocode result", "propertyId", property.ID, "address", formatted)
				time.Sleep(time.Second)
				continue
			}

			coord := results[0].Coordinate
			if err := client.UpdateCoordinates(ctx, property.ID, coord.Latitude, coord.Longitude); err != nil {
				log.Error("failed to update property", "propertyId", property.ID, "error", err)
				time.Sleep(time.Second)
				continue
			}

			log.Info("property geocoded", "propertyId", property.ID, "lat", coord.Latitude, "lon", coord.Longitude)
			progress = true
			time.Sleep(time.Second)
		}

		if !progress {
			log.Info("no geocode progress in batch, stopping")
			return
		}
	}
}

