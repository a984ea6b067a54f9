// Command seed creates the admin account and, with -demo, sample catalog
// content for local development.
package main

import (
	"context"
	"flag"
	"log"

	"vitrin/internal/config"
	"vitrin/internal/database"
	"vitrin/internal/repository"
	"vitrin/internal/seed"
)

func main() {
	demo := flag.Bool("demo", false, "also seed demo products and gallery items")
	numProducts := flag.Int("products", 12, "number of demo products (with -demo)")
	numGallery := flag.Int("gallery", 8, "number of demo gallery items (with -demo)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	created, err := seed.Admin(ctx, repository.NewUserRepository(db))
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if created {
		log.Println("Admin user created")
	} else {
		log.Println("Admin user already exists")
	}

	if *demo {
		if err := seed.Demo(db, *numProducts, *numGallery); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		log.Printf("Seeded %d demo products and %d gallery items", *numProducts, *numGallery)
	}
}
