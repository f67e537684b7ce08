package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"tourlink-server/config"
)

// Starter tags offered when a fresh database comes up
var starterTags = []string{
	"Adventure",
	"City Walk",
	"Cultural",
	"Culinary",
	"Family Friendly",
	"Hiking",
	"Historical",
	"Museum",
	"Nature",
	"Nightlife",
	"Photography",
	"Religious",
	"Shopping",
	"Wildlife",
	"Winter Sports",
}

// seedTags inserts the starter tag catalog. Runs against the raw SQL
// connection so it works before GORM has touched the tables.
func seedTags() {
	dbCfg := config.AppConfig.Database
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password, dbCfg.Name, dbCfg.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Printf("❌ Tag seeding failed to connect: %v", err)
		return
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Printf("❌ Tag seeding failed to ping database: %v", err)
		return
	}

	inserted := 0
	for _, name := range starterTags {
		result, err := db.Exec(`
			INSERT INTO tags (name)
			VALUES ($1)
			ON CONFLICT (name) DO NOTHING`, name)
		if err != nil {
			log.Printf("⚠️ Failed to seed tag %q: %v", name, err)
			continue
		}
		if rows, _ := result.RowsAffected(); rows > 0 {
			inserted++
		}
	}

	log.Printf("✅ Tag seeding complete: %d new tags inserted", inserted)
}
