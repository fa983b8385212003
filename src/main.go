package main

import (
	"budget-tracker-server/src/api"
	"budget-tracker-server/src/config"
	"budget-tracker-server/src/db"
	"budget-tracker-server/src/notify"
	"log"
	"net/http"
)

func main() {
	cfg := config.Load()

	users, err := config.LoadUsers(cfg.UsersFile)
	if err != nil {
		log.Fatalf("Loading user roster failed: %v", err)
	}
	log.Printf("INFO: loaded %d users from %s", len(users), cfg.UsersFile)

	// Connect to database
	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("DB migrations failed: %v", err)
	}

	db.InitCache()

	var publisher notify.Publisher = notify.NopPublisher{}
	if cfg.AMQPURL != "" {
		p, err := notify.NewAMQPPublisher(cfg.AMQPURL, cfg.AlertQueue)
		if err != nil {
			log.Fatalf("AMQP connection failed: %v", err)
		}
		defer p.Close()
		publisher = p
		log.Printf("INFO: over-budget alerts enabled on queue %s", cfg.AlertQueue)
	}

	// Router
	router := api.NewRouter(pool, cfg, users, publisher)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
