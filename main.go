package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	content, err := loadContent(cfg.ContentPath)
	if err != nil {
		log.Fatalf("Failed to load site content: %v", err)
	}

	store, err := openStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	s := &server{
		cfg:     cfg,
		store:   store,
		content: content,
		mailer:  newSMTPMailer(cfg),
		admin:   newAdminAuth(cfg),
	}

	log.Println("Privacy-conscious visitor tracking initialized")
	go s.cleanupOldVisitorData()

	r := s.newRouter()
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
