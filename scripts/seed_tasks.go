package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Seeds the task catalog. Tasks are owned by this administrative process;
// the API only reads them. Re-running is safe: existing titles are skipped.
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Build connection string
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	// Connect to database
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Println("Connected to database successfully")

	tasks := []struct {
		title       string
		description string
		reward      string
		icon        string
		actionURL   string
	}{
		{"Follow on X", "Follow our official X account", "20", "twitter", "https://x.com/miningplatform"},
		{"Join Telegram", "Join the community Telegram channel", "20", "telegram", "https://t.me/miningplatform"},
		{"Join Discord", "Join the community Discord server", "20", "discord", "https://discord.gg/miningplatform"},
		{"Invite a friend", "Share your referral link with a friend", "30", "users", ""},
		{"Connect your wallet", "Link a wallet address to your account", "10", "wallet", ""},
	}

	seeded := 0
	for _, t := range tasks {
		var actionURL sql.NullString
		if t.actionURL != "" {
			actionURL = sql.NullString{String: t.actionURL, Valid: true}
		}

		result, err := db.Exec(`
			INSERT INTO tasks (title, description, reward, icon, action_url, is_active, created_at)
			SELECT $1, $2, $3::decimal, $4, $5, true, NOW()
			WHERE NOT EXISTS (SELECT 1 FROM tasks WHERE title = $1)`,
			t.title, t.description, t.reward, t.icon, actionURL)
		if err != nil {
			log.Fatalf("Failed to seed task %q: %v", t.title, err)
		}

		if rows, _ := result.RowsAffected(); rows > 0 {
			seeded++
			log.Printf("Seeded task: %s (reward %s)", t.title, t.reward)
		}
	}

	log.Printf("Done: %d new tasks, %d already present", seeded, len(tasks)-seeded)
}
