// Command migrate normalizes legacy customer records in MongoDB: earlier
// deployments stored balance amounts as strings, the current data model
// requires numbers. Run once before starting the API against old data.
package main

import (
	"context"
	"log"
	"time"

	"customer-service/internal/config"
	"customer-service/internal/db"
	"customer-service/internal/repository/mongodb"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[MIGRATE] No .env file found, relying on system env vars")
	}
	cfg := config.Load()

	client, err := db.NewMongoClient(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	defer client.Disconnect(ctx)

	store := mongodb.NewCustomerStore(client.Database(cfg.MongoDB).Collection("customer"))

	fixed, err := store.NormalizeLegacyBalances(ctx)
	if err != nil {
		log.Fatalf("normalize legacy balances: %v", err)
	}
	log.Printf("normalized %d legacy record(s)", fixed)

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}
	log.Println("indexes ensured")
}
