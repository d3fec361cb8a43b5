package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"reservo/config"
	"reservo/database"
	documentRepo "reservo/database/repository/document"
	"reservo/models"
	"reservo/services/booking"
	"reservo/utils"
)

// Seeds a week of demo bookings through the reservation service, so the
// admin views and the chat have realistic load to work against.
func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	var store documentRepo.DocumentStore
	if config.AppConfig.StoreBackend == "mongo" {
		database.InitDB()
		store = documentRepo.NewMongoDocumentStore(database.MongoClient, config.AppConfig.DatabaseName)
	} else {
		fileStore, err := documentRepo.NewFileDocumentStore(config.AppConfig.DataFile)
		if err != nil {
			log.Fatalf("Failed to open data file: %v", err)
		}
		store = fileStore
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer func() { _ = database.CloseDB(ctx) }()

	svc := booking.NewReservationService(store, nil, logger)
	alloc, err := svc.Snapshot(ctx)
	if err != nil {
		log.Fatalf("Failed to load agent document: %v", err)
	}
	hours := alloc.Hours()
	if len(hours) == 0 {
		log.Fatal("Opening window is empty, nothing to seed")
	}

	firstNames := []string{"Jean", "Marie", "Luc", "Sophie", "Karim", "Nadia"}
	lastNames := []string{"Dupont", "Martin", "Bernard", "Petit", "Moreau"}

	// Evenings get most of the traffic.
	pickHour := func() string {
		if rand.Intn(3) > 0 {
			return hours[len(hours)-1-rand.Intn(min(4, len(hours)))]
		}
		return hours[rand.Intn(len(hours))]
	}

	today := time.Now()
	accepted, diverted := 0, 0
	for day := 0; day < 7; day++ {
		date := today.AddDate(0, 0, day).Format("2006-01-02")
		for i := 0; i < 10; i++ {
			first := firstNames[rand.Intn(len(firstNames))]
			last := lastNames[rand.Intn(len(lastNames))]
			resp, err := svc.Reserve(ctx, models.ReservationRequest{
				Date:      date,
				Time:      pickHour(),
				FirstName: first,
				LastName:  last,
				Email:     fmt.Sprintf("%s.%s.%d@example.com", first, last, rand.Intn(1000)),
				PartySize: 1 + rand.Intn(4),
			})
			if err != nil {
				log.Fatalf("Failed to seed booking on %s: %v", date, err)
			}
			if resp.Action == models.ActionAccept {
				accepted++
			} else {
				diverted++
			}
		}
	}
	fmt.Printf("Seeded %d bookings (%d requests turned away)\n", accepted, diverted)
}
