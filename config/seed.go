package config

import (
	"log"

	"team-eats/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SeedData loads a starter catalog and an admin account on first boot.
// Skipped entirely when restaurants already exist.
func SeedData() {
	var count int64
	DB.Model(&models.Restaurant{}).Count(&count)
	if count > 0 {
		return
	}

	restaurants := []models.Restaurant{
		{Name: "Bella Napoli", Description: "Wood-fired pizza and fresh pasta", Country: "IT", IsActive: true},
		{Name: "Tokyo Table", Description: "Sushi, ramen and bento boxes", Country: "JP", IsActive: true},
		{Name: "Taqueria Sol", Description: "Street tacos and burritos", Country: "MX", IsActive: true},
	}
	if err := DB.Create(&restaurants).Error; err != nil {
		log.Println("Seed restaurants failed:", err)
		return
	}

	menus := []models.MenuItem{
		{RestaurantID: restaurants[0].ID, Name: "Margherita", Price: 9.50, IsAvailable: true},
		{RestaurantID: restaurants[0].ID, Name: "Carbonara", Price: 12.00, IsAvailable: true},
		{RestaurantID: restaurants[1].ID, Name: "Salmon Nigiri Set", Price: 14.00, IsAvailable: true},
		{RestaurantID: restaurants[1].ID, Name: "Tonkotsu Ramen", Price: 11.50, IsAvailable: true},
		{RestaurantID: restaurants[2].ID, Name: "Al Pastor Taco", Price: 3.50, IsAvailable: true},
		{RestaurantID: restaurants[2].ID, Name: "Veggie Burrito", Price: 8.00, IsAvailable: true},
	}
	if err := DB.Create(&menus).Error; err != nil {
		log.Println("Seed menu items failed:", err)
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(GetEnv("SEED_ADMIN_PASSWORD", "admin1234")), bcrypt.DefaultCost)
	admin := models.User{
		UserUID:      uuid.NewString(),
		FullName:     "Seed Admin",
		Email:        GetEnv("SEED_ADMIN_EMAIL", "admin@team-eats.local"),
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Println("Seed admin failed:", err)
		return
	}

	log.Println("✅ Seed data loaded")
}
