package main

import (
	"log"
	"os"

	"ai-advisor-be/internal/model"
	"ai-advisor-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDB(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding company records...")
	seedCompanies(db)
	log.Println("✅ Seed completed")
}

func seedCompanies(db *gorm.DB) {
	companies := []model.Company{
		{
			Name:          "Acme Corp",
			Category:      "manufacturing",
			SubCategory:   "industrial equipment",
			PriorityScore: 45,
			Signal:        "Stable order book, expanding into adjacent component markets next quarter.",
			Contacts: []model.Contact{
				{Name: "Dana Whitfield", Role: "CEO", Email: "dana.whitfield@acme.example", Phone: "+1-555-0101"},
				{Name: "Luis Ortega", Role: "VP Sales", Email: "luis.ortega@acme.example", Phone: "+1-555-0102"},
			},
		},
		{
			Name:          "Northwind Logistics Group",
			Category:      "logistics",
			SubCategory:   "freight",
			PriorityScore: 88,
			Signal:        "Severe cash-flow distress after losing two anchor contracts; restructuring advisors engaged, layoff rumors circulating.",
			Contacts: []model.Contact{
				{Name: "Priya Raman", Role: "CFO", Email: "priya.raman@northwind.example", Phone: "+1-555-0201"},
			},
		},
		{
			Name:          "Beacon Health Partners",
			Category:      "healthcare",
			SubCategory:   "clinics",
			PriorityScore: 72,
			Signal:        "Rapid clinic rollout; hiring aggressively while margins decline on reimbursement pressure.",
			Contacts: []model.Contact{
				{Name: "Marcus Chen", Role: "COO", Email: "marcus.chen@beacon.example", Phone: "+1-555-0301"},
			},
		},
		{
			Name:          "Juniper Retail Collective",
			Category:      "retail",
			SubCategory:   "apparel",
			PriorityScore: 60,
			Signal:        "Same-store sales flat; pivoting to online channels with a new marketplace integration.",
			Contacts: []model.Contact{
				{Name: "Sofia Lindqvist", Role: "Head of Digital", Email: "sofia.lindqvist@juniper.example", Phone: "+1-555-0401"},
			},
		},
		{
			Name:          "Cobalt Data Systems",
			Category:      "technology",
			SubCategory:   "data infrastructure",
			PriorityScore: 81,
			Signal:        "Urgent funding round underway; burn rate high but pipeline includes three enterprise pilots.",
			Contacts: []model.Contact{
				{Name: "Ethan Whitaker", Role: "CTO", Email: "ethan.whitaker@cobalt.example", Phone: "+1-555-0501"},
				{Name: "Grace Adeyemi", Role: "Head of Partnerships", Email: "grace.adeyemi@cobalt.example", Phone: "+1-555-0502"},
			},
		},
		{
			Name:          "Harbor Lane Foods",
			Category:      "food and beverage",
			SubCategory:   "distribution",
			PriorityScore: 30,
			Signal:        "Quiet quarter, steady regional demand, no notable movement.",
		},
	}

	for _, company := range companies {
		var existing model.Company
		err := db.Where("name = ?", company.Name).First(&existing).Error
		if err == nil {
			log.Printf("Skip: %s already seeded", company.Name)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Printf("Warn: lookup failed for %s: %v", company.Name, err)
			continue
		}
		if err := db.Create(&company).Error; err != nil {
			log.Printf("Warn: failed to seed %s: %v", company.Name, err)
			continue
		}
		log.Printf("Seeded: %s (priority %d)", company.Name, company.PriorityScore)
	}
}
