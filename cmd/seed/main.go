// Command seed fills the database with fake job board data for local development.
package main

import (
	"context"
	"flag"
	"log"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	numEmployers := flag.Int("employers", 10, "Number of employers to create")
	numEmployees := flag.Int("employees", 40, "Number of employees to create")
	numJobs := flag.Int("jobs", 60, "Number of jobs to create")
	perEmployee := flag.Int("applications", 3, "Maximum applications per employee")
	shouldClean := flag.Bool("clean", false, "Clean database before seeding")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible data (0 = random)")
	flag.Parse()

	_ = godotenv.Load()

	log.Println("🌱 Job board seeder")
	log.Printf("Target: %d employers, %d employees, %d jobs, clean=%v\n", *numEmployers, *numEmployees, *numJobs, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	if err := database.ApplySchema(ctx, db); err != nil {
		log.Fatalf("❌ Schema migration failed: %v", err)
	}

	res, err := seed.Demo(ctx, db, seed.DemoOptions{
		Employers:               *numEmployers,
		Employees:               *numEmployees,
		Jobs:                    *numJobs,
		ApplicationsPerEmployee: *perEmployee,
		Clean:                   *shouldClean,
		Seed:                    *randSeed,
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ Created %d employers, %d employees, %d jobs and %d applications\n",
		res.Employers, res.Employees, res.Jobs, res.Applications)
	log.Printf("📧 All demo accounts have the password: %s\n", seed.DemoPassword)
}
