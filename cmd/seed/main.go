package main

import (
	"context"
	"errors"
	"log"
	"os"

	"coreclad-be/internal/entity"
	"coreclad-be/internal/pkg/logger"
	"coreclad-be/internal/repository/specification"
	"coreclad-be/internal/repository/unitofwork"
	"coreclad-be/pkg/admin/account"
	"coreclad-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	color.Cyan("Seeding Core Clad admin data\n")

	color.Yellow("\n1. Admin account")
	seedAdmin(ctx, uow)

	color.Yellow("\n2. Product catalog")
	seedProducts(ctx, uow)

	color.Green("\nSeeding completed")
}

func seedAdmin(ctx context.Context, uow unitofwork.UnitOfWork) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		color.Red("Skipped: set SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD to create the admin account")
		return
	}

	mgr := account.NewManager(logger.NewNopLogger())
	acc, err := mgr.Create(ctx, uow, email, password, entity.AccountRoleAdmin)
	switch {
	case errors.Is(err, account.ErrEmailTaken):
		color.White("Admin '%s' already exists, skipping", email)
	case err != nil:
		color.Red("Failed: %v", err)
	default:
		color.Green("Created admin %s (%s)", acc.Email, acc.Id)
	}
}

func seedProducts(ctx context.Context, uow unitofwork.UnitOfWork) {
	products := []entity.Product{
		{
			Name: "PIR Roof Panel Standard", Type: entity.ProductTypeRoof, Core: "PIR", Thickness: 50,
			Description: "Trapezoidal roof sandwich panel with a PIR insulation core",
			Features:    []string{"Lambda 0.022 W/mK", "Spans up to 4.5 m", "Polyester coated steel faces"},
		},
		{
			Name: "Wall Panel Concealed Fix", Type: entity.ProductTypeWall, Core: "PIR", Thickness: 80,
			Description: "Facade panel with hidden fixings for a flush finish",
			Features:    []string{"Concealed fastening", "Micro-rib profile"},
		},
		{
			Name: "Cold Room Panel PIR", Type: entity.ProductTypeColdRoom, Core: "PIR", Thickness: 120,
			Description: "Hygienic cam-lock panel for chilled and frozen storage",
			Status:      entity.ProductStatusDraft,
			Features:    []string{"Food safe finish", "Cam-lock joints", "Down to -30 C"},
		},
		{
			Name: "Rockwool Fire-Rated Panel", Type: entity.ProductTypeFireRated, Core: "Mineral wool", Thickness: 100,
			Description: "Non-combustible core panel for fire compartment walls",
			Features:    []string{"EI 60 rated", "A2-s1,d0 reaction to fire"},
		},
		{
			Name: "Insulated Sliding Door", Type: entity.ProductTypeDoors, Core: "PIR", Thickness: 80,
			Description: "Sliding door set matched to cold room panels",
			Features:    []string{"Heated frame option", "Stainless hardware"},
		},
		{
			Name: "Flashing and Trim Kit", Type: entity.ProductTypeAccessories, Core: "-", Thickness: 0,
			Description: "Ridge caps, corner trims and closures for panel systems",
			Features:    []string{"Colour matched", "Pre-cut lengths"},
		},
	}

	repo := uow.ProductRepository()
	for i := range products {
		p := &products[i]
		if p.Status == "" {
			p.Status = entity.ProductStatusActive
		}

		existing, err := repo.FindOne(ctx, specification.Filter("name", p.Name))
		if err != nil {
			color.Red("Failed to look up '%s': %v", p.Name, err)
			continue
		}
		if existing != nil {
			color.White("Product '%s' already exists, skipping", p.Name)
			continue
		}

		if err := repo.Create(ctx, p); err != nil {
			color.Red("Error creating '%s': %v", p.Name, err)
		} else {
			color.Green("Created %s (%s)", p.Name, p.Type)
		}
	}
}
