package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ikkim/cafe-backend/config"
	"github.com/ikkim/cafe-backend/internal/app/repository"
	"github.com/ikkim/cafe-backend/internal/app/service"
	"github.com/ikkim/cafe-backend/internal/db"
	"github.com/ikkim/cafe-backend/internal/storage"
	"github.com/ikkim/cafe-backend/pkg/logger"
	"github.com/ikkim/cafe-backend/pkg/mapquest"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	yes := flag.Bool("yes", false, "import without asking for confirmation")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: go run ./cmd/seed [-yes] <xlsx_file_path>")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	filePath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	logger.Initialize(logger.Config{Level: "info", Format: "console", EnableColor: true})

	logger.Info("Reading seed workbook", map[string]interface{}{
		"file": filePath,
	})
	wb, err := ReadWorkbook(filePath)
	if err != nil {
		logger.Fatal("Failed to read XLSX", err)
	}

	fmt.Printf("Cities: %d, cafes: %d, users: %d\n", len(wb.Cities), len(wb.Cafes), len(wb.Users))

	if !*yes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	maps, err := newMapService(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize map service", err)
	}

	if err := Import(context.Background(), db.GetDB(), maps, wb); err != nil {
		logger.Fatal("Import failed", err)
	}

	fmt.Println("Import completed successfully!")
}

func newMapService(cfg *config.Config) (service.MapService, error) {
	client, err := mapquest.NewClient(mapquest.Config{
		APIKey:  cfg.MapQuest.APIKey,
		BaseURL: cfg.MapQuest.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	var store storage.MapStorage
	if cfg.Storage.Driver == "s3" {
		store = storage.NewS3Storage(cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, cfg.S3.BaseURL)
	} else {
		local, err := storage.NewLocalStorage(cfg.Storage.MapDir, "/static/maps")
		if err != nil {
			return nil, err
		}
		store = local
	}
	return service.NewMapService(client, store), nil
}

// Import upserts cities, then creates cafes (with maps) and users. Users
// whose username exists are skipped.
func Import(ctx context.Context, conn *gorm.DB, maps service.MapService, wb *Workbook) error {
	if len(wb.Cities) > 0 {
		err := conn.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "state"}),
		}).Create(&wb.Cities).Error
		if err != nil {
			return fmt.Errorf("import cities: %w", err)
		}
		logger.Info("Cities imported", map[string]interface{}{
			"count": len(wb.Cities),
		})
	}

	cafeService := service.NewCafeService(
		conn,
		repository.NewCafeRepository(conn),
		repository.NewCityRepository(conn),
		maps,
	)
	for _, input := range wb.Cafes {
		if _, err := cafeService.CreateCafe(ctx, input); err != nil {
			return fmt.Errorf("import cafe %q: %w", input.Name, err)
		}
	}

	userRepo := repository.NewUserRepository(conn)
	authService := service.NewAuthService(conn, userRepo)
	for _, u := range wb.Users {
		user, err := authService.Register(u.Input)
		if errors.Is(err, service.ErrUsernameTaken) {
			logger.Warn("Skipping existing user", map[string]interface{}{
				"username": u.Input.Username,
			})
			continue
		}
		if err != nil {
			return fmt.Errorf("import user %q: %w", u.Input.Username, err)
		}
		if u.Admin {
			user.Admin = true
			if err := userRepo.Update(user); err != nil {
				return fmt.Errorf("grant admin to %q: %w", u.Input.Username, err)
			}
		}
	}

	logger.Info("Seed import finished", map[string]interface{}{
		"cafes": len(wb.Cafes),
		"users": len(wb.Users),
	})
	return nil
}
