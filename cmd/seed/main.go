package main

import (
	"context"
	"flag"
	"log"
	"os"

	"docshelf/internal/config"
	models "docshelf/internal/domain/models/docsystem"
	"docshelf/internal/repository/memory"
	"docshelf/internal/repository/postgres"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop the folders and files tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only create the schema, don't seed records")
	clearData := flag.Bool("clear-data", false, "Delete the owner's folders and files (keep schema)")
	fixturePath := flag.String("fixture", "", "YAML fixture to load (default FIXTURE_PATH, then the built-in sample)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	// Destructive operations are never run in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: --drop-tables and --clear-data are disabled in production")
	}
	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is required")
	}

	logger := config.NewLogger(os.Stdout, cfg)
	logger.Info("seeding database",
		"environment", cfg.Environment,
		"table_prefix", cfg.TablePrefix,
		"owner_id", cfg.OwnerID,
	)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	store := postgres.NewStore(repoConfig, postgres.NewTransactionManager(pool, logger), cfg.OwnerID)

	if *dropTables {
		if err := store.DropTables(ctx); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	if *schemaOnly {
		logger.Info("schema ready")
		return
	}

	if err := store.ClearOwner(ctx); err != nil {
		log.Fatalf("Failed to clear data: %v", err)
	}
	if *clearData {
		logger.Info("data cleared")
		return
	}

	path := *fixturePath
	if path == "" {
		path = cfg.FixturePath
	}
	fixture := sampleFixture()
	if path != "" {
		if fixture, err = memory.LoadFixture(path); err != nil {
			log.Fatalf("Failed to load fixture: %v", err)
		}
	}

	if err := store.Import(ctx, fixture.Folders, fixture.Files); err != nil {
		log.Fatalf("Failed to import fixture: %v", err)
	}
	logger.Info("seeding complete", "fixture", path, "folder_count", len(fixture.Folders), "file_count", len(fixture.Files))
}

// sampleFixture is a small private and shared tree for local development.
func sampleFixture() *memory.Fixture {
	id := func(n int64) *int64 { return &n }
	return &memory.Fixture{
		Folders: []models.Folder{
			{ID: 1, Name: "Papers"},
			{ID: 2, Name: "Machine Learning", ParentID: id(1)},
			{ID: 3, Name: "Transformers", ParentID: id(2)},
			{ID: 4, Name: "Systems", ParentID: id(1)},
			{ID: 5, Name: "Notes"},
			{ID: 6, Name: "Team Handbook", IsPublic: true},
			{ID: 7, Name: "Onboarding", ParentID: id(6), IsPublic: true},
		},
		Files: []models.File{
			{ID: 1, Name: "attention-is-all-you-need.pdf", FolderID: id(3), Size: 2215244, MediaType: "pdf"},
			{ID: 2, Name: "bert.pdf", FolderID: id(3), Size: 775166, MediaType: "pdf"},
			{ID: 3, Name: "mapreduce.pdf", FolderID: id(4), Size: 186491, MediaType: "pdf"},
			{ID: 4, Name: "reading-list.md", FolderID: id(5), Size: 2048, MediaType: "md"},
			{ID: 5, Name: "inbox.txt", Size: 512, MediaType: "txt"},
			{ID: 6, Name: "first-week.docx", FolderID: id(7), Size: 48213, MediaType: "docx", IsPublic: true},
		},
	}
}
