package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/config"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/services"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/ingest"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/repository/postgres"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/service/docsystem"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed playbooks")
	clearData := flag.Bool("clear-data", false, "Delete all playbooks, documents and reviews (keep schema)")
	importDir := flag.String("dir", "", "Also import every PDF/DOCX in this directory as a playbook")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// Destructive operations are never allowed against production tables
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: --drop-tables and --clear-data are disabled in production")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := postgres.DropAll(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Printf("Ensuring schema (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		if err := postgres.ClearData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Data cleared")
		return
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	extractors := ingest.NewRegistry(logger)
	playbookService := docsystem.NewPlaybookService(postgres.NewPlaybookRepository(repoConfig), extractors, logger)

	created := 0
	for _, req := range seedPlaybooks() {
		if createPlaybook(ctx, playbookService, req) {
			created++
		}
	}

	if *importDir != "" {
		n, err := importPlaybooks(ctx, extractors, playbookService, *importDir)
		if err != nil {
			log.Fatalf("Failed to import %s: %v", *importDir, err)
		}
		created += n
	}

	log.Printf("Seeding complete: %d playbooks created", created)
}

// createPlaybook reports whether a new playbook was stored. Existing names are skipped.
func createPlaybook(ctx context.Context, svc services.PlaybookService, req *services.CreatePlaybookRequest) bool {
	p, err := svc.CreatePlaybook(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			log.Printf("  skipped %q (already exists)", req.Name)
		} else {
			log.Printf("  failed %q: %v", req.Name, err)
		}
		return false
	}
	log.Printf("  created %q (ID: %s)", p.Name, p.ID)
	return true
}

// importPlaybooks extracts every supported file in dir and stores it as a playbook.
func importPlaybooks(ctx context.Context, extractors *ingest.Registry, svc services.PlaybookService, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !extractors.Supports(e.Name(), "") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}

	results, err := extractors.ExtractPaths(ctx, paths)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, res := range results {
		if res.Err != nil {
			log.Printf("  failed %s: %v", res.Path, res.Err)
			continue
		}
		req := &services.CreatePlaybookRequest{
			Name:    ingest.DisplayName(res.Path),
			Content: res.Text,
		}
		if createPlaybook(ctx, svc, req) {
			created++
		}
	}
	return created, nil
}

func seedPlaybooks() []*services.CreatePlaybookRequest {
	return []*services.CreatePlaybookRequest{
		{
			Name: "Master Services Agreement",
			Content: strings.Join([]string{
				"Either party may terminate for convenience with no less than 30 days written notice.",
				"Invoices are payable within 45 days of receipt.",
				"Each party's aggregate liability is capped at the fees paid in the preceding 12 months.",
				"The agreement is governed by the laws of the State of Delaware.",
				"The supplier must maintain commercial general liability insurance of at least $1,000,000.",
			}, "\n"),
		},
		{
			Name: "Mutual NDA",
			Content: strings.Join([]string{
				"Confidential information must be protected for at least 3 years after disclosure.",
				"Disclosure to employees is permitted only on a need-to-know basis.",
				"Confidential information must be returned or destroyed on request.",
				"No license to intellectual property is granted by the agreement.",
			}, "\n"),
		},
		{
			Name: "Data Processing Addendum",
			Content: strings.Join([]string{
				"Personal data may only be processed on documented instructions from the controller.",
				"Sub-processors require prior written authorization.",
				"Personal data breaches must be notified within 72 hours.",
				"Processing outside the EEA requires standard contractual clauses.",
			}, "\n"),
		},
	}
}
