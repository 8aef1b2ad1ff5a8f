package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
)

// Hand-written DDL instead of AutoMigrate: the production schema leans on
// postgres defaults (uuid_generate_v4, now()) that sqlite cannot parse.
var testSchema = []string{
	`CREATE TABLE source_config (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		axis TEXT NOT NULL,
		source_type TEXT NOT NULL,
		weight REAL NOT NULL DEFAULT 1,
		is_active NUMERIC NOT NULL DEFAULT true,
		priority INTEGER NOT NULL DEFAULT 0,
		config TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE appraisal (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		cycle_name TEXT,
		overall_score REAL NOT NULL,
		status TEXT NOT NULL DEFAULT 'draft',
		completed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE goal (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		progress_percentage REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active',
		due_date DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE signal_snapshot (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		signal_name TEXT NOT NULL,
		category TEXT NOT NULL,
		normalized_score REAL NOT NULL,
		captured_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE potential_assessment (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		calculated_rating REAL NOT NULL,
		assessed_by TEXT,
		status TEXT NOT NULL DEFAULT 'draft',
		assessed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE nine_box_assessment (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		performance_band INTEGER,
		potential_band INTEGER,
		performance_confidence REAL,
		potential_confidence REAL,
		is_override_performance NUMERIC NOT NULL DEFAULT false,
		is_override_potential NUMERIC NOT NULL DEFAULT false,
		override_reason_performance TEXT,
		override_reason_potential TEXT,
		status TEXT NOT NULL DEFAULT 'draft',
		calculated_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE assessment_evidence (
		id TEXT PRIMARY KEY,
		assessment_id TEXT NOT NULL,
		company_id TEXT NOT NULL,
		axis TEXT NOT NULL,
		source_type TEXT NOT NULL,
		source_value REAL,
		weight_applied REAL NOT NULL,
		confidence_score REAL NOT NULL,
		contribution_summary TEXT,
		created_at DATETIME
	)`,
	`CREATE TABLE succession_candidate (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		role_path TEXT,
		readiness_score REAL NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE succession_evidence (
		id TEXT PRIMARY KEY,
		candidate_id TEXT NOT NULL,
		company_id TEXT NOT NULL,
		evidence_type TEXT NOT NULL DEFAULT 'nine_box_assessment',
		source_assessment_id TEXT,
		signal_summary TEXT,
		leadership_count INTEGER NOT NULL DEFAULT 0,
		avg_leadership_score REAL,
		readiness_contribution REAL NOT NULL DEFAULT 0,
		created_at DATETIME
	)`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, ddl := range testSchema {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}
