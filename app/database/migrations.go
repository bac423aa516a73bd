package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates any missing tables. Every statement is idempotent so
// the migrations can run on every startup.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS patients (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			unique_id TEXT NOT NULL,
			age INTEGER NOT NULL,
			sex TEXT NOT NULL,
			rank TEXT NOT NULL,
			ward TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_patients_unique_id ON patients (unique_id)`,
		`CREATE TABLE IF NOT EXISTS lab_tests (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT 'Uncategorized',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS lab_test_fields (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			lab_test_id UUID NOT NULL REFERENCES lab_tests(id) ON DELETE CASCADE,
			field_name TEXT NOT NULL,
			field_type TEXT NOT NULL,
			field_options TEXT[],
			is_required BOOLEAN NOT NULL DEFAULT FALSE,
			field_order INTEGER NOT NULL,
			unit TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lab_test_fields_lab_test_id ON lab_test_fields (lab_test_id)`,
		`CREATE TABLE IF NOT EXISTS tests (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			patient_id UUID NOT NULL REFERENCES patients(id),
			lab_test_id UUID NOT NULL REFERENCES lab_tests(id),
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tests_patient_id ON tests (patient_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tests_status ON tests (status)`,
		// field_id carries no foreign key: deleting a schema field must not
		// invalidate results captured while it existed.
		`CREATE TABLE IF NOT EXISTS test_results (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			test_id UUID NOT NULL REFERENCES tests(id) ON DELETE CASCADE,
			field_id UUID NOT NULL,
			field_name TEXT NOT NULL,
			field_value TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_test_results_test_id ON test_results (test_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
