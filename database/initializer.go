package database

import (
	"log"
)

// Initialize applies the DDL pieces AutoMigrate leaves out. Every statement
// here is idempotent so the migrate command can be rerun safely.
func (s *PostgreSQLStore) Initialize() error {
	log.Println("Initializing PostgresSQL Database.", "Initializing Enums")
	if err := s.InitEnums(); err != nil {
		return err
	}
	log.Println("Initializing PostgresSQL Database.", "Initializing Constraints")
	if err := s.InitConstraints(); err != nil {
		return err
	}
	return nil
}

// InitEnums creates the enum types used by the schema.
func (s *PostgreSQLStore) InitEnums() error {
	query := `
		DO $$
		BEGIN
           	IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'enrollment_status') THEN
				CREATE TYPE enrollment_status AS ENUM ('active', 'completed', 'dropped', 'paused');
           	END IF;
		END $$;

		DO $$
		BEGIN
           	IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN
				CREATE TYPE user_role AS ENUM ('student', 'admin');
           	END IF;
		END $$;
	`
	_, err := s.db.Exec(query)

	return err
}

// InitConstraints adds the uniqueness and check constraints the enrollment
// lifecycle relies on. The unique (user_id, course_id) pair is the only
// concurrency control in the system; everything else defers to it.
func (s *PostgreSQLStore) InitConstraints() error {
	query := `
	DO $$
	BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM pg_constraint WHERE conname = 'user_course_enrollments_user_course_key'
		) AND EXISTS (
			SELECT 1 FROM information_schema.tables WHERE table_name = 'user_course_enrollments'
		) THEN
			ALTER TABLE user_course_enrollments
				ADD CONSTRAINT user_course_enrollments_user_course_key UNIQUE (user_id, course_id);
		END IF;
	END $$;

	DO $$
	BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM pg_constraint WHERE conname = 'user_course_enrollments_progress_check'
		) AND EXISTS (
			SELECT 1 FROM information_schema.tables WHERE table_name = 'user_course_enrollments'
		) THEN
			ALTER TABLE user_course_enrollments
				ADD CONSTRAINT user_course_enrollments_progress_check CHECK (progress >= 0 AND progress <= 100);
		END IF;
	END $$;

	CREATE INDEX IF NOT EXISTS idx_semesters_section ON semesters (section);
	CREATE INDEX IF NOT EXISTS idx_courses_semester_active ON courses (semester_id, is_active);
	CREATE INDEX IF NOT EXISTS idx_enrollments_user_status ON user_course_enrollments (user_id, status);
	`
	_, err := s.db.Exec(query)
	return err
}
