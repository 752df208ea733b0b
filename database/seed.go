package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/courseportal/api/model"
	"github.com/courseportal/api/utils/auth"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedSemesters(); err != nil {
		return fmt.Errorf("failed to seed semesters: %w", err)
	}

	if err := s.SeedCourses(); err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}

	if err := s.SeedTopics(); err != nil {
		return fmt.Errorf("failed to seed topics: %w", err)
	}

	if err := s.SeedDemoStudents(); err != nil {
		return fmt.Errorf("failed to seed demo students: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the default section admin
func (s *Seeder) SeedAdminUser() error {
	// Check if admin already exists
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admin user already exists, skipping...")
		return nil
	}

	// Get admin credentials from environment variables
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️  ADMIN_EMAIL and ADMIN_PASSWORD environment variables not set, skipping admin user creation")
		return nil
	}

	// Hash password
	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Name:         "Section Administrator",
		Role:         model.RoleAdmin,
		TokenVersion: 0,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Created admin user: %s\n", admin.Email)
	return nil
}

// SeedSemesters creates sample semesters for two sections
func (s *Seeder) SeedSemesters() error {
	var count int64
	if err := s.db.Model(&model.Semester{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Semesters already exist, skipping...")
		return nil
	}

	semesters := []model.Semester{
		{
			Title:       "Fall 2025",
			Section:     model.MakeSection("63", "A"),
			IsActive:    true,
			Description: "Fall semester for batch 63, section A",
		},
		{
			Title:       "Fall 2025",
			Section:     model.MakeSection("63", "B"),
			IsActive:    true,
			Description: "Fall semester for batch 63, section B",
		},
		{
			Title:       "Spring 2025",
			Section:     model.MakeSection("62", "A"),
			IsActive:    false,
			Description: "Archived spring semester for batch 62, section A",
		},
	}

	if err := s.db.Create(&semesters).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d semesters\n", len(semesters))
	return nil
}

// SeedCourses creates sample courses in the active 63_A semester
func (s *Seeder) SeedCourses() error {
	var count int64
	if err := s.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Courses already exist, skipping...")
		return nil
	}

	var semester model.Semester
	if err := s.db.Where("section = ? AND is_active = ?", "63_A", true).First(&semester).Error; err != nil {
		return err
	}

	courses := []model.Course{
		{
			SemesterID:    semester.ID,
			Title:         "Structured Programming",
			CourseCode:    "CSE-115",
			TeacherName:   "Dr. Farhana Akter",
			TeacherEmail:  "farhana.akter@example.edu",
			Credits:       3,
			IsHighlighted: true,
			IsActive:      true,
		},
		{
			SemesterID:   semester.ID,
			Title:        "Discrete Mathematics",
			CourseCode:   "CSE-133",
			TeacherName:  "Md. Rakibul Hasan",
			TeacherEmail: "rakibul.hasan@example.edu",
			Credits:      3,
			IsActive:     true,
		},
		{
			SemesterID:   semester.ID,
			Title:        "English Composition",
			CourseCode:   "ENG-101",
			TeacherName:  "Sadia Rahman",
			TeacherEmail: "sadia.rahman@example.edu",
			Credits:      2,
			IsActive:     true,
		},
	}

	if err := s.db.Create(&courses).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d courses\n", len(courses))
	return nil
}

// SeedTopics creates topics with slides and videos for the first course
func (s *Seeder) SeedTopics() error {
	var count int64
	if err := s.db.Model(&model.Topic{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Topics already exist, skipping...")
		return nil
	}

	var course model.Course
	if err := s.db.Where("course_code = ?", "CSE-115").First(&course).Error; err != nil {
		return err
	}

	topics := []model.Topic{
		{
			CourseID:    course.ID,
			Title:       "Introduction to C",
			Description: "History, compilation model, first program",
			OrderIndex:  0,
			Slides: []model.Slide{
				{Title: "Course Overview", FileURL: "https://cdn.example.edu/slides/cse115-overview.pdf", OrderIndex: 0},
				{Title: "Hello World Walkthrough", FileURL: "https://cdn.example.edu/slides/cse115-hello.pdf", OrderIndex: 1},
			},
			Videos: []model.Video{
				{Title: "Lecture 1: Getting Started", VideoURL: "https://videos.example.edu/cse115/lec1", DurationSec: 2700, OrderIndex: 0},
			},
		},
		{
			CourseID:    course.ID,
			Title:       "Control Flow",
			Description: "Branching, loops, and common pitfalls",
			OrderIndex:  1,
			Videos: []model.Video{
				{Title: "Lecture 2: Conditionals", VideoURL: "https://videos.example.edu/cse115/lec2", DurationSec: 3100, OrderIndex: 0},
				{Title: "Lecture 3: Loops", VideoURL: "https://videos.example.edu/cse115/lec3", DurationSec: 2950, OrderIndex: 1},
			},
		},
	}

	if err := s.db.Create(&topics).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d topics\n", len(topics))
	return nil
}

// SeedDemoStudents creates demo student accounts with one enrollment each
func (s *Seeder) SeedDemoStudents() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleStudent).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Demo students already exist, skipping...")
		return nil
	}

	passwordHash, err := auth.HashPassword("student123")
	if err != nil {
		return err
	}

	var semester model.Semester
	if err := s.db.Where("section = ?", "63_A").First(&semester).Error; err != nil {
		return err
	}

	students := []model.User{
		{
			Email:        "student1@example.edu",
			PasswordHash: passwordHash,
			Name:         "Tanvir Ahmed",
			Role:         model.RoleStudent,
			StudentID:    "231-15-001",
			Batch:        "63",
			Section:      "63_A",
			SemesterID:   &semester.ID,
		},
		{
			Email:        "student2@example.edu",
			PasswordHash: passwordHash,
			Name:         "Nusrat Jahan",
			Role:         model.RoleStudent,
			StudentID:    "231-15-002",
			Batch:        "63",
			Section:      "63_A",
			SemesterID:   &semester.ID,
		},
	}

	if err := s.db.Create(&students).Error; err != nil {
		return err
	}

	var course model.Course
	if err := s.db.Where("course_code = ?", "CSE-115").First(&course).Error; err != nil {
		return err
	}

	enrollment := model.Enrollment{
		UserID:     students[0].ID,
		CourseID:   course.ID,
		Status:     model.EnrollmentStatusActive,
		Progress:   0,
		EnrolledAt: time.Now(),
	}
	if err := s.db.Create(&enrollment).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d demo students\n", len(students))
	return nil
}

// RunSeeds is the entry point used by cmd/seed
func RunSeeds(db *gorm.DB) error {
	seeder := NewSeeder(db)
	return seeder.SeedAll()
}
