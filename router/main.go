package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/courseportal/api/config"
	"github.com/courseportal/api/database"
	"github.com/courseportal/api/handlers"
	auth_handlers "github.com/courseportal/api/handlers/auth"
	course_handlers "github.com/courseportal/api/handlers/course"
	enrollment_handlers "github.com/courseportal/api/handlers/enrollment"
	semester_handlers "github.com/courseportal/api/handlers/semester"
	topic_handlers "github.com/courseportal/api/handlers/topic"
	"github.com/courseportal/api/services/enrollment"
	"github.com/courseportal/api/services/storage"
	"github.com/courseportal/api/utils/auth"
	"github.com/courseportal/api/utils/cache"
	"github.com/courseportal/api/utils/middleware"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	env, err := config.Get()
	if err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	jwtSecret := env.JWT_SECRET
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := env.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "course-portal-api"
	}

	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Redis backs brute force protection and the public listing cache;
	// the API still works without it
	redisURL := env.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection and caching will be disabled.", err)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Object storage for slide uploads; slides fall back to external URLs
	// when Spaces is not configured
	var spacesClient *storage.SpacesClient
	spacesConfig := storage.ConfigFromEnv(env)
	if spacesConfig.Configured() {
		spacesClient, err = storage.NewSpacesClient(spacesConfig)
		if err != nil {
			log.Printf("Warning: Failed to initialize Spaces client: %v. Slide uploads will be disabled.", err)
		}
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	enrollmentService := enrollment.NewService(db)

	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	semesterHandler := semester_handlers.NewSemesterHandler(db, redisCache)
	courseHandler := course_handlers.NewCourseHandler(db, enrollmentService)
	enrollmentHandler := enrollment_handlers.NewEnrollmentHandler(db)
	topicHandler := topic_handlers.NewTopicHandler(db, spacesClient)

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return handlers.HandleCheckHealth(c, store)
	})

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Logins with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
		authGroup.Post("/admin-login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.AdminLogin)
	} else {
		authGroup.Post("/login", authHandler.Login)
		authGroup.Post("/admin-login", authHandler.AdminLogin)
	}

	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Get("/", authHandler.GetProfile)
	profileGroup.Put("/", authHandler.UpdateProfile)

	// Semester routes. Static paths must register before the :id routes.
	semesters := api.Group("/semesters")
	semesters.Get("/public", semesterHandler.ListPublic)                                  // Public: active semesters with courses
	semesters.Get("/by-batch/:batch", semesterHandler.ListByBatch)                        // Public: semesters for a batch
	semesters.Get("/", authMiddleware.RequireAdmin(), semesterHandler.ListSemesters)      // Admin: list all semesters
	semesters.Get("/:id", semesterHandler.GetSemester)                                    // Public: get semester by ID
	semesters.Post("/", authMiddleware.RequireAdmin(), semesterHandler.CreateSemester)    // Admin: create semester
	semesters.Put("/:id", authMiddleware.RequireAdmin(), semesterHandler.UpdateSemester)  // Admin: update semester
	semesters.Delete("/:id", authMiddleware.RequireAdmin(), semesterHandler.DeleteSemester) // Admin: delete semester

	// Course routes. Enrollment paths are static and must come first.
	courses := api.Group("/courses")
	courses.Get("/enrolled", authMiddleware.Optional(), enrollmentHandler.ListEnrolled) // Public: caller's enrolled courses
	courses.Post("/enroll", authMiddleware.Required(), enrollmentHandler.Enroll)        // Protected: enroll in a course
	courses.Delete("/unenroll", authMiddleware.Required(), enrollmentHandler.Unenroll)  // Protected: drop a course
	courses.Get("/", courseHandler.ListCourses)                                         // Public: list courses
	courses.Get("/:id", authMiddleware.Optional(), courseHandler.GetCourse)             // Public: get course with topics
	courses.Post("/", authMiddleware.RequireAdmin(), courseHandler.CreateCourse)        // Admin: create course
	courses.Put("/:id", authMiddleware.RequireAdmin(), courseHandler.UpdateCourse)      // Admin: update course
	courses.Delete("/:id", authMiddleware.RequireAdmin(), courseHandler.DeleteCourse)   // Admin: delete course

	// Topic routes (nested under courses for listing and reordering)
	courses.Get("/:course_id/topics", topicHandler.ListTopics)                                          // Public: topics with content
	courses.Put("/:course_id/topics/reorder", authMiddleware.RequireAdmin(), topicHandler.ReorderTopics) // Admin: reorder topics

	topics := api.Group("/topics", authMiddleware.RequireAdmin())
	topics.Post("/", topicHandler.CreateTopic)      // Admin: create topic
	topics.Put("/:id", topicHandler.UpdateTopic)    // Admin: update topic
	topics.Delete("/:id", topicHandler.DeleteTopic) // Admin: delete topic with content

	// Slide routes (admin content management)
	slides := api.Group("/slides", authMiddleware.RequireAdmin())
	slides.Post("/", topicHandler.CreateSlide)      // Admin: register or upload slide
	slides.Put("/:id", topicHandler.UpdateSlide)    // Admin: update slide metadata
	slides.Delete("/:id", topicHandler.DeleteSlide) // Admin: delete slide

	// Video routes (admin content management)
	videos := api.Group("/videos", authMiddleware.RequireAdmin())
	videos.Post("/", topicHandler.CreateVideo)      // Admin: add video link
	videos.Put("/:id", topicHandler.UpdateVideo)    // Admin: update video
	videos.Delete("/:id", topicHandler.DeleteVideo) // Admin: delete video
}
