package FiberConfig

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"Vigil/Controllers"
	"Vigil/Models"
	"Vigil/middleware"
)

func SetupRoutes(app *fiber.App) {
	// Session
	app.Post("/api/RegisterUser", Controllers.RegisterUser)
	app.Post("/api/Login", Controllers.Login)
	app.Post("/api/OperatorLogin", Controllers.OperatorLogin)
	app.Use("/api/Logout", Controllers.Logout)
	app.Get("/api/User", middleware.Verify(1), Controllers.User)
	app.Get("/api/validate-token", middleware.Verify(1), Controllers.ValidateToken)
	app.Post("/api/UpdateToken", middleware.Verify(1), Models.UpdateToken)

	// Staff management
	staff := app.Group("/api/staff", middleware.Verify(3))
	staff.Get("/", Controllers.GetStaff)
	staff.Post("/", Controllers.CreateStaff)
	staff.Put("/:id", Controllers.UpdateStaff)
	staff.Delete("/:id", Controllers.DeleteStaff)

	// Zones and tasks
	zones := app.Group("/api/zones", middleware.Verify(3))
	zones.Get("/", Controllers.GetZones)
	zones.Post("/", Controllers.CreateZone)
	zones.Put("/:id", Controllers.UpdateZone)
	zones.Delete("/:id", Controllers.DeleteZone)
	zones.Post("/:id/tasks", Controllers.CreateTask)
	app.Put("/api/tasks/:taskId", middleware.Verify(3), Controllers.UpdateTask)
	app.Delete("/api/tasks/:taskId", middleware.Verify(3), Controllers.DeleteTask)

	// The day view for whoever is logged in: owner, manager, or operator
	app.Get("/api/VisibleZones", middleware.Verify(1), Controllers.GetVisibleZones)

	// Templates
	templates := app.Group("/api/templates", middleware.Verify(3))
	templates.Get("/", Controllers.GetTemplates)
	templates.Post("/", Controllers.CreateTemplate)
	templates.Post("/:id/instantiate", Controllers.InstantiateTemplate)
	templates.Delete("/:id", Controllers.DeleteTemplate)

	// Evidence
	app.Post("/api/SubmitEvidence", middleware.Verify(1), Controllers.SubmitEvidence)
	app.Post("/api/evidence/:id/comments", middleware.Verify(1), Controllers.AppendComment)
	app.Post("/api/ReportIssue", middleware.Verify(1), Controllers.ReportIssue)

	// Reports
	reports := app.Group("/api/reports", middleware.Verify(3))
	reports.Get("/daily", Controllers.GetDailyReport)
	reports.Get("/leaderboard", Controllers.GetLeaderboard)
	reports.Get("/daily/export", Controllers.ExportDailyReport)
	app.Get("/api/dashboard", middleware.Verify(3), Controllers.GetDashboard)

	// Admin
	app.Get("/api/logs", middleware.Verify(4), Controllers.GetLogs)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,
	}))

	SetupRoutes(app)

	app.Listen(":3001")
}
