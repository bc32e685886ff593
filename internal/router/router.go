package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/institute-backend/internal/config"
	"github.com/stemsi/institute-backend/internal/handler"
	"github.com/stemsi/institute-backend/internal/middleware"
	"github.com/stemsi/institute-backend/internal/response"
	"github.com/stemsi/institute-backend/internal/storage"
)

// documentMaxAge is how long clients may cache a stored agreement.
const documentMaxAge = 5 * time.Minute

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Institute   *handler.InstituteHandler
	Class       *handler.ClassHandler
	Section     *handler.SectionHandler
	Assignment  *handler.AssignmentHandler
	Dispatch    *handler.LetterHandler
	Receive     *handler.LetterHandler
	Income      *handler.RegisterHandler
	Expense     *handler.RegisterHandler
	Share       *handler.ShareHandler
	Report      *handler.ReportHandler
	Admin       *handler.AdminHandler
	WriteLimits *middleware.RateLimiter // nil disables write limiting
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the request logger can tag every line with it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	// Stored agreements are PDFs and gain nothing from brotli.
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Skipper: middleware.SkipPrefixes(storage.DefaultURLPrefix),
	}))

	// Locally stored agreement documents. The OSS backend returns absolute
	// URLs and never hits this group.
	if cfg.DocumentBackend == config.DocumentBackendLocal {
		documents := router.Group(storage.DefaultURLPrefix)
		documents.Use(middleware.CacheControl(documentMaxAge))
		{
			documents.Static("/", cfg.DocumentDir)
		}
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	if handlers.WriteLimits != nil {
		api.Use(handlers.WriteLimits.Middleware())
	}

	// ─── 1. Entity Store ───────────────────────────────────────────────
	institutes := api.Group("/institutes")
	{
		institutes.GET("", handlers.Institute.ListInstitutes)
		institutes.GET("/:id", handlers.Institute.GetInstitute)
		institutes.POST("", handlers.Institute.CreateInstitute)
		institutes.PUT("/:id", handlers.Institute.UpdateInstitute)
	}

	classes := api.Group("/classes")
	{
		classes.GET("", handlers.Class.ListClasses)
		classes.GET("/:id", handlers.Class.GetClass)
		classes.GET("/:id/sections", handlers.Class.ListClassSections)
		classes.POST("", handlers.Class.CreateClass)
		classes.PUT("/:id", handlers.Class.UpdateClass)
	}

	sections := api.Group("/sections")
	{
		sections.GET("", handlers.Section.ListSections)
		sections.GET("/:id", handlers.Section.GetSection)
		sections.POST("", handlers.Section.CreateSection)
		sections.PUT("/:id", handlers.Section.UpdateSection)
	}

	assignments := api.Group("/assignments")
	{
		assignments.GET("", handlers.Assignment.ListAssignments)
		assignments.GET("/:id", handlers.Assignment.GetAssignment)
		assignments.POST("", handlers.Assignment.CreateAssignment)
		assignments.PUT("/:id", handlers.Assignment.UpdateAssignment)
	}

	letters := api.Group("/letters")
	{
		letters.GET("/dispatch", handlers.Dispatch.ListLetters)
		letters.POST("/dispatch", handlers.Dispatch.LogLetter)
		letters.GET("/receive", handlers.Receive.ListLetters)
		letters.POST("/receive", handlers.Receive.LogLetter)
	}

	registers := api.Group("/registers")
	{
		registers.GET("/income", handlers.Income.ListEntries)
		registers.POST("/income", handlers.Income.RecordEntry)
		registers.GET("/expense", handlers.Expense.ListEntries)
		registers.POST("/expense", handlers.Expense.RecordEntry)
	}

	admins := api.Group("/admins")
	{
		admins.GET("", handlers.Admin.ListAdmins)
		admins.GET("/:id", handlers.Admin.GetAdmin)
		admins.POST("", handlers.Admin.CreateAdmin)
		admins.PUT("/:id", handlers.Admin.UpdateAdmin)
	}

	// ─── 2. Share Computation ──────────────────────────────────────────
	shares := api.Group("/shares")
	{
		shares.GET("", handlers.Share.ListShares)
		shares.POST("/compute", handlers.Share.ComputeShare)
		shares.POST("", handlers.Share.SaveShare)
	}

	// ─── 3. Reports ────────────────────────────────────────────────────
	reports := api.Group("/reports")
	{
		reports.GET("/income-by-class", handlers.Report.IncomeByClass)
		reports.GET("/expense-by-class", handlers.Report.ExpenseByClass)
		reports.GET("/profit-loss", handlers.Report.ProfitLoss)
		reports.GET("/summary", handlers.Report.Summary)
	}

	return router
}
