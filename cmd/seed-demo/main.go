package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stemsi/institute-backend/internal/config"
	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/logger"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
	"github.com/stemsi/institute-backend/internal/repository/memory"
	"github.com/stemsi/institute-backend/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store := memory.NewStore()
	if cfg.StoreBackend == config.StoreBackendPostgres {
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		store = repository.NewPostgresStore(pool)
	} else {
		fmt.Println("STORE_BACKEND is not postgres, seeding a throwaway in-memory store")
	}

	reports := service.NewReportService(store.Reports, nil, log)
	eligibility := service.NewEligibilityService(store)
	institutes := service.NewInstituteService(store.Institutes, nil, reports, false, log)
	classes := service.NewClassService(store.Classes, reports)
	sections := service.NewSectionService(store)
	assignments := service.NewAssignmentService(store, eligibility, log)
	registers := service.NewRegisterService(store, eligibility, reports)
	shares := service.NewShareService(store, eligibility, log)

	fmt.Println("=== Seeding Demo Data ===")

	alpha, err := createInstitute(ctx, institutes, "Alpha Training Institute", 500)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create institute")
	}
	beta, err := createInstitute(ctx, institutes, "Beta Skills Centre", 300)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create institute")
	}

	webDev, err := classes.CreateClass(ctx, &model.ClassRequest{Name: "Web Development", Agency: "Skills Agency"})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create class")
	}
	graphics, err := classes.CreateClass(ctx, &model.ClassRequest{Name: "Graphic Design", Agency: "Skills Agency"})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create class")
	}

	morning, err := sections.CreateSection(ctx, &model.SectionRequest{
		ClassID:   webDev.ID,
		Name:      "Morning Batch",
		StartDate: model.NewDate(2024, time.January, 1),
		EndDate:   model.NewDate(2024, time.April, 1),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create section")
	}
	evening, err := sections.CreateSection(ctx, &model.SectionRequest{
		ClassID:   graphics.ID,
		Name:      "Evening Batch",
		StartDate: model.NewDate(2024, time.February, 1),
		EndDate:   model.NewDate(2024, time.August, 1),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create section")
	}

	plan := []struct {
		institute *model.Institute
		class     *model.Class
		section   *model.Section
		students  int
	}{
		{alpha, webDev, morning, 40},
		{beta, graphics, evening, 25},
	}
	for _, p := range plan {
		_, err := assignments.CreateAssignment(ctx, &model.AssignmentRequest{
			InstituteID:   p.institute.ID,
			ClassID:       p.class.ID,
			SectionID:     p.section.ID,
			TotalStudents: p.students,
		})
		if err != nil && !errors.Is(err, repository.ErrConflict) {
			log.Fatal().Err(err).Msg("Failed to create assignment")
		}
	}

	entries := []struct {
		kind      model.RegisterKind
		amount    int64
		institute *model.Institute
		class     *model.Class
	}{
		{model.RegisterIncome, 80000, alpha, webDev},
		{model.RegisterExpense, 15000, alpha, webDev},
		{model.RegisterIncome, 30000, beta, graphics},
		{model.RegisterExpense, 42000, beta, graphics},
	}
	for _, e := range entries {
		_, err := registers.RecordEntry(ctx, e.kind, &model.RegisterRequest{
			Date:        model.Today(),
			Amount:      decimal.NewFromInt(e.amount),
			InstituteID: &e.institute.ID,
			ClassID:     &e.class.ID,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to record register entry")
		}
	}

	for _, p := range plan {
		share, err := shares.SaveInstituteShare(ctx, model.Triple{
			InstituteID: p.institute.ID,
			ClassID:     p.class.ID,
			SectionID:   p.section.ID,
		}, nil)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to save institute share")
		}
		fmt.Printf("Share for %s / %s: %d students x %s x %d months = %s\n",
			p.institute.Name, p.class.Name, share.TotalStudents, share.RatePerStudent, share.DurationMonths, share.TotalAmount)
	}

	summary, err := reports.Summary(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build report summary")
	}
	for _, row := range summary.ProfitLossByInstitute {
		fmt.Printf("%-28s income %10s  expense %10s  profit/loss %10s\n", row.InstituteName, row.Income, row.Expense, row.ProfitLoss)
	}

	fmt.Printf("\nSeed completed! Net profit/loss: %s\n", summary.NetProfitLoss)
}

func createInstitute(ctx context.Context, institutes *service.InstituteService, name string, rate int64) (*model.Institute, error) {
	res, err := institutes.Create(ctx, &model.InstituteRequest{
		Name:           name,
		RatePerStudent: decimal.NewFromInt(rate),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("create institute %s: %w", name, err)
	}
	return res.Institute, nil
}
