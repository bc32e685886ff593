package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/stemsi/institute-backend/internal/config"
	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/logger"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
	"github.com/stemsi/institute-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	adminService := service.NewAdminService(repository.NewPostgresStore(pool), cfg.BcryptCost, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin ===")

	name := prompt(reader, "Enter Name: ")
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	designation := prompt(reader, "Enter Designation (optional): ")

	userID := prompt(reader, "Enter User ID: ")
	if userID == "" {
		fmt.Println("Error: User ID is required")
		return
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	fmt.Println() // Newline after password input

	fmt.Print("Confirm Password: ")
	byteConfirm, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	fmt.Println()

	password := string(bytePassword)
	if password != string(byteConfirm) {
		fmt.Println("Error: Passwords do not match")
		return
	}
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// Comma separated institute ids, e.g. "1,3".
	permissions := prompt(reader, "Enter Institute Permissions (comma separated ids, optional): ")

	// ─── Logic ─────────────────────────────────────────────────────────
	admin, err := adminService.Create(ctx, &model.CreateAdminRequest{
		Name:                name,
		Designation:         designation,
		UserID:              userID,
		Password:            password,
		InstitutePermission: permissions,
	})
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			fmt.Printf("Error: %s: %s\n", ve.Field, ve.Reason)
			return
		}
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) created with ID: %d\n", admin.Name, admin.UserID, admin.ID)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
