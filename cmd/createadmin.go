package cmd

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"

	"tastebook-backend/config"
	"tastebook-backend/models"
	"tastebook-backend/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	adminUsername string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin user, or promote an existing user to admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateAdmin()
	},
}

func init() {
	createAdminCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "admin username")
	createAdminCmd.Flags().StringVarP(&adminEmail, "email", "e", "", "admin email")
	createAdminCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "password (random if omitted)")
	createAdminCmd.MarkFlagRequired("username")
	rootCmd.AddCommand(createAdminCmd)
}

func runCreateAdmin() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	email := adminEmail
	if email == "" {
		email = adminUsername + "@example.local"
	}

	var existing models.User
	err = db.Where("username = ? OR email = ?", adminUsername, email).First(&existing).Error
	switch {
	case err == nil && existing.IsAdmin:
		fmt.Printf("Admin user %q already exists; the password cannot be retrieved.\n", existing.Username)
		return nil
	case err == nil:
		password, perr := ensurePassword()
		if perr != nil {
			return perr
		}
		hash, herr := utils.HashPassword(password)
		if herr != nil {
			return herr
		}
		existing.IsAdmin = true
		existing.PasswordHash = hash
		if err := db.Save(&existing).Error; err != nil {
			return fmt.Errorf("promote user: %w", err)
		}
		fmt.Printf("User %q promoted to admin. Password: %s\n", existing.Username, password)
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("look up user: %w", err)
	}

	password, err := ensurePassword()
	if err != nil {
		return err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{
		Username:     adminUsername,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	fmt.Printf("Created admin user %q with password: %s\n", admin.Username, password)
	return nil
}

func ensurePassword() (string, error) {
	if adminPassword != "" {
		return adminPassword, nil
	}
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
