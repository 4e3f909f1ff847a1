// Command reset-admin-password sets a new password for an admin account,
// creating the account first if it does not exist. Intended for operators
// locked out of the default admin or provisioning additional admins.
//
// Usage:
//
//	go run ./scripts/reset-admin-password.go -email admin@legalconnect.com -password <new-password>
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/legalconnect/legalconnect/internal/auth"
	"github.com/legalconnect/legalconnect/internal/model"
	"github.com/legalconnect/legalconnect/internal/repository"
)

type output struct {
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Created bool   `json:"created"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", repository.DefaultAdminEmail, "Email of the admin account")
		name        = flag.String("name", "Administrator", "Display name when creating a new account")
		password    = flag.String("password", "", "New password (required)")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if strings.TrimSpace(*password) == "" {
		fmt.Fprintln(os.Stderr, "-password is required")
		os.Exit(1)
	}
	if len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "password must be at least 8 characters")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	addr := strings.ToLower(strings.TrimSpace(*email))
	created := false

	user, err := repo.GetUserByEmail(ctx, addr)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		user = &model.User{
			Name:         *name,
			Email:        addr,
			PasswordHash: hash,
			Role:         model.RoleAdmin,
		}
		if err := repo.CreateUser(ctx, user); err != nil {
			fmt.Fprintln(os.Stderr, "create user:", err)
			os.Exit(1)
		}
		created = true
	case err != nil:
		fmt.Fprintln(os.Stderr, "look up user:", err)
		os.Exit(1)
	default:
		tag, err := repo.Pool().Exec(ctx,
			`UPDATE users SET password_hash = $1, role = $2 WHERE id = $3`,
			hash, model.RoleAdmin, user.ID,
		)
		if err != nil {
			fmt.Fprintln(os.Stderr, "update password:", err)
			os.Exit(1)
		}
		if tag.RowsAffected() == 0 {
			fmt.Fprintln(os.Stderr, "user vanished during update")
			os.Exit(1)
		}
		user.Role = model.RoleAdmin
	}

	out := output{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
		Created: created,
	}

	if *format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintln(os.Stderr, "encode output:", err)
			os.Exit(1)
		}
		return
	}

	action := "updated"
	if created {
		action = "created"
	}
	fmt.Printf("Admin account %s\n", action)
	fmt.Printf("  User ID: %d\n", out.UserID)
	fmt.Printf("  Email:   %s\n", out.Email)
	fmt.Printf("  Role:    %s\n", out.Role)
}
