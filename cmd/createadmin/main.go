// Creates a verified superuser account, the counterpart of the web
// registration flow for operators
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/Lija868/invoice-gen/internal/apperrors"
	"github.com/Lija868/invoice-gen/internal/db"
	"github.com/Lija868/invoice-gen/internal/repository"
	"github.com/Lija868/invoice-gen/internal/repository/postgres"
	"github.com/Lija868/invoice-gen/internal/service/auth"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "createadmin: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	var (
		dsn      string
		email    string
		password string
	)

	fs := pflag.NewFlagSet("createadmin", pflag.ContinueOnError)
	fs.StringVarP(&dsn, "database", "d", os.Getenv("DATABASE_URI"), "Database connection string")
	fs.StringVarP(&email, "email", "e", "", "Admin email")
	fs.StringVarP(&password, "password", "p", "", "Admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if email == "" || password == "" {
		return fmt.Errorf("both --email and --password are required")
	}
	if !auth.ValidPassword(password) {
		return fmt.Errorf("password doesn't match the criteria")
	}

	pool, err := db.ConnectAndMigrate(ctx, dsn)
	if err != nil {
		return fmt.Errorf("error while connecting to db. Err: %w", err)
	}
	defer pool.Close()

	storage := postgres.NewStorage(pool)

	hash, err := auth.DefaultHasher.Hash(password)
	if err != nil {
		return fmt.Errorf("can't use this as password. Err: %w", err)
	}

	user, err := storage.User().CreateUser(ctx, repository.CreateUserParams{
		Email:        email,
		Username:     "admin",
		FirstName:    "Admin",
		PasswordHash: hash,
	})
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrUserAlreadyExists):
		// Account exists: promote it instead, password stays as it is
		user, err = storage.User().GetUserByEmail(ctx, email)
		if err != nil {
			return err
		}
	default:
		return err
	}

	if err := storage.User().SetSuperuser(ctx, user.ID); err != nil {
		return err
	}

	fmt.Printf("admin %s ready, id=%s\n", user.Email, user.ID)
	return nil
}
