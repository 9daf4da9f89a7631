package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// SeedConfig is the demo data file: users and the items they own.
type SeedConfig struct {
	Users []struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
	} `yaml:"users"`
	Items []struct {
		Owner       string `yaml:"owner"` // email
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Available   bool   `yaml:"available"`
	} `yaml:"items"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		seedPath = flag.String("seed", "configs/seed.yaml", "path to seed.yaml")
		dbPath   = flag.String("db", "./data/shareit.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*seedPath)
	if err != nil {
		return fmt.Errorf("read seed: %w", err)
	}
	var cfg SeedConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}
	if len(cfg.Users) == 0 {
		return fmt.Errorf("no users in yaml")
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	existing, err := db.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	byEmail := make(map[string]*models.User, len(existing))
	for _, u := range existing {
		byEmail[u.Email] = u
	}

	usersCreated := 0
	for _, u := range cfg.Users {
		if _, ok := byEmail[u.Email]; ok || u.Email == "" {
			continue
		}
		user := &models.User{Name: u.Name, Email: u.Email}
		if err = db.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", u.Email, err)
		}
		byEmail[user.Email] = user
		usersCreated++
	}

	created, updated := 0, 0
	for _, it := range cfg.Items {
		owner, ok := byEmail[it.Owner]
		if !ok || it.Name == "" {
			continue
		}
		item, err := findOwnedItem(ctx, db, owner.ID, it.Name)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get %s: %w", it.Name, err)
		}
		if item != nil {
			item.Description = it.Description
			item.Available = it.Available
			if err = db.UpdateItem(ctx, item); err != nil {
				return fmt.Errorf("update %s: %w", it.Name, err)
			}
			updated++
			continue
		}
		item = &models.Item{Name: it.Name, Description: it.Description, Available: it.Available, OwnerID: owner.ID}
		if err = db.CreateItem(ctx, item); err != nil {
			return fmt.Errorf("create %s: %w", it.Name, err)
		}
		created++
	}

	fmt.Printf("done: users=%d items created=%d updated=%d\n", usersCreated, created, updated)
	return nil
}

func findOwnedItem(ctx context.Context, db *database.DB, ownerID int64, name string) (*models.Item, error) {
	items, err := db.GetItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.Name == name {
			return it, nil
		}
	}
	return nil, domain.NotFoundf("item %s not found", name)
}
