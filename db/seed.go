package db

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bagoloot/bagoloot/internal/config"
	"github.com/bagoloot/bagoloot/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	seedChildren = []string{"Svetlana", "Nigel", "Sequina"}

	// toy name -> owning child name
	seedToys = [][2]string{
		{"Marbles", "Svetlana"},
		{"Silly Putty", "Nigel"},
		{"Wonder Woman", "Sequina"},
	}

	seedReindeer = []string{"Dasher", "Dancer", "Prancer", "Vixen", "Comet", "Cupid", "Donner", "Blitzen", "Rudolph"}

	// child name -> reindeer name
	seedFavorites = [][2]string{
		{"Svetlana", "Rudolph"},
		{"Nigel", "Dasher"},
		{"Sequina", "Rudolph"},
	}
)

// SeedDatabase populates demo rows. It does nothing to the domain tables if
// any child already exists. The admin user is created independently when a
// password is configured and no user with that name exists.
func SeedDatabase(cfg config.SeedConfig, role string) error {
	if err := seedDomain(); err != nil {
		return err
	}

	if cfg.AdminPassword != "" {
		if err := seedAdmin(cfg.AdminUsername, cfg.AdminPassword, role); err != nil {
			return err
		}
	}

	return nil
}

func seedDomain() error {
	var count int64

	if err := DB.Model(&models.Child{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count children: %w", err)
	}

	if count > 0 {
		slog.Debug("Database already seeded", "children", count)
		return nil
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		children := make(map[string]uint, len(seedChildren))

		for _, name := range seedChildren {
			child := models.Child{Name: name}
			if err := tx.Create(&child).Error; err != nil {
				return fmt.Errorf("failed to seed child %s: %w", name, err)
			}
			children[name] = child.ID
		}

		for _, pair := range seedToys {
			toy := models.Toy{Name: pair[0], ChildID: children[pair[1]]}
			if err := tx.Create(&toy).Error; err != nil {
				return fmt.Errorf("failed to seed toy %s: %w", pair[0], err)
			}
		}

		reindeer := make(map[string]uint, len(seedReindeer))

		for _, name := range seedReindeer {
			r := models.Reindeer{Name: name}
			if err := tx.Create(&r).Error; err != nil {
				return fmt.Errorf("failed to seed reindeer %s: %w", name, err)
			}
			reindeer[name] = r.ID
		}

		for _, pair := range seedFavorites {
			fav := models.FavoriteReindeer{ChildID: children[pair[0]], ReindeerID: reindeer[pair[1]]}
			if err := tx.Create(&fav).Error; err != nil {
				return fmt.Errorf("failed to seed favorite %s->%s: %w", pair[0], pair[1], err)
			}
		}

		slog.Info("Database seeded",
			"children", len(seedChildren),
			"toys", len(seedToys),
			"reindeer", len(seedReindeer),
			"favorites", len(seedFavorites),
		)

		return nil
	})
}

func seedAdmin(username, password, role string) error {
	var existing models.User

	err := DB.Where("username = ?", username).First(&existing).Error

	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(passwordHash),
	}

	var roles []string
	if role != "" {
		roles = []string{role}
	}

	if err := user.SetRoles(roles); err != nil {
		return fmt.Errorf("failed to encode roles: %w", err)
	}

	if err := DB.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create user %s: %w", username, err)
	}

	slog.Info("Seeded admin user", "username", username)

	return nil
}
