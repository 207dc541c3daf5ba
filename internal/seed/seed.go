package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/mrigajana-makstark/makstarkrepo2/internal/auth/domain"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/auth/password"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/config"
	ratedomain "github.com/mrigajana-makstark/makstarkrepo2/internal/rate/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// defaultEventRates are the baseline per-event prices the dashboard
// started with. Real rates get managed directly in the store.
var defaultEventRates = map[string]int64{
	"Photography (Basic)":                5000,
	"Photography (Standard)":             8000,
	"Photography (Premium)":              12000,
	"Videography (Cinematic Highlights)": 15000,
	"Drone Coverage (Standard)":          8000,
	"Live Streaming":                     10000,
	"Album Basic":                        4000,
	"Social Media Content":               6000,
}

var defaultDayRates = map[string]int64{
	"Photography (Basic)": 1000,
	"Live Streaming":      2000,
}

var defaultEventCodes = map[string]string{
	"Wedding Photography": "WD",
	"Corporate Event":     "CE",
	"Music Concert":       "MC",
	"Product Launch":      "PL",
}

// EnsureAdminUser creates the bootstrap admin account when missing.
// Skipped in production, where accounts are provisioned by hand.
func EnsureAdminUser(db *gorm.DB, cfg config.Config, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user authdomain.User
		err := tx.WithContext(ctx).
			Where("username = ?", cfg.Bootstrap.AdminUsername).
			First(&user).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := password.Hash(cfg.Bootstrap.AdminPassword)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		user = authdomain.User{
			ID:           node.Generate(),
			Username:     cfg.Bootstrap.AdminUsername,
			Email:        strings.ToLower(cfg.Bootstrap.AdminEmail),
			PasswordHash: hashed,
			Role:         "admin",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return tx.WithContext(ctx).Create(&user).Error
	})
}

// EnsureDefaultRates seeds baseline rate rows the first time the tables
// come up empty.
func EnsureDefaultRates(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.WithContext(ctx).Model(&ratedomain.EventRate{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		for deliverable, amount := range defaultEventRates {
			row := ratedomain.EventRate{
				ID:          node.Generate(),
				Deliverable: deliverable,
				Amount:      decimal.NewFromInt(amount),
				CreatedAt:   now,
			}
			if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
				return err
			}
		}
		for deliverable, amount := range defaultDayRates {
			row := ratedomain.DayRate{
				ID:          node.Generate(),
				Deliverable: deliverable,
				Amount:      decimal.NewFromInt(amount),
				CreatedAt:   now,
			}
			if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
				return err
			}
		}
		for eventType, code := range defaultEventCodes {
			row := ratedomain.EventCode{
				ID:        node.Generate(),
				EventType: eventType,
				Code:      code,
				CreatedAt: now,
			}
			if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
