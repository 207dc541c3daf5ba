package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/audit"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/auth"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/clock"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/config"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/entry"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/migration"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/observability"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/pricing"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/rate"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/seed"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/server"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/token"
	"github.com/mrigajana-makstark/makstarkrepo2/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		clock.Module,
		observability.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			if cfg.IsProduction() || !cfg.Bootstrap.SeedDefaults {
				return nil
			}
			if err := seed.EnsureAdminUser(conn, cfg, node); err != nil {
				return err
			}
			return seed.EnsureDefaultRates(conn, node)
		}),
		token.Module,
		auth.Module,
		rate.Module,
		pricing.Module,
		entry.Module,
		document.Module,
		audit.Module,
		server.Module,
	)
	app.Run()
}
