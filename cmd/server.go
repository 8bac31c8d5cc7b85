package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sandarbhasthana/pms-app-sub005/internal/audit"
	"github.com/sandarbhasthana/pms-app-sub005/internal/config"
	"github.com/sandarbhasthana/pms-app-sub005/internal/db"
	"github.com/sandarbhasthana/pms-app-sub005/internal/metrics"
	"github.com/sandarbhasthana/pms-app-sub005/internal/migrate"
	"github.com/sandarbhasthana/pms-app-sub005/internal/property"
	"github.com/sandarbhasthana/pms-app-sub005/internal/reservation"
	"github.com/sandarbhasthana/pms-app-sub005/internal/web"
)

func newServerCmd() *cobra.Command {
	var (
		migrateUp bool
		noAudit   bool
	)

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the JSON API and the night-audit worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if err := cfg.RequireCookieKeys(); err != nil {
				return err
			}
			log := slog.Default()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			d, err := db.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.Ping(ctx); err != nil {
				return fmt.Errorf("db ping: %w", err)
			}

			if migrateUp {
				if err := migrate.Up(ctx, d); err != nil {
					return err
				}
			}

			metrics.Init()
			props := property.NewRepo(d)
			svc := &reservation.Service{
				Properties:   props,
				Reservations: reservation.NewRepo(d),
				Calc:         calc,
			}

			// the pool is closed on return, so the worker must be done first
			auditDone := make(chan struct{})
			if noAudit {
				close(auditDone)
			} else {
				w := &audit.Worker{
					Properties: props,
					Sheets:     svc,
					Closures:   audit.NewRepo(d),
					Calc:       calc,
					Clock:      audit.SystemClock{},
					Interval:   cfg.AuditInterval,
					Logger:     log.With("component", "audit"),
				}
				go func() {
					defer close(auditDone)
					_ = w.Run(ctx)
				}()
			}

			ws := web.NewServer(calc, props, svc,
				web.NewPropertyContext(cfg.CookieHashKey, cfg.CookieBlockKey),
				log.With("component", "http"))
			ws.DefaultTimezone = cfg.DefaultTimezone
			err = web.Start(ctx, cfg.ListenAddr, ws.Routes(), log)
			cancel()
			<-auditDone
			return err
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	cmd.Flags().BoolVar(&noAudit, "no-audit", false, "serve the API without the night-audit worker")

	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}
