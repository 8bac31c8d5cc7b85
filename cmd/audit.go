package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sandarbhasthana/pms-app-sub005/internal/audit"
	"github.com/sandarbhasthana/pms-app-sub005/internal/property"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Night audit: close ended operational days",
	}
	cmd.AddCommand(newAuditRunCmd())
	cmd.AddCommand(newAuditListCmd())
	return cmd
}

func newAuditRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one audit pass over every property and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, _, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			svc := newService(d)
			w := &audit.Worker{
				Properties: svc.Properties,
				Sheets:     svc,
				Closures:   audit.NewRepo(d),
				Calc:       calc,
				Clock:      audit.SystemClock{},
				Logger:     slog.Default().With("component", "audit"),
			}
			w.Tick(ctx)
			return nil
		},
	}
}

func newAuditListCmd() *cobra.Command {
	var propertyID string
	var limit int
	var asJSON bool
	c := &cobra.Command{
		Use:   "list",
		Short: "List closed operational days for a property, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := uuid.Parse(propertyID)
			if err != nil {
				return fmt.Errorf("invalid --property-id: %w", err)
			}
			ctx := context.Background()
			d, _, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			if _, err := property.NewRepo(d).Get(ctx, pid); err != nil {
				return err
			}
			cs, err := audit.NewRepo(d).List(ctx, pid, limit)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), cs)
			}
			for _, cl := range cs {
				fmt.Fprintf(cmd.OutOrStdout(), "business_date=%s closed_at=%s arrivals=%d departures=%d in_house=%d\n",
					cl.Date, cl.ClosedAt.Format(time.RFC3339), cl.Arrivals, cl.Departures, cl.InHouse)
			}
			return nil
		},
	}
	c.Flags().StringVar(&propertyID, "property-id", "", "property id")
	c.Flags().IntVar(&limit, "limit", 30, "max days to show")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = c.MarkFlagRequired("property-id")
	return c
}
