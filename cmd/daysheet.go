package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sandarbhasthana/pms-app-sub005/internal/opday"
	"github.com/sandarbhasthana/pms-app-sub005/internal/reservation"
)

func newDaySheetCmd() *cobra.Command {
	var propertyID, date string
	var asJSON bool
	c := &cobra.Command{
		Use:   "daysheet",
		Short: "List arrivals, departures and in-house guests for one operational day",
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

			svc := newService(d)
			var day opday.Date
			if date == "" {
				p, err := svc.Properties.Get(ctx, pid)
				if err != nil {
					return err
				}
				if day, err = calc.OperationalDate(time.Now(), p.Timezone); err != nil {
					return err
				}
			} else if day, err = opday.ParseDate(date); err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}

			sheet, err := svc.DaySheet(ctx, pid, day)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), sheet)
			}
			w := cmd.OutOrStdout()
			b := sheet.Boundary
			fmt.Fprintf(w, "operational day %s (%s) %s .. %s\n", b.Date, b.Zone,
				b.Start.Format(time.RFC3339Nano), b.End.Format(time.RFC3339Nano))
			for _, sec := range []struct {
				name string
				rs   []reservation.Reservation
			}{{"arrivals", sheet.Arrivals}, {"departures", sheet.Departures}, {"in-house", sheet.InHouse}} {
				fmt.Fprintf(w, "%s: %d\n", sec.name, len(sec.rs))
				for _, r := range sec.rs {
					fmt.Fprintf(w, "  %s %q %s..%s\n", r.ID, r.GuestName,
						r.CheckInAt.Format(time.RFC3339), r.CheckOutAt.Format(time.RFC3339))
				}
			}
			return nil
		},
	}
	c.Flags().StringVar(&propertyID, "property-id", "", "property id")
	c.Flags().StringVar(&date, "date", "", "operational date YYYY-MM-DD (default: current)")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = c.MarkFlagRequired("property-id")
	return c
}
