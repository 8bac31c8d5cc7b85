package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sandarbhasthana/pms-app-sub005/internal/db"
	"github.com/sandarbhasthana/pms-app-sub005/internal/property"
	"github.com/sandarbhasthana/pms-app-sub005/internal/reservation"
)

func newReservationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reservation",
		Short: "Book and inspect reservations",
	}
	cmd.AddCommand(newReservationAddCmd())
	cmd.AddCommand(newReservationShowCmd())
	return cmd
}

func newService(d *db.DB) *reservation.Service {
	return &reservation.Service{
		Properties:   property.NewRepo(d),
		Reservations: reservation.NewRepo(d),
		Calc:         calc,
	}
}

func printSummary(cmd *cobra.Command, s reservation.Summary) {
	dates := make([]string, 0, len(s.StayDates))
	for _, d := range s.StayDates {
		dates = append(dates, d.String())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "id=%s guest=%q timezone=%s check_in=%s check_out=%s nights=%d stay_dates=%s\n",
		s.ID, s.GuestName, s.Timezone, s.CheckInDate, s.CheckOutDate, s.Nights, strings.Join(dates, ","))
}

func newReservationAddCmd() *cobra.Command {
	var (
		propertyID string
		guest      string
		in, out    string
		asJSON     bool
	)
	c := &cobra.Command{
		Use:   "add",
		Short: "Book a reservation and print its operational dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := uuid.Parse(propertyID)
			if err != nil {
				return fmt.Errorf("invalid --property-id: %w", err)
			}
			checkIn, err := time.Parse(time.RFC3339, in)
			if err != nil {
				return fmt.Errorf("invalid --check-in (want RFC3339): %w", err)
			}
			checkOut, err := time.Parse(time.RFC3339, out)
			if err != nil {
				return fmt.Errorf("invalid --check-out (want RFC3339): %w", err)
			}
			r, err := reservation.New(pid, guest, checkIn, checkOut)
			if err != nil {
				return err
			}

			ctx := context.Background()
			d, _, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			sum, err := newService(d).Create(ctx, r)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), sum)
			}
			printSummary(cmd, sum)
			return nil
		},
	}
	c.Flags().StringVar(&propertyID, "property-id", "", "property id")
	c.Flags().StringVar(&guest, "guest", "", "guest name")
	c.Flags().StringVar(&in, "check-in", "", "check-in instant (RFC3339)")
	c.Flags().StringVar(&out, "check-out", "", "check-out instant (RFC3339)")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	for _, f := range []string{"property-id", "guest", "check-in", "check-out"} {
		_ = c.MarkFlagRequired(f)
	}
	return c
}

func newReservationShowCmd() *cobra.Command {
	var asJSON bool
	c := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a reservation with its nights and stay dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid reservation id: %w", err)
			}
			ctx := context.Background()
			d, _, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			sum, err := newService(d).Summary(ctx, id)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), sum)
			}
			printSummary(cmd, sum)
			return nil
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}
