package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandarbhasthana/pms-app-sub005/internal/opday"
)

func newOpDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "opday",
		Short: "Operational-day calculations (06:00 to 05:59:59.999 local); no database needed",
	}
	cmd.AddCommand(newOpDayDateCmd())
	cmd.AddCommand(newOpDayBoundsCmd())
	cmd.AddCommand(newOpDayNightsCmd())
	cmd.AddCommand(newOpDayWithinCmd())
	return cmd
}

func zoneFlag(c *cobra.Command, tz *string) {
	c.Flags().StringVar(tz, "tz", envOr("DEFAULT_TIMEZONE", ""), "IANA timezone, e.g. America/New_York")
}

// parseInstant accepts RFC3339 or "now".
func parseInstant(flag, v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" || v == "now" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s (want RFC3339): %w", flag, err)
	}
	return t, nil
}

func newOpDayDateCmd() *cobra.Command {
	var at, tz string
	var asJSON bool
	c := &cobra.Command{
		Use:   "date",
		Short: "Print the operational date containing an instant",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseInstant("at", at)
			if err != nil {
				return err
			}
			d, err := calc.OperationalDate(t, tz)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]any{"at": t.UTC(), "timezone": tz, "date": d})
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
	c.Flags().StringVar(&at, "at", "now", "instant (RFC3339)")
	zoneFlag(c, &tz)
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}

func newOpDayBoundsCmd() *cobra.Command {
	var at, date, tz string
	var asJSON bool
	c := &cobra.Command{
		Use:   "bounds",
		Short: "Print the start and end of an operational day",
		Long: "Print the start and end of an operational day, in UTC. With --date the day is\n" +
			"that calendar date; otherwise it is the day containing --at.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var b opday.Boundary
			if date != "" {
				d, err := opday.ParseDate(date)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
				if b, err = calc.BoundaryOn(d, tz); err != nil {
					return err
				}
			} else {
				t, err := parseInstant("at", at)
				if err != nil {
					return err
				}
				if b, err = calc.Boundary(t, tz); err != nil {
					return err
				}
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), b)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "date=%s timezone=%s start=%s end=%s\n",
				b.Date, b.Zone, b.Start.Format(time.RFC3339Nano), b.End.Format(time.RFC3339Nano))
			return nil
		},
	}
	c.Flags().StringVar(&at, "at", "now", "instant (RFC3339)")
	c.Flags().StringVar(&date, "date", "", "operational date YYYY-MM-DD (overrides --at)")
	zoneFlag(c, &tz)
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}

func newOpDayNightsCmd() *cobra.Command {
	var in, out, tz string
	var asJSON bool
	c := &cobra.Command{
		Use:   "nights",
		Short: "Count the nights between check-in and check-out (never less than 1)",
		RunE: func(cmd *cobra.Command, args []string) error {
			checkIn, err := parseInstant("check-in", in)
			if err != nil {
				return err
			}
			checkOut, err := parseInstant("check-out", out)
			if err != nil {
				return err
			}
			n, err := calc.SpanNights(opday.Span{CheckIn: checkIn, CheckOut: checkOut, Zone: tz})
			if err != nil {
				return err
			}
			dates, err := calc.StayDates(checkIn, checkOut, tz)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]any{"timezone": tz, "nights": n, "stay_dates": dates})
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	c.Flags().StringVar(&in, "check-in", "", "check-in instant (RFC3339)")
	c.Flags().StringVar(&out, "check-out", "", "check-out instant (RFC3339)")
	zoneFlag(c, &tz)
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = c.MarkFlagRequired("check-in")
	_ = c.MarkFlagRequired("check-out")
	return c
}

func newOpDayWithinCmd() *cobra.Command {
	var at, date, tz string
	c := &cobra.Command{
		Use:   "within",
		Short: "Print true when an instant falls inside an operational date",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseInstant("at", at)
			if err != nil {
				return err
			}
			d, err := opday.ParseDate(date)
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}
			ok, err := calc.IsWithinDay(t, d, tz)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
	c.Flags().StringVar(&at, "at", "now", "instant (RFC3339)")
	c.Flags().StringVar(&date, "date", "", "operational date YYYY-MM-DD")
	zoneFlag(c, &tz)
	_ = c.MarkFlagRequired("date")
	return c
}
