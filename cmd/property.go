package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sandarbhasthana/pms-app-sub005/internal/property"
)

func newPropertyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Manage properties and their timezones",
	}
	cmd.AddCommand(newPropertyAddCmd())
	cmd.AddCommand(newPropertyListCmd())
	cmd.AddCommand(newPropertyImportCmd())
	cmd.AddCommand(newPropertySetTimezoneCmd())
	return cmd
}

func newPropertyAddCmd() *cobra.Command {
	var name, tz string
	c := &cobra.Command{
		Use:   "add",
		Short: "Register a property",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := property.New(name, tz)
			if err != nil {
				return err
			}
			ctx := context.Background()
			d, _, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := property.NewRepo(d).Create(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created property id=%s name=%q timezone=%s\n", p.ID, p.Name, p.Timezone)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "property name")
	c.Flags().StringVar(&tz, "timezone", "", "IANA timezone")
	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("timezone")
	return c
}

func newPropertyListCmd() *cobra.Command {
	var asJSON bool
	c := &cobra.Command{
		Use:   "list",
		Short: "List properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, _, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			ps, err := property.NewRepo(d).List(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), ps)
			}
			for _, p := range ps {
				fmt.Fprintf(cmd.OutOrStdout(), "id=%s name=%q timezone=%s\n", p.ID, p.Name, p.Timezone)
			}
			return nil
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}

func newPropertyImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import properties from a YAML seed file; existing names are skipped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := property.LoadSeed(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()
			d, _, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			n, err := property.Import(ctx, property.NewRepo(d), ps)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d properties\n", n, len(ps))
			return nil
		},
	}
}

func newPropertySetTimezoneCmd() *cobra.Command {
	var tz string
	c := &cobra.Command{
		Use:   "set-timezone <id>",
		Short: "Move a property to another timezone; closed audit days are kept as they are",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid property id: %w", err)
			}
			if _, err := calc.Zone(tz); err != nil {
				return err
			}
			ctx := context.Background()
			d, _, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			return setTimezone(ctx, cmd, property.NewRepo(d), id, tz)
		},
	}
	c.Flags().StringVar(&tz, "timezone", "", "IANA timezone")
	_ = c.MarkFlagRequired("timezone")
	return c
}

func setTimezone(ctx context.Context, cmd *cobra.Command, reg property.Registry, id uuid.UUID, tz string) error {
	if err := reg.UpdateTimezone(ctx, id, tz); err != nil {
		return err
	}
	p, err := reg.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "updated property id=%s name=%q timezone=%s\n", p.ID, p.Name, p.Timezone)
	return nil
}
