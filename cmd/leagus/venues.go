// cmd/leagus/venues.go
package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
)

func (c *cli) newVenuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "venues",
		Short: "Commands for managing venues",
	}

	var name string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a new venue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s store.Store) error {
				venue := models.NewVenue(name)
				if venue.Name == "" {
					return models.ErrNameRequired
				}
				if err := s.CreateVenue(ctx, venue); err != nil {
					return err
				}
				cmd.Printf("Created venue %q (%s)\n", venue.Name, venue.ID)
				return nil
			})
		},
	}
	create.Flags().StringVarP(&name, "name", "n", "", "Name of the venue")
	_ = create.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List venues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s store.Store) error {
				venues, err := s.ListVenues(ctx)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(venues))
				for _, v := range venues {
					rows = append(rows, []string{v.Name, v.ID.String()})
				}
				writeTable(cmd.OutOrStdout(), []string{"Name", "ID"}, rows)
				return nil
			})
		},
	}

	cmd.AddCommand(create, list)
	return cmd
}
