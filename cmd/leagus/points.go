// cmd/leagus/points.go
package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/codr1/leagus/internal/app"
	"github.com/codr1/leagus/internal/scheduler"
	"github.com/codr1/leagus/internal/store"
)

func (c *cli) newPointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "points",
		Short: "Commands for points tables",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Recalculate the points table of every league's active season",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s store.Store) error {
				refreshed, err := scheduler.RunPointsRefresh(ctx, s, app.PointsRules(c.cfg))
				cmd.Printf("Refreshed %d points tables\n", refreshed)
				return err
			})
		},
	})
	return cmd
}
