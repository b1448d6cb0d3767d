// cmd/leagus/seasons.go
package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
)

func (c *cli) newSeasonsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seasons",
		Short: "Commands for managing seasons",
	}

	var leagueRef, start, end, name string
	var active bool
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a new season",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s store.Store) error {
				return createSeason(ctx, cmd, s, leagueRef, start, end, name, active)
			})
		},
	}
	create.Flags().StringVarP(&leagueRef, "league", "l", "", "Name or id of the league")
	create.Flags().StringVarP(&start, "start", "s", "", "Start date (default now)")
	create.Flags().StringVarP(&end, "end", "e", "", "End date (default start plus 30 days)")
	create.Flags().StringVarP(&name, "name", "n", "", "Season name")
	create.Flags().BoolVarP(&active, "active", "a", false, "Make the new season the league's active season")
	_ = create.MarkFlagRequired("league")

	list := &cobra.Command{
		Use:   "list",
		Short: "List existing seasons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s store.Store) error {
				seasons, err := s.ListSeasons(ctx)
				if err != nil {
					return err
				}
				writeTable(cmd.OutOrStdout(), []string{"Name", "ID", "League", "Start", "End", "Ranked"}, seasonRows(seasons))
				return nil
			})
		},
	}

	cmd.AddCommand(create, list)
	return cmd
}

func seasonRows(seasons []models.Season) [][]string {
	rows := make([][]string, 0, len(seasons))
	for _, season := range seasons {
		rows = append(rows, []string{
			season.Name,
			season.ID.String(),
			season.LeagueID.String(),
			formatDay(season.Start),
			formatDay(season.End),
			strconv.Itoa(len(season.Table.Entries)),
		})
	}
	return rows
}
