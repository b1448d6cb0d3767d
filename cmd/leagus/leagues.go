// cmd/leagus/leagues.go
package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
)

func (c *cli) newLeaguesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leagues",
		Short: "Commands for managing leagues",
	}
	cmd.AddCommand(c.newLeagueCreateCmd(), c.newLeagueListCmd(), c.newLeagueAddSeasonCmd())
	return cmd
}

func (c *cli) newLeagueCreateCmd() *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new league",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s store.Store) error {
				league := models.NewLeague(name, description)
				if err := league.Validate(); err != nil {
					return err
				}
				if err := s.CreateLeague(ctx, league); err != nil {
					return err
				}
				cmd.Printf("Created new league: %q (%s)\n", league.Name, league.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the new league")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description of the new league")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (c *cli) newLeagueListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List existing leagues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s store.Store) error {
				return listLeagues(ctx, cmd, s)
			})
		},
	}
}

func (c *cli) newLeagueAddSeasonCmd() *cobra.Command {
	var leagueRef, start, end, name string
	var active bool
	cmd := &cobra.Command{
		Use:   "add-season",
		Short: "Add a new season to a league",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s store.Store) error {
				return createSeason(ctx, cmd, s, leagueRef, start, end, name, active)
			})
		},
	}
	cmd.Flags().StringVarP(&leagueRef, "league", "l", "", "Name or id of the league")
	cmd.Flags().StringVarP(&start, "start", "s", "", "Start date (default now)")
	cmd.Flags().StringVarP(&end, "end", "e", "", "End date (default start plus 30 days)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Season name (default \"<Month> - <Year>\" of the start)")
	cmd.Flags().BoolVar(&active, "active", true, "Make the new season the league's active season")
	_ = cmd.MarkFlagRequired("league")
	return cmd
}

func listLeagues(ctx context.Context, cmd *cobra.Command, s store.Store) error {
	leagues, err := s.ListLeagues(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(leagues))
	for _, league := range leagues {
		active := ""
		if league.ActiveSeason != nil {
			active = league.ActiveSeason.String()
		}
		rows = append(rows, []string{league.Name, league.ID.String(), active})
	}
	writeTable(cmd.OutOrStdout(), []string{"Name", "ID", "Active season"}, rows)
	return nil
}

func createSeason(ctx context.Context, cmd *cobra.Command, s store.Store, leagueRef, startRaw, endRaw, name string, active bool) error {
	league, err := resolveLeague(ctx, s, leagueRef)
	if err != nil {
		return err
	}
	start, end, err := seasonSpan(startRaw, endRaw, time.Now())
	if err != nil {
		return err
	}
	season := models.NewSeason(league.ID, start, end, name)
	if err := season.Validate(); err != nil {
		return err
	}
	if err := s.CreateSeason(ctx, season, active); err != nil {
		return err
	}
	cmd.Printf("Added season %q (%s) to %s, %s to %s\n", season.Name, season.ID, league.Name, formatDay(season.Start), formatDay(season.End))
	return nil
}
