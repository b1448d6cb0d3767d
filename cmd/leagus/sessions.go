// cmd/leagus/sessions.go
package main

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
)

func (c *cli) newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Commands for managing sessions",
	}

	var seasonRef, date string
	var active bool
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a new session in a season",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seasonID, err := models.ParseID[models.Season](strings.TrimSpace(seasonRef))
			if err != nil {
				return err
			}
			when, err := parseDate(date, time.Now())
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context, s store.Store) error {
				session := models.NewSession(seasonID, when)
				if err := s.CreateSession(ctx, session, active); err != nil {
					return err
				}
				cmd.Printf("Created session %s on %s\n", session.ID, formatDay(session.Date))
				return nil
			})
		},
	}
	create.Flags().StringVarP(&seasonRef, "season", "s", "", "Id of the season")
	create.Flags().StringVarP(&date, "date", "d", "", "Date of the session (default now)")
	create.Flags().BoolVarP(&active, "active", "a", false, "Make the new session the season's active session")
	_ = create.MarkFlagRequired("season")

	var filter string
	list := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s store.Store) error {
				var (
					sessions []models.Session
					err      error
				)
				if filter == "" {
					sessions, err = s.ListSessions(ctx)
				} else {
					var seasonID models.SeasonID
					seasonID, err = models.ParseID[models.Season](filter)
					if err == nil {
						sessions, err = s.ListSessionsForSeason(ctx, seasonID)
					}
				}
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(sessions))
				for _, session := range sessions {
					rows = append(rows, []string{session.ID.String(), session.SeasonID.String(), formatDay(session.Date)})
				}
				writeTable(cmd.OutOrStdout(), []string{"ID", "Season", "Date"}, rows)
				return nil
			})
		},
	}
	list.Flags().StringVarP(&filter, "season", "s", "", "Only list sessions of this season id")

	cmd.AddCommand(create, list)
	return cmd
}
