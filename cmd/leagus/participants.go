// cmd/leagus/participants.go
package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
)

func (c *cli) newParticipantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participants",
		Short: "Commands for managing participants",
	}

	var name string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a new participant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s store.Store) error {
				participant := models.NewParticipant(name)
				if participant.Name == "" {
					return models.ErrNameRequired
				}
				if err := s.CreateParticipant(ctx, participant); err != nil {
					return err
				}
				cmd.Printf("Created participant %q (%s)\n", participant.Name, participant.ID)
				return nil
			})
		},
	}
	create.Flags().StringVarP(&name, "name", "n", "", "Name of the participant")
	_ = create.MarkFlagRequired("name")

	var query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List participants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s store.Store) error {
				participants, err := s.ListParticipants(ctx, query)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(participants))
				for _, p := range participants {
					rows = append(rows, []string{p.Name, p.ID.String()})
				}
				writeTable(cmd.OutOrStdout(), []string{"Name", "ID"}, rows)
				return nil
			})
		},
	}
	list.Flags().StringVarP(&query, "name", "n", "", "Only list participants whose name contains this")

	cmd.AddCommand(create, list)
	return cmd
}
