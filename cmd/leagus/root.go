// cmd/leagus/root.go
package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/codr1/leagus/internal/app"
	"github.com/codr1/leagus/internal/config"
	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
)

const (
	defaultConfigPath = "config/app.yaml"
	commandTimeout    = 30 * time.Second
	defaultSpanDays   = 30
)

// cli holds what the subcommands share. The store is opened on first use so
// commands that never touch it, like --help, do not need a database.
type cli struct {
	configPath string
	verbose    bool

	cfg   *config.Config
	store store.Store
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "leagus",
		Short:         "Administer leagues, seasons, sessions, participants and venues",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if c.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.close()
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", defaultConfigPath, "Path to the yaml configuration file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log debug output")

	root.AddCommand(
		c.newDatabaseCmd(),
		c.newLeaguesCmd(),
		c.newSeasonsCmd(),
		c.newSessionsCmd(),
		c.newParticipantsCmd(),
		c.newVenuesCmd(),
		c.newPointsCmd(),
	)
	return root
}

func (c *cli) open(ctx context.Context) (store.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	if c.cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	s, err := app.OpenStore(ctx, c.cfg)
	if err != nil {
		return nil, err
	}
	c.store = s
	return s, nil
}

func (c *cli) close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close(context.Background())
	c.store = nil
	return err
}

// run opens the store and calls fn with a bounded context.
func (c *cli) run(cmd *cobra.Command, fn func(ctx context.Context, s store.Store) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	s, err := c.open(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, s)
}

// parseDate accepts YYYY-MM-DD or RFC 3339. An empty value gives fallback.
func parseDate(raw string, fallback time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback.UTC(), nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse(models.SeasonDateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", raw)
	}
	return parsed, nil
}

// seasonSpan resolves --start and --end: start defaults to now and end to
// start plus 30 days.
func seasonSpan(startRaw, endRaw string, now time.Time) (time.Time, time.Time, error) {
	start, err := parseDate(startRaw, now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(endRaw, start.AddDate(0, 0, defaultSpanDays))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// resolveLeague accepts a league id or an exact league name.
func resolveLeague(ctx context.Context, s store.Store, ref string) (models.League, error) {
	ref = strings.TrimSpace(ref)
	if id, err := models.ParseID[models.League](ref); err == nil {
		return s.GetLeague(ctx, id)
	}
	league, err := s.GetLeagueByName(ctx, ref)
	if errors.Is(err, store.ErrNotFound) {
		return models.League{}, fmt.Errorf("cannot find league %q: %w", ref, err)
	}
	return league, err
}
