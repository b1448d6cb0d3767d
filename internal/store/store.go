// internal/store/store.go

// Package store defines the persistence contract shared by the SQLite and
// MongoDB back ends.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/codr1/leagus/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	// ErrRoundHasMatches wraps ErrDuplicate, so it classifies as a conflict.
	ErrRoundHasMatches = fmt.Errorf("round already has matches: %w", ErrDuplicate)
)

type LeagueStore interface {
	CreateLeague(ctx context.Context, league models.League) error
	GetLeague(ctx context.Context, id models.LeagueID) (models.League, error)
	GetLeagueByName(ctx context.Context, name string) (models.League, error)
	ListLeagues(ctx context.Context) ([]models.League, error)
	SetActiveSeason(ctx context.Context, leagueID models.LeagueID, seasonID models.SeasonID) error
}

type SeasonStore interface {
	// CreateSeason inserts season and, when makeActive is set, points the
	// owning league at it.
	CreateSeason(ctx context.Context, season models.Season, makeActive bool) error
	GetSeason(ctx context.Context, id models.SeasonID) (models.Season, error)
	ListSeasons(ctx context.Context) ([]models.Season, error)
	ListSeasonsForLeague(ctx context.Context, leagueID models.LeagueID) ([]models.Season, error)
	SetActiveSession(ctx context.Context, seasonID models.SeasonID, sessionID models.SessionID) error
	UpdatePointsTable(ctx context.Context, seasonID models.SeasonID, table models.PointsTable) error
}

type SessionStore interface {
	// CreateSession inserts session and, when makeActive is set, points the
	// owning season at it.
	CreateSession(ctx context.Context, session models.Session, makeActive bool) error
	GetSession(ctx context.Context, id models.SessionID) (models.Session, error)
	ListSessions(ctx context.Context) ([]models.Session, error)
	ListSessionsForSeason(ctx context.Context, seasonID models.SeasonID) ([]models.Session, error)
}

type RoundStore interface {
	CreateRound(ctx context.Context, round models.Round) error
	GetRound(ctx context.Context, id models.RoundID) (models.Round, error)
	ListRoundsForSession(ctx context.Context, sessionID models.SessionID) ([]models.Round, error)
	// AddParticipantToRound is a no-op when the participant is already attached.
	AddParticipantToRound(ctx context.Context, participantID models.ParticipantID, roundID models.RoundID) error
	RemoveParticipantFromRound(ctx context.Context, participantID models.ParticipantID, roundID models.RoundID) error
}

type MatchStore interface {
	CreateMatch(ctx context.Context, match models.Match) error
	// CreateMatches stores the generated matches of a round all or nothing.
	// It fails with ErrRoundHasMatches when the round already has matches
	// and with ErrNotFound when the round does not exist.
	CreateMatches(ctx context.Context, roundID models.RoundID, matches []models.Match) error
	GetMatch(ctx context.Context, id models.MatchID) (models.Match, error)
	ListMatchesForRound(ctx context.Context, roundID models.RoundID) ([]models.Match, error)
	RecordMatchResult(ctx context.Context, matchID models.MatchID, result models.MatchResult) error
}

type ParticipantStore interface {
	CreateParticipant(ctx context.Context, participant models.Participant) error
	GetParticipant(ctx context.Context, id models.ParticipantID) (models.Participant, error)
	// ListParticipants filters by a case-insensitive substring of the name.
	// An empty query lists everyone.
	ListParticipants(ctx context.Context, nameQuery string) ([]models.Participant, error)
	// ListParticipantsForRound returns participants in the order they were
	// attached. An unknown round is ErrNotFound.
	ListParticipantsForRound(ctx context.Context, roundID models.RoundID) ([]models.Participant, error)
}

type VenueStore interface {
	CreateVenue(ctx context.Context, venue models.Venue) error
	GetVenue(ctx context.Context, id models.VenueID) (models.Venue, error)
	ListVenues(ctx context.Context) ([]models.Venue, error)
}

// Store is everything the handlers and the CLI need from a back end.
type Store interface {
	LeagueStore
	SeasonStore
	SessionStore
	RoundStore
	MatchStore
	ParticipantStore
	VenueStore

	// Bootstrap creates the indexes the application relies on. It is safe
	// to run more than once.
	Bootstrap(ctx context.Context) error
	Close(ctx context.Context) error
}
