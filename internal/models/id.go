// internal/models/id.go
package models

import (
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ID is a UUID tagged with the entity it identifies. An ID[League] and an
// ID[Season] are different types even though both are UUIDs underneath.
type ID[T any] uuid.UUID

type (
	LeagueID      = ID[League]
	SeasonID      = ID[Season]
	SessionID     = ID[Session]
	RoundID       = ID[Round]
	MatchID       = ID[Match]
	ParticipantID = ID[Participant]
	VenueID       = ID[Venue]
)

// NewID returns a freshly generated random ID.
func NewID[T any]() ID[T] {
	return ID[T](uuid.New())
}

// ParseID parses the canonical string form of a UUID into a typed ID.
func ParseID[T any](raw string) (ID[T], error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return ID[T]{}, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return ID[T](parsed), nil
}

func (id ID[T]) String() string {
	return uuid.UUID(id).String()
}

func (id ID[T]) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// Ptr returns a pointer to a copy of id, for optional pointer fields.
func (id ID[T]) Ptr() *ID[T] {
	return &id
}

func (id ID[T]) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID[T]) UnmarshalText(data []byte) error {
	parsed, err := ParseID[T](string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalBSONValue stores IDs as strings so documents stay readable in the
// mongo shell.
func (id ID[T]) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(id.String())
}

func (id *ID[T]) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null {
		*id = ID[T]{}
		return nil
	}
	raw, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("cannot decode %s into id", t)
	}
	return id.UnmarshalText([]byte(raw))
}

// SameID reports whether a and b are both set and equal.
func SameID[T any](a, b *ID[T]) bool {
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
