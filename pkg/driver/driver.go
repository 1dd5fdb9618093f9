package driver

import (
	"context"
	"errors"
	"fmt"
)

// Store failure classes. The engine retries StoreTimeout once with backoff;
// StoreUnavailable is never retried locally.
var (
	ErrStoreUnavailable = errors.New("graph store unavailable")
	ErrStoreTimeout     = errors.New("graph store timeout")
)

// Record is one raw row returned by the store: property name to value. Values
// are store-native (string, int64, float64, bool, time.Time, nested Record)
// and are coerced by the projection layer, not here.
type Record map[string]any

// Op is a filter predicate operator.
type Op int

const (
	// OpEq matches property equality.
	OpEq Op = iota
	// OpGte matches property >= value.
	OpGte
	// OpLte matches property <= value.
	OpLte
	// OpContains matches case-insensitive substring on string properties.
	OpContains
)

// Predicate is a single property filter.
type Predicate struct {
	Op    Op
	Value any
}

// Filters maps property names to predicates. The mapping is unordered; the
// adapter applies all predicates conjunctively.
type Filters map[string]Predicate

// Eq builds an equality predicate.
func Eq(v any) Predicate { return Predicate{Op: OpEq, Value: v} }

// Gte builds a greater-or-equal predicate.
func Gte(v any) Predicate { return Predicate{Op: OpGte, Value: v} }

// Lte builds a less-or-equal predicate.
func Lte(v any) Predicate { return Predicate{Op: OpLte, Value: v} }

// Contains builds a case-insensitive substring predicate.
func Contains(s string) Predicate { return Predicate{Op: OpContains, Value: s} }

// PatternSpec describes a start-[rel]->end traversal. Filters on each leg are
// optional. RelTypes with more than one entry matches any of them.
type PatternSpec struct {
	StartLabel   string
	RelTypes     []string
	EndLabel     string
	StartFilters Filters
	RelFilters   Filters
	EndFilters   Filters
	Limit        int
}

// GraphDriver is the read-oriented pattern-query interface the engine
// requires from the store. Result order is unspecified and results may be
// empty; callers must sort and deduplicate themselves.
type GraphDriver interface {
	// FetchNodes returns the properties of nodes with the given label
	// matching all filters. limit <= 0 means no limit.
	FetchNodes(ctx context.Context, label string, filters Filters, limit int) ([]Record, error)

	// FetchRelationships returns one record per matching relationship. Each
	// record holds the relationship's properties plus "start_id" and
	// "end_id", the identifier properties of the endpoint nodes.
	FetchRelationships(ctx context.Context, relType, startLabel, endLabel string, filters Filters, limit int) ([]Record, error)

	// FetchPattern evaluates a start-[rel]->end pattern. Each record holds
	// three nested Records under "start", "rel", and "end".
	FetchPattern(ctx context.Context, spec PatternSpec) ([]Record, error)

	// Close releases the adapter's connection resources.
	Close(ctx context.Context) error
}

// Node labels known to the schema.
const (
	LabelPlayer      = "Player"
	LabelTeam        = "Team"
	LabelMatch       = "Match"
	LabelCompetition = "Competition"
	LabelStadium     = "Stadium"
	LabelCoach       = "Coach"
)

// Relationship types known to the schema.
const (
	RelPlaysFor     = "PLAYS_FOR"
	RelScoredIn     = "SCORED_IN"
	RelAssistedIn   = "ASSISTED_IN"
	RelReceivedCard = "RECEIVED_CARD"
	RelPartOf       = "PART_OF"
	RelTransferred  = "TRANSFERRED_TO"
	RelManages      = "MANAGES"
)

var idProps = map[string]string{
	LabelPlayer:      "player_id",
	LabelTeam:        "team_id",
	LabelMatch:       "match_id",
	LabelCompetition: "competition_id",
	LabelStadium:     "stadium_id",
	LabelCoach:       "coach_id",
}

// IDProperty returns the identifier property name for a node label.
func IDProperty(label string) (string, error) {
	p, ok := idProps[label]
	if !ok {
		return "", fmt.Errorf("unknown node label %q", label)
	}
	return p, nil
}
