// Package types defines the core value types of the soccer knowledge graph:
// entities (Player, Team, Match, Competition, Stadium, Coach), time-bounded
// relationship records (Membership, GoalEvent, CardEvent, Transfer), and the
// temporal Interval utilities shared by the analytics packages.
//
// All values are constructed fresh per request from graph records and are
// read-only afterwards. Identifiers are opaque strings owned by the external
// store; nothing in this package assumes anything about their shape.
package types
