// Package driver is the read-only boundary to the external graph store.
//
// It exposes typed fetch operations (FetchNodes, FetchRelationships,
// FetchPattern) parameterized by label, property filters, and relationship
// types, returning raw property records. The adapter performs no computation
// beyond translating filters into store queries; all analytics happen above
// it, on projected value types.
//
// Two implementations are provided: Neo4jDriver for a live Neo4j (or
// Bolt-compatible) store, and MemoryDriver for tests and local fixtures. A
// BreakerDriver decorator adds circuit breaking around any implementation.
package driver
