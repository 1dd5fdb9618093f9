// Package engine computes the derived analytics of the knowledge graph:
// standings tables, top-scorer rankings, head-to-head summaries, rivalry
// scores, and form scores.
//
// Everything here is pure in-memory computation over projected value types.
// Nothing is cached between requests; a standings table is recomputed from
// completed matches every time it is asked for. All orderings are fully
// deterministic: every sort ends in a name or identifier tie-break so that
// identical input always produces identical row order.
package engine
