// Package futgraph provides analytics queries over a football knowledge
// graph stored in Neo4j.
//
// The graph holds players, teams, matches, competitions, stadiums, and
// coaches, connected by tenure, scoring, discipline, and transfer
// relationships. On top of it futgraph answers derived questions: league
// standings, top scorers, head-to-head records, common teammates, rivalry
// intensity, recent form, and multi-criteria career-path searches.
//
// # Basic Usage
//
// Create a client over a Neo4j driver:
//
//	store, err := driver.NewNeo4jDriver("bolt://localhost:7687", "neo4j", "password", "neo4j")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close(ctx)
//
//	client, err := futgraph.NewClient(store, nil, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	table, qerr := client.CompetitionStandings(ctx, query.StandingsRequest{
//		CompetitionID: "brasileirao-2023",
//		Season:        "2023",
//	})
//
// Every operation returns a *query.Error on failure, classified by kind
// (invalid parameter, not found, insufficient data, store unavailable, store
// timeout, overloaded, cancelled), so callers can branch without parsing
// messages.
//
// # Temporal Semantics
//
// Tenure relationships carry half-open validity: a missing end date means
// the stint is ongoing and is resolved against the query time, which every
// request may override. Overlap checks are inclusive at both bounds.
package futgraph
