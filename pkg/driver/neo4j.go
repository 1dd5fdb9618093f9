package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
)

// Neo4jDriver implements GraphDriver for Neo4j databases. Each fetch opens a
// short-lived session and runs a single managed read transaction.
type Neo4jDriver struct {
	client   neo4j.DriverWithContext
	database string
}

// NewNeo4jDriver creates a new Neo4j driver instance.
func NewNeo4jDriver(uri, username, password, database string) (*Neo4jDriver, error) {
	client, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if database == "" {
		database = "neo4j"
	}

	return &Neo4jDriver{
		client:   client,
		database: database,
	}, nil
}

// FetchNodes returns properties of nodes with the given label matching all
// filters.
func (d *Neo4jDriver) FetchNodes(ctx context.Context, label string, filters Filters, limit int) ([]Record, error) {
	if _, err := IDProperty(label); err != nil {
		return nil, err
	}

	where, params := buildWhere("n", filters)
	query := fmt.Sprintf("MATCH (n:%s)%s\nRETURN properties(n) AS props", label, where)
	if limit > 0 {
		query += "\nLIMIT $fetch_limit"
		params["fetch_limit"] = limit
	}

	records, err := d.read(ctx, query, params)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		props, ok := recordMap(rec, "props")
		if !ok {
			continue
		}
		out = append(out, props)
	}
	return out, nil
}

// FetchRelationships returns one record per relationship of the given type
// between the two labels. Records carry the relationship properties plus
// start_id and end_id.
func (d *Neo4jDriver) FetchRelationships(ctx context.Context, relType, startLabel, endLabel string, filters Filters, limit int) ([]Record, error) {
	startID, err := IDProperty(startLabel)
	if err != nil {
		return nil, err
	}
	endID, err := IDProperty(endLabel)
	if err != nil {
		return nil, err
	}

	where, params := buildWhere("r", filters)
	query := fmt.Sprintf(
		"MATCH (s:%s)-[r:%s]->(e:%s)%s\nRETURN properties(r) AS rel, s.%s AS start_id, e.%s AS end_id",
		startLabel, relType, endLabel, where, startID, endID)
	if limit > 0 {
		query += "\nLIMIT $fetch_limit"
		params["fetch_limit"] = limit
	}

	records, err := d.read(ctx, query, params)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		rel, ok := recordMap(rec, "rel")
		if !ok {
			rel = Record{}
		}
		if v, found := rec.Get("start_id"); found {
			rel["start_id"] = v
		}
		if v, found := rec.Get("end_id"); found {
			rel["end_id"] = v
		}
		out = append(out, rel)
	}
	return out, nil
}

// FetchPattern evaluates a start-[rel]->end pattern with per-leg filters.
func (d *Neo4jDriver) FetchPattern(ctx context.Context, spec PatternSpec) ([]Record, error) {
	if _, err := IDProperty(spec.StartLabel); err != nil {
		return nil, err
	}
	if _, err := IDProperty(spec.EndLabel); err != nil {
		return nil, err
	}
	if len(spec.RelTypes) == 0 {
		return nil, errors.New("pattern requires at least one relationship type")
	}

	params := map[string]any{}
	var clauses []string
	for alias, f := range map[string]Filters{"s": spec.StartFilters, "r": spec.RelFilters, "e": spec.EndFilters} {
		clauses = append(clauses, buildClauses(alias, f, params)...)
	}

	query := fmt.Sprintf("MATCH (s:%s)-[r:%s]->(e:%s)",
		spec.StartLabel, strings.Join(spec.RelTypes, "|"), spec.EndLabel)
	if len(clauses) > 0 {
		query += "\nWHERE " + strings.Join(clauses, " AND ")
	}
	query += "\nRETURN properties(s) AS start, properties(r) AS rel, properties(e) AS end"
	if spec.Limit > 0 {
		query += "\nLIMIT $fetch_limit"
		params["fetch_limit"] = spec.Limit
	}

	records, err := d.read(ctx, query, params)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		row := Record{}
		for _, key := range []string{"start", "rel", "end"} {
			if m, ok := recordMap(rec, key); ok {
				row[key] = m
			} else {
				row[key] = Record{}
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// Close releases all resources held by the driver.
func (d *Neo4jDriver) Close(ctx context.Context) error {
	return d.client.Close(ctx)
}

func (d *Neo4jDriver) read(ctx context.Context, query string, params map[string]any) ([]*db.Record, error) {
	session := d.client.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: d.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, classify(err)
	}

	records, ok := result.([]*db.Record)
	if !ok {
		return nil, fmt.Errorf("unexpected result type %T from read transaction", result)
	}
	return records, nil
}

// classify normalizes driver errors onto the adapter's failure classes.
func classify(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrStoreTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	case neo4j.IsConnectivityError(err):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		return err
	}
}

// buildWhere renders a WHERE clause for one alias and returns the parameter
// map alongside it.
func buildWhere(alias string, filters Filters) (string, map[string]any) {
	params := map[string]any{}
	clauses := buildClauses(alias, filters, params)
	if len(clauses) == 0 {
		return "", params
	}
	return "\nWHERE " + strings.Join(clauses, " AND "), params
}

func buildClauses(alias string, filters Filters, params map[string]any) []string {
	clauses := make([]string, 0, len(filters))
	for prop, pred := range filters {
		param := fmt.Sprintf("%s_%s", alias, prop)
		switch pred.Op {
		case OpEq:
			clauses = append(clauses, fmt.Sprintf("%s.%s = $%s", alias, prop, param))
		case OpGte:
			clauses = append(clauses, fmt.Sprintf("%s.%s >= $%s", alias, prop, param))
		case OpLte:
			clauses = append(clauses, fmt.Sprintf("%s.%s <= $%s", alias, prop, param))
		case OpContains:
			clauses = append(clauses, fmt.Sprintf("toLower(%s.%s) CONTAINS toLower($%s)", alias, prop, param))
		}
		params[param] = pred.Value
	}
	return clauses
}

func recordMap(rec *db.Record, key string) (Record, bool) {
	v, found := rec.Get(key)
	if !found {
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return Record(m), true
}
