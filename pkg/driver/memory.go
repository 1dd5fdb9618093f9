package driver

import (
	"context"
	"fmt"
	"strings"

	"github.com/futgraph/futgraph/pkg/types"
)

// Dataset is the fixture content served by a MemoryDriver.
type Dataset struct {
	Players      []types.Player
	Teams        []types.Team
	Competitions []types.Competition
	Matches      []types.Match
	Stadiums     []types.Stadium
	Coaches      []types.Coach
	Memberships  []types.Membership
	Goals        []types.GoalEvent
	Cards        []types.CardEvent
	Transfers    []types.Transfer
}

// MemoryDriver is an in-process GraphDriver over a fixed Dataset. It serves
// the same record shapes as the Neo4j driver so the projection layer and the
// engine can be exercised without a running store.
type MemoryDriver struct {
	data Dataset
}

// NewMemoryDriver creates a driver over the given dataset.
func NewMemoryDriver(data Dataset) *MemoryDriver {
	return &MemoryDriver{data: data}
}

// FetchNodes implements GraphDriver.
func (m *MemoryDriver) FetchNodes(ctx context.Context, label string, filters Filters, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := m.nodeRecords(label)
	if err != nil {
		return nil, err
	}
	return applyFilters(records, filters, limit), nil
}

// FetchRelationships implements GraphDriver.
func (m *MemoryDriver) FetchRelationships(ctx context.Context, relType, startLabel, endLabel string, filters Filters, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wantStart, wantEnd, records, err := m.relRecords(relType)
	if err != nil {
		return nil, err
	}
	if startLabel != wantStart || endLabel != wantEnd {
		return nil, fmt.Errorf("relationship %s connects %s to %s, not %s to %s",
			relType, wantStart, wantEnd, startLabel, endLabel)
	}
	return applyFilters(records, filters, limit), nil
}

// FetchPattern implements GraphDriver.
func (m *MemoryDriver) FetchPattern(ctx context.Context, spec PatternSpec) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startNodes, err := m.nodesByID(spec.StartLabel)
	if err != nil {
		return nil, err
	}
	endNodes, err := m.nodesByID(spec.EndLabel)
	if err != nil {
		return nil, err
	}

	var out []Record
	for _, relType := range spec.RelTypes {
		wantStart, wantEnd, rels, err := m.relRecords(relType)
		if err != nil {
			return nil, err
		}
		if wantStart != spec.StartLabel || wantEnd != spec.EndLabel {
			continue
		}
		for _, rel := range rels {
			if !matchFilters(rel, spec.RelFilters) {
				continue
			}
			startID, _ := AsString(rel["start_id"])
			endID, _ := AsString(rel["end_id"])
			start, ok := startNodes[startID]
			if !ok || !matchFilters(start, spec.StartFilters) {
				continue
			}
			end, ok := endNodes[endID]
			if !ok || !matchFilters(end, spec.EndFilters) {
				continue
			}
			out = append(out, Record{"start": start, "rel": rel, "end": end})
			if spec.Limit > 0 && len(out) >= spec.Limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// Close implements GraphDriver.
func (m *MemoryDriver) Close(ctx context.Context) error {
	return nil
}

func (m *MemoryDriver) nodesByID(label string) (map[string]Record, error) {
	idProp, err := IDProperty(label)
	if err != nil {
		return nil, err
	}
	records, err := m.nodeRecords(label)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]Record, len(records))
	for _, rec := range records {
		if id, ok := AsString(rec[idProp]); ok {
			byID[id] = rec
		}
	}
	return byID, nil
}

func (m *MemoryDriver) nodeRecords(label string) ([]Record, error) {
	switch label {
	case LabelPlayer:
		out := make([]Record, 0, len(m.data.Players))
		for _, p := range m.data.Players {
			rec := Record{
				"player_id":   p.ID,
				"name":        p.Name,
				"nationality": p.Nationality,
				"position":    string(p.Position),
			}
			if p.BirthDate != nil {
				rec["birth_date"] = *p.BirthDate
			}
			if p.CurrentTeamID != "" {
				rec["current_team_id"] = p.CurrentTeamID
			}
			out = append(out, rec)
		}
		return out, nil
	case LabelTeam:
		out := make([]Record, 0, len(m.data.Teams))
		for _, t := range m.data.Teams {
			out = append(out, Record{
				"team_id":      t.ID,
				"name":         t.Name,
				"city":         t.City,
				"stadium":      t.Stadium,
				"founded_year": t.FoundedYear,
				"colors":       t.Colors,
				"nickname":     t.Nickname,
			})
		}
		return out, nil
	case LabelCompetition:
		out := make([]Record, 0, len(m.data.Competitions))
		for _, c := range m.data.Competitions {
			out = append(out, Record{
				"competition_id": c.ID,
				"name":           c.Name,
				"season":         c.Season,
				"type":           string(c.Type),
				"tier":           c.Tier,
				"country":        c.Country,
			})
		}
		return out, nil
	case LabelMatch:
		out := make([]Record, 0, len(m.data.Matches))
		for _, mt := range m.data.Matches {
			rec := Record{
				"match_id":     mt.ID,
				"date":         mt.Date,
				"home_team_id": mt.HomeTeamID,
				"away_team_id": mt.AwayTeamID,
				"status":       string(mt.Status),
			}
			if mt.HomeScore != nil {
				rec["home_score"] = *mt.HomeScore
			}
			if mt.AwayScore != nil {
				rec["away_score"] = *mt.AwayScore
			}
			if mt.CompetitionID != "" {
				rec["competition_id"] = mt.CompetitionID
			}
			if mt.Season != "" {
				rec["season"] = mt.Season
			}
			if mt.StadiumID != "" {
				rec["stadium_id"] = mt.StadiumID
			}
			if mt.Attendance > 0 {
				rec["attendance"] = mt.Attendance
			}
			out = append(out, rec)
		}
		return out, nil
	case LabelStadium:
		out := make([]Record, 0, len(m.data.Stadiums))
		for _, s := range m.data.Stadiums {
			out = append(out, Record{
				"stadium_id":  s.ID,
				"name":        s.Name,
				"city":        s.City,
				"capacity":    s.Capacity,
				"opened_year": s.OpenedYear,
			})
		}
		return out, nil
	case LabelCoach:
		out := make([]Record, 0, len(m.data.Coaches))
		for _, c := range m.data.Coaches {
			rec := Record{
				"coach_id":    c.ID,
				"name":        c.Name,
				"nationality": c.Nationality,
			}
			if c.BirthDate != nil {
				rec["birth_date"] = *c.BirthDate
			}
			if c.CurrentTeamID != "" {
				rec["current_team_id"] = c.CurrentTeamID
			}
			out = append(out, rec)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown node label %q", label)
}

func (m *MemoryDriver) relRecords(relType string) (startLabel, endLabel string, records []Record, err error) {
	switch relType {
	case RelPlaysFor:
		for _, mem := range m.data.Memberships {
			rec := Record{
				"start_id":  mem.PlayerID,
				"end_id":    mem.TeamID,
				"from_date": mem.Start,
			}
			if mem.End != nil {
				rec["to_date"] = *mem.End
			}
			if mem.Jersey > 0 {
				rec["jersey_number"] = mem.Jersey
			}
			records = append(records, rec)
		}
		return LabelPlayer, LabelTeam, records, nil
	case RelScoredIn:
		for _, g := range m.data.Goals {
			rec := Record{
				"start_id":  g.PlayerID,
				"end_id":    g.MatchID,
				"team_id":   g.TeamID,
				"minute":    g.Minute,
				"goal_type": string(g.Type),
			}
			if g.AssistPlayerID != "" {
				rec["assist_player_id"] = g.AssistPlayerID
			}
			records = append(records, rec)
		}
		return LabelPlayer, LabelMatch, records, nil
	case RelReceivedCard:
		for _, c := range m.data.Cards {
			records = append(records, Record{
				"start_id":  c.PlayerID,
				"end_id":    c.MatchID,
				"card_type": string(c.Type),
				"minute":    c.Minute,
			})
		}
		return LabelPlayer, LabelMatch, records, nil
	case RelPartOf:
		for _, mt := range m.data.Matches {
			if mt.CompetitionID == "" {
				continue
			}
			records = append(records, Record{
				"start_id": mt.ID,
				"end_id":   mt.CompetitionID,
			})
		}
		return LabelMatch, LabelCompetition, records, nil
	case RelTransferred:
		for _, tr := range m.data.Transfers {
			records = append(records, Record{
				"start_id":      tr.PlayerID,
				"end_id":        tr.ToTeamID,
				"from_team_id":  tr.FromTeamID,
				"transfer_date": tr.Date,
				"fee":           tr.Fee,
				"loan":          tr.Loan,
			})
		}
		return LabelPlayer, LabelTeam, records, nil
	}
	return "", "", nil, fmt.Errorf("unknown relationship type %q", relType)
}

func applyFilters(records []Record, filters Filters, limit int) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if !matchFilters(rec, filters) {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func matchFilters(rec Record, filters Filters) bool {
	for prop, pred := range filters {
		v, ok := rec[prop]
		if !ok {
			return false
		}
		if !matchPredicate(v, pred) {
			return false
		}
	}
	return true
}

func matchPredicate(v any, pred Predicate) bool {
	switch pred.Op {
	case OpContains:
		s, ok := AsString(v)
		want, wantOK := AsString(pred.Value)
		return ok && wantOK && strings.Contains(strings.ToLower(s), strings.ToLower(want))
	case OpEq:
		return compare(v, pred.Value) == 0
	case OpGte:
		return compare(v, pred.Value) >= 0
	case OpLte:
		return compare(v, pred.Value) <= 0
	}
	return false
}

// compare orders two record values of a common kind. Mismatched kinds order
// arbitrarily but consistently; filters only ever compare like with like.
func compare(a, b any) int {
	if at, ok := AsTime(a); ok {
		if bt, ok := AsTime(b); ok {
			return at.Compare(bt)
		}
	}
	if af, ok := AsFloat(a); ok {
		if bf, ok := AsFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}
	as, _ := AsString(a)
	bs, _ := AsString(b)
	return strings.Compare(as, bs)
}

var _ GraphDriver = (*MemoryDriver)(nil)
var _ GraphDriver = (*Neo4jDriver)(nil)
var _ GraphDriver = (*BreakerDriver)(nil)
