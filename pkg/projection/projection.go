// Package projection maps raw graph records onto the typed entities in
// pkg/types. Missing optional fields get documented defaults; records missing
// required fields (identifier, name) are dropped and logged as data-quality
// warnings rather than failing the whole result set. Entities reached through
// multiple relationship paths are deduplicated by identifier.
package projection

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/futgraph/futgraph/pkg/driver"
	"github.com/futgraph/futgraph/pkg/types"
)

var errMissingRequired = errors.New("record missing required field")

// Projector converts driver records into entity values.
type Projector struct {
	logger *slog.Logger
}

// New creates a Projector. A nil logger discards data-quality warnings.
func New(logger *slog.Logger) *Projector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Projector{logger: logger}
}

func (p *Projector) drop(kind string, rec driver.Record, err error) {
	p.logger.Warn("dropping malformed graph record", "kind", kind, "error", err, "record", map[string]any(rec))
}

// Players projects node records into players, deduplicated by identifier.
func (p *Projector) Players(records []driver.Record) []types.Player {
	out := make([]types.Player, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		player, err := p.Player(rec)
		if err != nil {
			p.drop("player", rec, err)
			continue
		}
		if seen[player.ID] {
			continue
		}
		seen[player.ID] = true
		out = append(out, player)
	}
	return out
}

// Player projects a single node record.
func (p *Projector) Player(rec driver.Record) (types.Player, error) {
	id, ok := driver.AsString(rec["player_id"])
	if !ok || id == "" {
		return types.Player{}, errMissingRequired
	}
	name, ok := driver.AsString(rec["name"])
	if !ok || name == "" {
		return types.Player{}, errMissingRequired
	}

	player := types.Player{ID: id, Name: name, Position: types.UnknownPosition}
	if nat, ok := driver.AsString(rec["nationality"]); ok {
		player.Nationality = nat
	}
	if pos, ok := driver.AsString(rec["position"]); ok {
		player.Position = types.ParsePosition(pos)
	}
	if birth, ok := driver.AsTime(rec["birth_date"]); ok {
		player.BirthDate = &birth
	}
	if team, ok := driver.AsString(rec["current_team_id"]); ok {
		player.CurrentTeamID = team
	}
	return player, nil
}

// Teams projects node records into teams, deduplicated by identifier.
func (p *Projector) Teams(records []driver.Record) []types.Team {
	out := make([]types.Team, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		team, err := p.Team(rec)
		if err != nil {
			p.drop("team", rec, err)
			continue
		}
		if seen[team.ID] {
			continue
		}
		seen[team.ID] = true
		out = append(out, team)
	}
	return out
}

// Team projects a single node record.
func (p *Projector) Team(rec driver.Record) (types.Team, error) {
	id, ok := driver.AsString(rec["team_id"])
	if !ok || id == "" {
		return types.Team{}, errMissingRequired
	}
	name, ok := driver.AsString(rec["name"])
	if !ok || name == "" {
		return types.Team{}, errMissingRequired
	}

	team := types.Team{ID: id, Name: name}
	if city, ok := driver.AsString(rec["city"]); ok {
		team.City = city
	}
	if stadium, ok := driver.AsString(rec["stadium"]); ok {
		team.Stadium = stadium
	}
	if founded, ok := driver.AsInt(rec["founded_year"]); ok {
		team.FoundedYear = founded
	}
	if colors, ok := driver.AsString(rec["colors"]); ok {
		team.Colors = colors
	}
	if nick, ok := driver.AsString(rec["nickname"]); ok {
		team.Nickname = nick
	}
	return team, nil
}

// Competitions projects node records into competitions, deduplicated by
// (identifier, season) since each season is its own edition.
func (p *Projector) Competitions(records []driver.Record) []types.Competition {
	out := make([]types.Competition, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		comp, err := p.Competition(rec)
		if err != nil {
			p.drop("competition", rec, err)
			continue
		}
		key := comp.ID + "\x00" + comp.Season
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, comp)
	}
	return out
}

// Competition projects a single node record.
func (p *Projector) Competition(rec driver.Record) (types.Competition, error) {
	id, ok := driver.AsString(rec["competition_id"])
	if !ok || id == "" {
		return types.Competition{}, errMissingRequired
	}
	name, ok := driver.AsString(rec["name"])
	if !ok || name == "" {
		return types.Competition{}, errMissingRequired
	}

	comp := types.Competition{ID: id, Name: name}
	if season, ok := driver.AsString(rec["season"]); ok {
		comp.Season = season
	}
	if typ, ok := driver.AsString(rec["type"]); ok {
		comp.Type = types.CompetitionType(typ)
	}
	if tier, ok := driver.AsInt(rec["tier"]); ok {
		comp.Tier = tier
	}
	if country, ok := driver.AsString(rec["country"]); ok {
		comp.Country = country
	}
	return comp, nil
}

// Matches projects node records into matches, deduplicated by identifier.
func (p *Projector) Matches(records []driver.Record) []types.Match {
	out := make([]types.Match, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		match, err := p.Match(rec)
		if err != nil {
			p.drop("match", rec, err)
			continue
		}
		if seen[match.ID] {
			continue
		}
		seen[match.ID] = true
		out = append(out, match)
	}
	return out
}

// Match projects a single node record. A missing status defaults to Completed
// when both scores are present and Scheduled otherwise.
func (p *Projector) Match(rec driver.Record) (types.Match, error) {
	id, ok := driver.AsString(rec["match_id"])
	if !ok || id == "" {
		return types.Match{}, errMissingRequired
	}
	home, ok := driver.AsString(rec["home_team_id"])
	if !ok || home == "" {
		return types.Match{}, errMissingRequired
	}
	away, ok := driver.AsString(rec["away_team_id"])
	if !ok || away == "" {
		return types.Match{}, errMissingRequired
	}

	match := types.Match{ID: id, HomeTeamID: home, AwayTeamID: away}
	if date, ok := driver.AsTime(rec["date"]); ok {
		match.Date = date
	}
	if hs, ok := driver.AsInt(rec["home_score"]); ok {
		match.HomeScore = &hs
	}
	if as, ok := driver.AsInt(rec["away_score"]); ok {
		match.AwayScore = &as
	}
	if comp, ok := driver.AsString(rec["competition_id"]); ok {
		match.CompetitionID = comp
	}
	if season, ok := driver.AsString(rec["season"]); ok {
		match.Season = season
	}
	if stadium, ok := driver.AsString(rec["stadium_id"]); ok {
		match.StadiumID = stadium
	}
	if att, ok := driver.AsInt(rec["attendance"]); ok {
		match.Attendance = att
	}

	if status, ok := driver.AsString(rec["status"]); ok {
		match.Status = types.MatchStatus(status)
	} else if match.HomeScore != nil && match.AwayScore != nil {
		match.Status = types.MatchCompleted
	} else {
		match.Status = types.MatchScheduled
	}
	if err := match.Validate(); err != nil {
		return types.Match{}, err
	}
	return match, nil
}

// Memberships projects PLAYS_FOR relationship records. Records without a
// start date are dropped; an absent to_date means the stint is ongoing.
// Duplicate (player, team, start) tuples reached via different paths collapse
// to one.
func (p *Projector) Memberships(records []driver.Record) []types.Membership {
	out := make([]types.Membership, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		mem, err := p.Membership(rec)
		if err != nil {
			p.drop("membership", rec, err)
			continue
		}
		key := mem.PlayerID + "\x00" + mem.TeamID + "\x00" + mem.Start.Format(time.RFC3339)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, mem)
	}
	return out
}

// Membership projects a single PLAYS_FOR record.
func (p *Projector) Membership(rec driver.Record) (types.Membership, error) {
	playerID, ok := driver.AsString(rec["start_id"])
	if !ok || playerID == "" {
		return types.Membership{}, errMissingRequired
	}
	teamID, ok := driver.AsString(rec["end_id"])
	if !ok || teamID == "" {
		return types.Membership{}, errMissingRequired
	}
	start, ok := driver.AsTime(rec["from_date"])
	if !ok {
		return types.Membership{}, errMissingRequired
	}

	mem := types.Membership{PlayerID: playerID, TeamID: teamID, Start: start}
	if end, ok := driver.AsTime(rec["to_date"]); ok {
		mem.End = &end
	}
	if jersey, ok := driver.AsInt(rec["jersey_number"]); ok {
		mem.Jersey = jersey
	}
	return mem, nil
}

// Goals projects SCORED_IN relationship records. A missing goal type defaults
// to open play.
func (p *Projector) Goals(records []driver.Record) []types.GoalEvent {
	out := make([]types.GoalEvent, 0, len(records))
	for _, rec := range records {
		playerID, ok := driver.AsString(rec["start_id"])
		if !ok || playerID == "" {
			p.drop("goal", rec, errMissingRequired)
			continue
		}
		matchID, ok := driver.AsString(rec["end_id"])
		if !ok || matchID == "" {
			p.drop("goal", rec, errMissingRequired)
			continue
		}

		goal := types.GoalEvent{PlayerID: playerID, MatchID: matchID, Type: types.OpenPlayGoal}
		if teamID, ok := driver.AsString(rec["team_id"]); ok {
			goal.TeamID = teamID
		}
		if minute, ok := driver.AsInt(rec["minute"]); ok {
			goal.Minute = minute
		}
		if typ, ok := driver.AsString(rec["goal_type"]); ok && typ != "" {
			goal.Type = types.GoalType(typ)
		}
		if assist, ok := driver.AsString(rec["assist_player_id"]); ok {
			goal.AssistPlayerID = assist
		}
		out = append(out, goal)
	}
	return out
}

// Cards projects RECEIVED_CARD relationship records.
func (p *Projector) Cards(records []driver.Record) []types.CardEvent {
	out := make([]types.CardEvent, 0, len(records))
	for _, rec := range records {
		playerID, ok := driver.AsString(rec["start_id"])
		if !ok || playerID == "" {
			p.drop("card", rec, errMissingRequired)
			continue
		}
		matchID, ok := driver.AsString(rec["end_id"])
		if !ok || matchID == "" {
			p.drop("card", rec, errMissingRequired)
			continue
		}

		card := types.CardEvent{PlayerID: playerID, MatchID: matchID}
		if typ, ok := driver.AsString(rec["card_type"]); ok {
			card.Type = types.CardType(typ)
		}
		if minute, ok := driver.AsInt(rec["minute"]); ok {
			card.Minute = minute
		}
		out = append(out, card)
	}
	return out
}

// Transfers projects TRANSFERRED_TO relationship records.
func (p *Projector) Transfers(records []driver.Record) []types.Transfer {
	out := make([]types.Transfer, 0, len(records))
	for _, rec := range records {
		playerID, ok := driver.AsString(rec["start_id"])
		if !ok || playerID == "" {
			p.drop("transfer", rec, errMissingRequired)
			continue
		}
		toTeam, ok := driver.AsString(rec["end_id"])
		if !ok || toTeam == "" {
			p.drop("transfer", rec, errMissingRequired)
			continue
		}

		tr := types.Transfer{PlayerID: playerID, ToTeamID: toTeam}
		if from, ok := driver.AsString(rec["from_team_id"]); ok {
			tr.FromTeamID = from
		}
		if date, ok := driver.AsTime(rec["transfer_date"]); ok {
			tr.Date = date
		}
		if fee, ok := driver.AsFloat(rec["fee"]); ok {
			tr.Fee = fee
		}
		if loan, ok := driver.AsBool(rec["loan"]); ok {
			tr.Loan = loan
		}
		out = append(out, tr)
	}
	return out
}
