package mapping

import (
	"fmt"
	"strings"

	"EsportsSchedule/internal/model"
)

const unknownID = "unknown"

// LPDB（结构化查询 API）各字段的候选表，按优先级排列
var (
	lpdbIDFields = FieldTable{
		P("id"),
		P("slug"),
		P("match_id"),
		P("match2id"),
		P("pagename"),
	}
	lpdbTournamentFields = FieldTable{
		P("tournament", "name"),
		P("event", "name"),
		P("tournament"),
		P("event"),
		P("tickername"),
	}
	lpdbStageFields = FieldTable{
		P("stage"),
		P("round"),
	}
	lpdbBestOfFields = FieldTable{
		P("bo").Then(AsScalar),
		P("bestof").Then(AsScalar),
		P("format").Then(AsScalar),
	}
	lpdbStartFields = FieldTable{
		P("m.utcStartTime").Then(AsString),
		P("utcStartTime").Then(AsString),
		P("MS.DateTime_UTC").Then(AsString),
		P("DateTime_UTC").Then(AsString),
		P("date").Then(AsString),
		P("start_time").Then(AsString),
	}
	lpdbTeam1Fields = FieldTable{
		P("opponent1", "name"),
		P("opponent1"),
		P("team1", "name"),
		P("team1"),
		P("match2opponents").Then(NthName(0)),
		P("opponents").Then(NthName(0)),
	}
	lpdbTeam2Fields = FieldTable{
		P("opponent2", "name"),
		P("opponent2"),
		P("team2", "name"),
		P("team2"),
		P("match2opponents").Then(NthName(1)),
		P("opponents").Then(NthName(1)),
	}
	// 上游直接给出的对手字段，仅在双方队名都缺失时使用
	lpdbOpponentFields = FieldTable{
		P("opponent", "name"),
		P("opponent"),
	}
	lpdbURLFields = FieldTable{
		P("url"),
		P("match_page"),
		P("page"),
	}
)

// MapLPDBMatch 把一条 LPDB 记录映射为统一比赛记录。
// 缺字段时对应字段为 nil，不会丢弃记录也不会报错，是否保留由调用方决定
func MapLPDBMatch(game string, raw map[string]interface{}, club string) *model.Match {
	matchID := unknownID
	if id := lpdbIDFields.String(raw); id != nil {
		matchID = *id
	}

	team1 := lpdbTeam1Fields.String(raw)
	team2 := lpdbTeam2Fields.String(raw)
	opponent := ResolveOpponent(team1, team2, club)
	if opponent == nil {
		opponent = lpdbOpponentFields.String(raw)
	}

	return &model.Match{
		ID:           matchKey(game, matchID),
		Game:         strings.ToUpper(game),
		Tournament:   lpdbTournamentFields.String(raw),
		Stage:        lpdbStageFields.String(raw),
		BestOf:       lpdbBestOfFields.Resolve(raw),
		Team:         club,
		Opponent:     opponent,
		StartTimeUTC: ToUTCISO(lpdbStartFields.Resolve(raw)),
		Streams:      StreamsFromLPDB(raw),
		Sources:      []model.Source{{Site: model.SourceSiteLiquipedia, URL: lpdbURLFields.String(raw)}},
	}
}

// ResolveOpponent 选出不是本俱乐部的一方：
// team1 是俱乐部取 team2；team2 是俱乐部取 team1；都不是（上游数据有歧义）时优先 team2，其次 team1
func ResolveOpponent(team1, team2 *string, club string) *string {
	switch {
	case team1 != nil && *team1 == club:
		return team2
	case team2 != nil && *team2 == club:
		return team1
	case team2 != nil:
		return team2
	default:
		return team1
	}
}

func matchKey(game, upstreamID string) string {
	return fmt.Sprintf("%s-%s", game, upstreamID)
}
