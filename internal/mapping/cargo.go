package mapping

import (
	"strings"

	"EsportsSchedule/internal/model"
)

// LiquipediaBaseURL Cargo 结构没有比赛链接，用页面名拼接
const LiquipediaBaseURL = "https://liquipedia.net/"

// cargoTitleKey cargoquery 每行的包裹字段
const cargoTitleKey = "title"

// Cargo 字段候选表。上游有两种已知表结构：Liquipedia 的 Matches（m. 前缀）和
// MatchSchedule（MS. 前缀），每种又可能不带前缀返回
var (
	cargoPageFields = FieldTable{
		P("m.pagename"),
		P("pagename"),
		P("MS.OverviewPage"),
		P("OverviewPage"),
	}
	cargoStartFields = FieldTable{
		P("m.utcStartTime").Then(AsString),
		P("utcStartTime").Then(AsString),
		P("MS.DateTime_UTC").Then(AsString),
		P("DateTime_UTC").Then(AsString),
		P("DateTime UTC").Then(AsString),
	}
	cargoTeam1Fields = FieldTable{
		P("m.opponent1"),
		P("opponent1"),
		P("MS.Team1"),
		P("Team1"),
	}
	cargoTeam2Fields = FieldTable{
		P("m.opponent2"),
		P("opponent2"),
		P("MS.Team2"),
		P("Team2"),
	}
	cargoTournamentFields = FieldTable{
		P("m.tournament"),
		P("tournament"),
		P("MS.Tournament"),
		P("Tournament"),
	}
	cargoBestOfFields = FieldTable{
		P("m.bestof").Then(AsScalar),
		P("bestof").Then(AsScalar),
		P("MS.BestOf").Then(AsScalar),
		P("BestOf").Then(AsScalar),
	}
)

// cargoGetter 先在行的第一层找字段，行里没有该 key 时再到 title 包裹对象里找
func cargoGetter(row map[string]interface{}) Getter {
	title, _ := row[cargoTitleKey].(map[string]interface{})
	return func(path ...string) interface{} {
		if len(path) == 0 {
			return nil
		}
		field := strings.Join(path, ".")
		if v, ok := row[field]; ok {
			return v
		}
		if title == nil {
			return nil
		}
		return title[field]
	}
}

// MapCargoMatch 把一条 cargoquery 结果行映射为统一比赛记录，字段可以平铺也可以在 title 下。
// 该结构不提供 stage，始终为 nil；缺字段不报错
func MapCargoMatch(game string, row map[string]interface{}, club string) *model.Match {
	get := cargoGetter(row)

	page := cargoPageFields.StringWith(get)
	matchID := unknownID
	var sourceURL *string
	if page != nil {
		matchID = *page
		sourceURL = strPtr(LiquipediaBaseURL + *page)
	}

	team1 := cargoTeam1Fields.StringWith(get)
	team2 := cargoTeam2Fields.StringWith(get)

	return &model.Match{
		ID:           matchKey(game, matchID),
		Game:         strings.ToUpper(game),
		Tournament:   cargoTournamentFields.StringWith(get),
		Stage:        nil,
		BestOf:       cargoBestOfFields.ResolveWith(get),
		Team:         club,
		Opponent:     ResolveOpponent(team1, team2, club),
		StartTimeUTC: ToUTCISO(cargoStartFields.ResolveWith(get)),
		Streams:      StreamsFromCargo(row),
		Sources:      []model.Source{{Site: model.SourceSiteLiquipedia, URL: sourceURL}},
	}
}
