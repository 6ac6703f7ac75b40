package model

// SourceSiteLiquipedia 比赛来源站点名
const SourceSiteLiquipedia = "Liquipedia"

// Match 统一比赛记录（抹平 LPDB / Cargo 两种上游结构差异）
// 可缺省字段使用指针，缺省时序列化为 null，前端按 null 判断
type Match struct {
	ID           string      `json:"id"`             // {game}-{上游标识}，上游标识缺失时为 unknown
	Game         string      `json:"game"`           // 大写的游戏 slug
	Tournament   *string     `json:"tournament"`     // 赛事名称
	Stage        *string     `json:"stage"`          // 阶段/轮次，仅 LPDB 结构提供
	BestOf       interface{} `json:"bo"`             // BO 赛制，上游可能是字符串或数字
	Team         string      `json:"team"`           // 查询的俱乐部名称（原样透传）
	Opponent     *string     `json:"opponent"`       // 对手
	StartTimeUTC *string     `json:"start_time_utc"` // ISO-8601 UTC，以 Z 结尾
	Streams      Streams     `json:"streams"`
	Sources      []Source    `json:"sources"`
}

// Streams 直播链接，两个列表均已去重且保持首次出现顺序
type Streams struct {
	Twitch  []string `json:"twitch"`
	YouTube []string `json:"youtube"`
}

// Source 数据来源
type Source struct {
	Site string  `json:"site"`
	URL  *string `json:"url"`
}

// NewStreams 返回两个列表都非 nil 的 Streams，保证序列化为 [] 而不是 null
func NewStreams() Streams {
	return Streams{Twitch: []string{}, YouTube: []string{}}
}

// HasStartTime 是否带有开赛时间
func (m *Match) HasStartTime() bool {
	return m.StartTimeUTC != nil && *m.StartTimeUTC != ""
}
