package model

// SourceType 上游数据源类型枚举
type SourceType string

const (
	SourceLPDB  SourceType = "lpdb"  // LPDB 结构化 API（需要 API key）
	SourceCargo SourceType = "cargo" // MediaWiki cargoquery（无需 key，Valorant wiki 未开放）
	SourceDemo  SourceType = "demo"  // 本地样例文件
)
