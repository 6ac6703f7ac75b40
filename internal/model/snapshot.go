package model

import "time"

// Snapshot 一次抓取周期生成的完整赛程快照，整体替换，不做增量合并
type Snapshot struct {
	Club      string   `json:"club"`
	UpdatedAt string   `json:"updated_at"` // 生成时间，ISO-8601 UTC
	Matches   []*Match `json:"matches"`    // 按 start_time_utc 升序，无时间的排最后
}

// GameResult 单个游戏在一次抓取周期中的结果（用于日志与刷新接口返回）
type GameResult struct {
	Game    string `json:"game"`
	Fetched int    `json:"fetched"` // 归一化后的比赛数
	Kept    int    `json:"kept"`    // 俱乐部过滤 + 未开赛过滤后保留的比赛数
	Error   string `json:"error,omitempty"`
}

// CycleReport 一次抓取周期的汇总
type CycleReport struct {
	RunID    string        `json:"run_id"`
	Snapshot *Snapshot     `json:"-"`
	Games    []GameResult  `json:"games"`
	Elapsed  time.Duration `json:"elapsed"`
}
