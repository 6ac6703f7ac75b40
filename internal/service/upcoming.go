package service

import (
	"sort"
	"time"

	"EsportsSchedule/internal/mapping"
	"EsportsSchedule/internal/model"
)

// UndatedSortKey 没有开赛时间的比赛排在所有有时间的比赛之后
const UndatedSortKey = "9999-12-31T00:00:00Z"

var undatedSortTime = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// UpcomingPolicy 未开赛判定策略。两项都为 true 时宁可多展示也不丢数据
type UpcomingPolicy struct {
	KeepUndated     bool // 没有 start_time_utc 视为未开赛
	KeepUnparseable bool // start_time_utc 无法解析视为未开赛
}

func DefaultUpcomingPolicy() UpcomingPolicy {
	return UpcomingPolicy{KeepUndated: true, KeepUnparseable: true}
}

// IsUpcoming 开赛时间 >= now 即为未开赛
func (p UpcomingPolicy) IsUpcoming(m *model.Match, now time.Time) bool {
	if !m.HasStartTime() {
		return p.KeepUndated
	}
	ts, ok := mapping.ParseTimestamp(*m.StartTimeUTC)
	if !ok {
		return p.KeepUnparseable
	}
	return !ts.Before(now)
}

// FilterUpcoming 保持输入顺序，结果永不为 nil
func FilterUpcoming(matches []*model.Match, now time.Time, policy UpcomingPolicy) []*model.Match {
	out := make([]*model.Match, 0, len(matches))
	for _, m := range matches {
		if m == nil {
			continue
		}
		if policy.IsUpcoming(m, now) {
			out = append(out, m)
		}
	}
	return out
}

func sortTime(m *model.Match) time.Time {
	if !m.HasStartTime() {
		return undatedSortTime
	}
	ts, ok := mapping.ParseTimestamp(*m.StartTimeUTC)
	if !ok {
		return undatedSortTime
	}
	return ts
}

// SortMatches 按开赛时间升序原地排序，时间相同保持原顺序
func SortMatches(matches []*model.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return sortTime(matches[i]).Before(sortTime(matches[j]))
	})
}

// BuildSnapshot 排序并附上俱乐部名与生成时间，不修改入参切片
func BuildSnapshot(club string, matches []*model.Match, now time.Time) *model.Snapshot {
	sorted := make([]*model.Match, 0, len(matches))
	for _, m := range matches {
		if m != nil {
			sorted = append(sorted, m)
		}
	}
	SortMatches(sorted)
	return &model.Snapshot{
		Club:      club,
		UpdatedAt: mapping.FormatUTC(now),
		Matches:   sorted,
	}
}
