package mapping

import (
	"sort"
	"strings"
	"unicode"

	"EsportsSchedule/internal/model"
)

// streamCollector 按首次出现顺序收集并去重
type streamCollector struct {
	streams model.Streams
	seenTw  map[string]struct{}
	seenYt  map[string]struct{}
}

func newStreamCollector() *streamCollector {
	return &streamCollector{
		streams: model.NewStreams(),
		seenTw:  make(map[string]struct{}),
		seenYt:  make(map[string]struct{}),
	}
}

func (c *streamCollector) addTwitch(url string) {
	if url == "" {
		return
	}
	if _, ok := c.seenTw[url]; ok {
		return
	}
	c.seenTw[url] = struct{}{}
	c.streams.Twitch = append(c.streams.Twitch, url)
}

func (c *streamCollector) addYouTube(url string) {
	if url == "" {
		return
	}
	if _, ok := c.seenYt[url]; ok {
		return
	}
	c.seenYt[url] = struct{}{}
	c.streams.YouTube = append(c.streams.YouTube, url)
}

// classify 按子串归类；两个平台分别判断，同时命中时两边都收录，都不命中直接丢弃
func (c *streamCollector) classify(url string) {
	url = strings.TrimSpace(url)
	if strings.Contains(url, "twitch.tv") {
		c.addTwitch(url)
	}
	if strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be") {
		c.addYouTube(url)
	}
}

// stringList 接受单个字符串或字符串列表，其余元素忽略
func stringList(v interface{}) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// StreamsFromLPDB 从 LPDB 结构中提取直播链接：
// streams.{twitch,youtube} 已结构化的直接收录；links（列表或 map）和单个 stream 字段按子串归类
func StreamsFromLPDB(raw interface{}) model.Streams {
	c := newStreamCollector()

	if structured, ok := SafeGet(raw, "streams").(map[string]interface{}); ok {
		for _, url := range stringList(structured["twitch"]) {
			c.addTwitch(url)
		}
		for _, url := range stringList(structured["youtube"]) {
			c.addYouTube(url)
		}
	}

	switch links := SafeGet(raw, "links").(type) {
	case []interface{}:
		for _, url := range stringList(links) {
			c.classify(url)
		}
	case map[string]interface{}:
		keys := make([]string, 0, len(links))
		for k := range links {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			for _, url := range stringList(links[k]) {
				c.classify(url)
			}
		}
	}

	if single, ok := SafeGet(raw, "stream").(string); ok {
		c.classify(single)
	}

	return c.streams
}

// cargoStreamFields Cargo 行中直播字段的别名
var cargoStreamFields = FieldTable{
	P("m.stream"),
	P("stream"),
	P("m.streams"),
	P("streams"),
	P("MS.Stream"),
	P("Stream"),
}

// StreamsFromCargo 从 Cargo 行的自由文本直播字段提取链接，文本按逗号和空白切分
func StreamsFromCargo(row map[string]interface{}) model.Streams {
	c := newStreamCollector()
	text := cargoStreamFields.StringWith(cargoGetter(row))
	if text == nil {
		return c.streams
	}
	tokens := strings.FieldsFunc(*text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, token := range tokens {
		c.classify(token)
	}
	return c.streams
}
