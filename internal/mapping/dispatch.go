package mapping

import (
	"fmt"

	"EsportsSchedule/internal/model"

	"github.com/bytedance/sonic"
)

// PayloadKind 上游响应结构类型
type PayloadKind string

const (
	KindEmpty PayloadKind = "empty" // 空响应或无法识别的结构
	KindLPDB  PayloadKind = "lpdb"  // 结构化查询 API：{result|results|matches: [...]} 或裸列表
	KindCargo PayloadKind = "cargo" // wiki cargoquery：{cargoquery: [{title: {...}}]}
)

// Payload 按结构识别后的响应（tagged variant），Items 为待映射的原始记录
type Payload struct {
	Kind  PayloadKind
	Key   string // 命中的顶层 key，裸列表时为空
	Items []interface{}
}

// lpdbKeys LPDB 结构的候选 key，按优先级排列
var lpdbKeys = []string{"result", "results", "matches"}

const cargoKey = "cargoquery"

// payloadDecoder 尝试把响应识别为某一种结构
type payloadDecoder func(raw interface{}) (Payload, bool)

// payloadDecoders 识别顺序固定，第一个成功的结构胜出
var payloadDecoders = []payloadDecoder{
	decodeLPDBObject,
	decodeCargoObject,
	decodeLPDBEmptyObject,
	decodeBareList,
}

// DecodePayload 按固定优先级识别响应结构；都不匹配（含 nil / 空对象）时返回 KindEmpty
func DecodePayload(raw interface{}) Payload {
	if !Present(raw) {
		return Payload{Kind: KindEmpty}
	}
	for _, decode := range payloadDecoders {
		if p, ok := decode(raw); ok {
			return p
		}
	}
	return Payload{Kind: KindEmpty}
}

// decodeLPDBObject 对象中某个 LPDB key 下有非空列表
func decodeLPDBObject(raw interface{}) (Payload, bool) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return Payload{}, false
	}
	for _, key := range lpdbKeys {
		if items, ok := obj[key].([]interface{}); ok && len(items) > 0 {
			return Payload{Kind: KindLPDB, Key: key, Items: items}, true
		}
	}
	return Payload{}, false
}

func decodeCargoObject(raw interface{}) (Payload, bool) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return Payload{}, false
	}
	items, ok := obj[cargoKey].([]interface{})
	if !ok {
		return Payload{}, false
	}
	return Payload{Kind: KindCargo, Key: cargoKey, Items: items}, true
}

// decodeLPDBEmptyObject LPDB key 存在但列表为空，例如 {"matches": []}
func decodeLPDBEmptyObject(raw interface{}) (Payload, bool) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return Payload{}, false
	}
	for _, key := range lpdbKeys {
		if items, ok := obj[key].([]interface{}); ok {
			return Payload{Kind: KindLPDB, Key: key, Items: items}, true
		}
	}
	return Payload{}, false
}

func decodeBareList(raw interface{}) (Payload, bool) {
	items, ok := raw.([]interface{})
	if !ok {
		return Payload{}, false
	}
	return Payload{Kind: KindLPDB, Items: items}, true
}

// NormalizeResponse 识别响应结构并逐条映射为统一比赛记录。
// 无法识别的结构返回空列表；列表中不是对象的元素直接跳过
func NormalizeResponse(game string, raw interface{}, club string) []*model.Match {
	payload := DecodePayload(raw)
	matches := make([]*model.Match, 0, len(payload.Items))
	for _, item := range payload.Items {
		record, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		switch payload.Kind {
		case KindLPDB:
			matches = append(matches, MapLPDBMatch(game, record, club))
		case KindCargo:
			matches = append(matches, MapCargoMatch(game, record, club))
		}
	}
	return matches
}

// DecodeJSON 把上游响应体解析为无类型结构（对象为 map[string]interface{}，数字为 float64）
func DecodeJSON(body []byte) (interface{}, error) {
	var raw interface{}
	if len(body) == 0 {
		return nil, nil
	}
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("解析上游JSON失败: %w", err)
	}
	return raw, nil
}
