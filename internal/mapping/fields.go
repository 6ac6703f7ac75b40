package mapping

import (
	"math"
	"strconv"
	"strings"
)

// SafeGet 按 key 路径逐层取值，任一层缺失或当前值不是 map 时返回 nil，不会 panic
func SafeGet(v interface{}, path ...string) interface{} {
	cur := v
	for _, key := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur, ok = m[key]
		if !ok {
			return nil
		}
	}
	return cur
}

// SafeGetOr 同 SafeGet，结果为 nil 时返回 def
func SafeGetOr(v interface{}, def interface{}, path ...string) interface{} {
	if r := SafeGet(v, path...); r != nil {
		return r
	}
	return def
}

// Present 判断取到的值是否“有值”：nil、空串、false、0、空列表、空 map 都视为缺失，回退链继续往下找
func Present(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	default:
		return true
	}
}

// Transform 对候选值做转换，返回 false 表示该候选不可用
type Transform func(v interface{}) (interface{}, bool)

// FieldSpec 一个候选字段：路径 + 可选转换
type FieldSpec struct {
	Path      []string
	Transform Transform
}

// P 构造候选字段
func P(path ...string) FieldSpec {
	return FieldSpec{Path: path}
}

// Then 给候选字段挂上转换
func (s FieldSpec) Then(t Transform) FieldSpec {
	s.Transform = t
	return s
}

// Getter 按路径取值的函数，Cargo 行需要“先平铺后 title”的查找方式，所以取值方式可替换
type Getter func(path ...string) interface{}

// FieldTable 有序候选字段表，第一个有值的候选胜出
type FieldTable []FieldSpec

// Resolve 在嵌套 map 上按表解析
func (t FieldTable) Resolve(raw interface{}) interface{} {
	return t.ResolveWith(func(path ...string) interface{} {
		return SafeGet(raw, path...)
	})
}

// ResolveWith 使用自定义取值函数按表解析，全部缺失时返回 nil
func (t FieldTable) ResolveWith(get Getter) interface{} {
	for _, spec := range t {
		v := get(spec.Path...)
		if !Present(v) {
			continue
		}
		if spec.Transform != nil {
			var ok bool
			v, ok = spec.Transform(v)
			if !ok || !Present(v) {
				continue
			}
		}
		return v
	}
	return nil
}

// String 按表解析为文本，非文本候选会被跳过
func (t FieldTable) String(raw interface{}) *string {
	return t.StringWith(func(path ...string) interface{} {
		return SafeGet(raw, path...)
	})
}

// StringWith 同 String，使用自定义取值函数
func (t FieldTable) StringWith(get Getter) *string {
	texts := make(FieldTable, len(t))
	for i, spec := range t {
		texts[i] = spec
		if spec.Transform == nil {
			texts[i].Transform = AsText
		}
	}
	v := texts.ResolveWith(get)
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// AsText 字符串原样返回，数字格式化为字符串（上游 id 可能是数字），其余类型不可用
func AsText(v interface{}) (interface{}, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return nil, false
	}
}

// AsString 只接受字符串
func AsString(v interface{}) (interface{}, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsScalar 只接受字符串或数字（BO 赛制上游两种都有）
func AsScalar(v interface{}) (interface{}, bool) {
	switch v.(type) {
	case string, float64, int, int64:
		return v, true
	default:
		return nil, false
	}
}

// NthName 从对象列表中取第 n 个元素的 name（LPDB 的 match2opponents / opponents）
func NthName(n int) Transform {
	return func(v interface{}) (interface{}, bool) {
		list, ok := v.([]interface{})
		if !ok || n < 0 || n >= len(list) {
			return nil, false
		}
		return AsText(SafeGet(list[n], "name"))
	}
}

func strPtr(s string) *string {
	return &s
}
