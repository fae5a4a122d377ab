package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// JSON 多语言内容等键值 JSON 字段
type JSON map[string]interface{}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	raw, ok := rawJSONBytes(value)
	if !ok {
		*j = make(JSON)
		return nil
	}
	return json.Unmarshal(raw, j)
}

// Localized 按语言读取文本，缺失时依次回退到 zh-CN / en-US / 任意值
func (j JSON) Localized(locale string) string {
	if len(j) == 0 {
		return ""
	}
	for _, key := range []string{strings.TrimSpace(locale), "zh-CN", "en-US"} {
		if key == "" {
			continue
		}
		if text, ok := j[key].(string); ok && strings.TrimSpace(text) != "" {
			return text
		}
	}
	for _, value := range j {
		if text, ok := value.(string); ok && strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

// StringArray 字符串数组类型，用于存储 tags、images 等
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	raw, ok := rawJSONBytes(value)
	if !ok {
		*s = StringArray{}
		return nil
	}
	return json.Unmarshal(raw, s)
}

// rawJSONBytes 兼容驱动返回 []byte 或 string 的 JSON 列
func rawJSONBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []byte:
		if len(v) == 0 {
			return nil, false
		}
		return v, true
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, false
		}
		return []byte(v), true
	default:
		return nil, false
	}
}

func scanTypeError(target string, value interface{}) error {
	return fmt.Errorf("scan %s: unsupported type %T", target, value)
}
