package common

import (
	"strconv"
	"strings"
)

// ParseFloat parses an optional float query parameter.
// 空文字や数値でない入力は「指定なし」として nil を返す。
func ParseFloat(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
