package service

import (
	"net/url"
	"strings"
)

// ExtractCardNo 从二维码内容提取卡号
// 支持两种形态：激活链接（取路径最后一段）与裸卡号。
func ExtractCardNo(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	if strings.Contains(trimmed, "://") {
		parsed, err := url.Parse(trimmed)
		if err != nil {
			return "", false
		}
		segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		last := strings.TrimSpace(segments[len(segments)-1])
		if last == "" {
			return "", false
		}
		return last, true
	}

	if strings.ContainsAny(trimmed, " \t\n") {
		return "", false
	}
	return trimmed, true
}
