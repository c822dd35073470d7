package validator

import "strings"

// IsAllowedContentType 检查内容类型是否在允许列表中
// 忽略 "image/png; charset=..." 之类的参数部分
func IsAllowedContentType(contentType string, allowed []string) bool {
	mediaType := contentType
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	for _, t := range allowed {
		if mediaType == strings.ToLower(strings.TrimSpace(t)) {
			return true
		}
	}
	return false
}
