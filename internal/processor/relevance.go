package processor

import "strings"

// SearchKeywords 话题过滤关键词；子串匹配，不做词边界处理
var SearchKeywords = []string{
	"israel",
	"iran",
	"gaza",
	"hamas",
	"hezbollah",
	"idf",
	"nuclear",
	"sanctions",
	"tehran",
	"jerusalem",
	"tel aviv",
	"conflict",
	"military",
	"defense",
}

// IsRelevant 标题 + 摘要 + 正文拼接后小写，命中任意一个关键词即保留
func IsRelevant(title, description, content string) bool {
	searchText := strings.ToLower(title + " " + description + " " + content)
	for _, kw := range SearchKeywords {
		if strings.Contains(searchText, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
