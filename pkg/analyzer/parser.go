package analyzer

import "strings"

// 无标签兜底时 gist 保留的原文长度
const gistFallbackLength = 200

// Fields 从 LLM#1 自由文本中抽取出的命名字段，缺失的字段为空串
type Fields struct {
	Gist      string
	Sentiment string
	Tone      string
}

// ParseFields 按行扫描分析文本，尽力抽取 GIST / SENTIMENT / TONE
// 标签匹配不区分大小写，值为空时回落到下一行（标签独占一行的格式）
// 三个标签都没有时，取原文前 200 字符作为 gist
// 这是启发式抽取而非严格文法，任何输入都不报错
func ParseFields(text string) Fields {
	var f Fields
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if !strings.Contains(line, ":") {
			continue
		}
		upper := strings.ToUpper(line)
		switch {
		case strings.Contains(upper, "GIST"):
			f.Gist = labelValue(line, lines, i)
		case strings.Contains(upper, "SENTIMENT"):
			f.Sentiment = labelValue(line, lines, i)
		case strings.Contains(upper, "TONE"):
			f.Tone = labelValue(line, lines, i)
		}
	}

	if f.Gist == "" && f.Sentiment == "" && f.Tone == "" {
		f.Gist = truncate(text, gistFallbackLength)
	}
	return f
}

// labelValue 取冒号后的内容，为空则取下一行
func labelValue(line string, lines []string, i int) string {
	parts := strings.SplitN(line, ":", 2)
	v := strings.TrimSpace(parts[1])
	if v == "" && i+1 < len(lines) {
		v = strings.TrimSpace(lines[i+1])
	}
	return v
}

func truncate(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	return text[:maxLength] + "..."
}
