package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	dm "github.com/iWorld-y/news_analyzer/pkg/model"
)

// ParseError 模型输出在去除围栏后仍不是合法 JSON
// 保留原始文本便于排查
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse validation response as JSON: %v\nresponse: %s", e.Err, e.Raw)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse 去除至多一层 markdown 代码围栏后严格解析校验结论
// 形状之外的字段视为解析失败
func Parse(raw string) (*dm.ValidationRecord, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	dec := json.NewDecoder(strings.NewReader(clean))
	dec.DisallowUnknownFields()

	var record dm.ValidationRecord
	if err := dec.Decode(&record); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	if dec.More() {
		return nil, &ParseError{Raw: raw, Err: fmt.Errorf("trailing data after JSON object")}
	}
	return &record, nil
}
