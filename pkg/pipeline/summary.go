package pipeline

import dm "github.com/iWorld-y/news_analyzer/pkg/model"

// Summary 批次汇总统计
type Summary struct {
	Total            int
	Analyzed         int // analyzed 或 validated
	Validated        int
	Correct          int
	PartiallyCorrect int
	Incorrect        int
}

// Summarize 批次结束后对结果列表做单次扫描统计
func Summarize(results []*dm.PipelineResult) Summary {
	s := Summary{Total: len(results)}

	for _, r := range results {
		switch r.Status {
		case dm.StatusAnalyzed:
			s.Analyzed++
		case dm.StatusValidated:
			s.Analyzed++
			s.Validated++
		}

		if r.Validation == nil {
			continue
		}
		switch r.Validation.Verdict {
		case dm.VerdictCorrect:
			s.Correct++
		case dm.VerdictPartiallyCorrect:
			s.PartiallyCorrect++
		case dm.VerdictIncorrect:
			s.Incorrect++
		}
	}
	return s
}
