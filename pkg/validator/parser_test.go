package validator

import (
	"errors"
	"testing"

	dm "github.com/iWorld-y/news_analyzer/pkg/model"
)

const fencedResponse = "```json\n" + `{
  "verdict": "correct",
  "confidence": 0.9,
  "issues": [],
  "strengths": ["accurate summary"],
  "overall_assessment": "The analysis is sound."
}` + "\n```"

func TestParse_FencedJSON(t *testing.T) {
	record, err := Parse(fencedResponse)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if record.Verdict != dm.VerdictCorrect {
		t.Errorf("Verdict = %q, want %q", record.Verdict, dm.VerdictCorrect)
	}
	if record.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", record.Confidence)
	}
	if len(record.Strengths) != 1 || record.Strengths[0] != "accurate summary" {
		t.Errorf("Strengths = %v", record.Strengths)
	}
	if record.OverallAssessment != "The analysis is sound." {
		t.Errorf("OverallAssessment = %q", record.OverallAssessment)
	}
}

func TestParse_BareJSON(t *testing.T) {
	record, err := Parse(`{"verdict":"incorrect","confidence":0.3,"issues":["wrong sentiment"],"strengths":[],"overall_assessment":"Misreads the market."}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if record.Verdict != dm.VerdictIncorrect {
		t.Errorf("Verdict = %q", record.Verdict)
	}
	if len(record.Issues) != 1 {
		t.Errorf("Issues = %v", record.Issues)
	}
}

func TestParse_TruncatedJSON(t *testing.T) {
	_, err := Parse(`{"verdict": "correct", "confi`)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %T, want *ParseError", err)
	}
	if pe.Raw == "" {
		t.Errorf("ParseError.Raw is empty, want original response")
	}
}

func TestParse_TrailingComma(t *testing.T) {
	_, err := Parse(`{"verdict": "correct",}`)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %T, want *ParseError", err)
	}
}

// 形状之外的字段视为解析失败
func TestParse_UnknownField(t *testing.T) {
	_, err := Parse(`{"verdict":"correct","confidence":1,"issues":[],"strengths":[],"overall_assessment":"ok","extra":"nope"}`)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %T, want *ParseError", err)
	}
}

// JSON 对象之后还有内容同样失败
func TestParse_TrailingData(t *testing.T) {
	_, err := Parse(`{"verdict":"correct","confidence":1,"issues":[],"strengths":[],"overall_assessment":"ok"} extra prose`)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %T, want *ParseError", err)
	}
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse("")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse(\"\") error = %T, want *ParseError", err)
	}
}
