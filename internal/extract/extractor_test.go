package extract

import (
	"strings"
	"testing"
)

func TestExtract_NoDirectives(t *testing.T) {
	in := "  Just a normal answer with {braces} and \"quotes\".  "
	calls, residual, report := Extract(in)
	if len(calls) != 0 {
		t.Fatalf("expected 0 calls, got %d", len(calls))
	}
	if residual != strings.TrimSpace(in) {
		t.Errorf("residual changed: %q", residual)
	}
	if report.Candidates != 0 || report.Parsed != 0 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestExtract_SingleDirective(t *testing.T) {
	in := `Let me compute that. {"tool": "calculator", "expression": "2 + 2"} One moment.`
	calls, residual, report := Extract(in)
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if calls[0].Name != "calculator" {
		t.Errorf("expected name calculator, got %q", calls[0].Name)
	}
	if calls[0].ID == "" {
		t.Error("expected non-empty id")
	}
	if got := calls[0].Arguments["expression"]; got != "2 + 2" {
		t.Errorf("unexpected arguments: %v", calls[0].Arguments)
	}
	if _, ok := calls[0].Arguments["tool"]; ok {
		t.Error("tool key must not appear in arguments")
	}
	if residual != "Let me compute that.  One moment." {
		t.Errorf("unexpected residual: %q", residual)
	}
	if report.Candidates != 1 || report.Parsed != 1 || report.Malformed != 0 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestExtract_MultipleDirectivesInOrder(t *testing.T) {
	in := `First: {"tool": "calculator", "expression": "1+1"} then ` +
		`{"tool": "get_current_time", "timezone": "UTC"} and finally ` +
		`{"tool": "search_definition", "term": "api"} done.`
	calls, residual, _ := Extract(in)
	if len(calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", len(calls))
	}
	want := []string{"calculator", "get_current_time", "search_definition"}
	for i, name := range want {
		if calls[i].Name != name {
			t.Errorf("call %d: expected %q, got %q", i, name, calls[i].Name)
		}
	}
	if strings.Contains(residual, `"tool"`) {
		t.Errorf("residual still contains a directive: %q", residual)
	}
	if !strings.Contains(residual, "First:") || !strings.Contains(residual, "done.") {
		t.Errorf("prose lost from residual: %q", residual)
	}
}

func TestExtract_UniqueIDsWithinBatch(t *testing.T) {
	in := `{"tool": "a"} {"tool": "b"} {"tool": "c"}`
	calls, _, _ := Extract(in)
	seen := map[string]bool{}
	for _, c := range calls {
		if seen[c.ID] {
			t.Fatalf("duplicate id %q", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestExtract_MalformedAdjacentToValid(t *testing.T) {
	in := `{"tool": "broken", "x": } and {"tool": "calculator", "expression": "3*3"}`
	calls, _, report := Extract(in)
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if calls[0].Name != "calculator" {
		t.Errorf("expected calculator, got %q", calls[0].Name)
	}
	if report.Candidates != 2 || report.Parsed != 1 || report.Malformed != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestExtract_TruncatedDirective(t *testing.T) {
	in := `prose {"tool": "calculator", "expression": "1+`
	calls, _, report := Extract(in)
	if len(calls) != 0 {
		t.Fatalf("expected 0 calls, got %d", len(calls))
	}
	if report.Malformed != 1 {
		t.Errorf("expected 1 malformed, got %+v", report)
	}
}

func TestExtract_EntirelyDirective(t *testing.T) {
	in := `{"tool": "get_current_time", "timezone": "UTC"}`
	calls, residual, _ := Extract(in)
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if residual != "" {
		t.Errorf("expected empty residual, got %q", residual)
	}
}

func TestExtract_NestedArgumentsRejected(t *testing.T) {
	in := `{"tool": "calculator", "options": {"deep": true}}`
	calls, _, report := Extract(in)
	if len(calls) != 0 {
		t.Fatalf("nested arguments must be rejected, got %d calls", len(calls))
	}
	if report.Malformed != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestExtract_BracesInsideStringValues(t *testing.T) {
	in := `{"tool": "search_definition", "term": "object {a: 1}"} tail`
	calls, residual, _ := Extract(in)
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if got := calls[0].Arguments["term"]; got != "object {a: 1}" {
		t.Errorf("unexpected term: %v", got)
	}
	if residual != "tail" {
		t.Errorf("unexpected residual: %q", residual)
	}
}

func TestExtract_NameLowercased(t *testing.T) {
	in := `{"tool": "Calculator", "expression": "1"}`
	calls, _, _ := Extract(in)
	if len(calls) != 1 || calls[0].Name != "calculator" {
		t.Fatalf("expected lowercased name, got %+v", calls)
	}
}

func TestExtract_IdempotentOnCleanText(t *testing.T) {
	in := `Compute: {"tool": "calculator", "expression": "2+2"} thanks.`
	_, residual, _ := Extract(in)
	again, residual2, report := Extract(residual)
	if len(again) != 0 {
		t.Fatalf("second pass found %d calls", len(again))
	}
	if residual2 != residual {
		t.Errorf("residual not stable: %q vs %q", residual, residual2)
	}
	if report.Candidates != 0 {
		t.Errorf("unexpected candidates on clean text: %+v", report)
	}
}
