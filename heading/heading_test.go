package heading

import (
	"context"
	"testing"

	"github.com/a11yscan/auditor/report"
)

type stubEval struct {
	headings []report.Heading
}

func (s stubEval) EvalJSON(ctx context.Context, fn string, out interface{}, args ...interface{}) error {
	ptr := out.(*[]report.Heading)
	*ptr = s.headings
	return nil
}

func hasIssue(structure *report.HeadingStructure, t report.HeadingIssueType) bool {
	for _, i := range structure.Issues {
		if i.Type == t {
			return true
		}
	}
	return false
}

func TestExtractFlagsMissingH1(t *testing.T) {
	structure, err := Extract(context.Background(), stubEval{headings: []report.Heading{
		{Level: 2, Text: "Intro"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if !hasIssue(structure, report.HeadingIssueMissingH1) {
		t.Fatal("expected missing-h1 issue")
	}
	if !hasIssue(structure, report.HeadingIssueFirstNotH1) {
		t.Fatal("expected first-not-h1 issue")
	}
}

func TestExtractFlagsSkippedLevel(t *testing.T) {
	structure, err := Extract(context.Background(), stubEval{headings: []report.Heading{
		{Level: 1, Text: "Title"},
		{Level: 3, Text: "Sub"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if !hasIssue(structure, report.HeadingIssueSkippedLevel) {
		t.Fatal("expected skipped-level issue")
	}
}

func TestExtractFlagsEmptyAndGeneric(t *testing.T) {
	structure, err := Extract(context.Background(), stubEval{headings: []report.Heading{
		{Level: 1, Text: "Title"},
		{Level: 2, Text: "  "},
		{Level: 2, Text: "Click here"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if !hasIssue(structure, report.HeadingIssueEmptyHeading) {
		t.Fatal("expected empty-heading issue")
	}
	if !hasIssue(structure, report.HeadingIssueGenericHeading) {
		t.Fatal("expected generic-heading issue")
	}
}

func TestExtractNoHeadingsIsMissingH1(t *testing.T) {
	structure, err := Extract(context.Background(), stubEval{headings: nil})
	if err != nil {
		t.Fatal(err)
	}
	if len(structure.Issues) != 1 || structure.Issues[0].Type != report.HeadingIssueMissingH1 {
		t.Fatalf("got %+v", structure.Issues)
	}
}
