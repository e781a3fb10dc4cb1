package linkcheck

import (
	"context"
	"testing"
)

type stubExtractor struct {
	hrefs []string
}

func (s stubExtractor) EvalJSON(ctx context.Context, fn string, out interface{}, args ...interface{}) error {
	ptr := out.(*[]string)
	*ptr = s.hrefs
	return nil
}

func TestCheckEmptyWhenNoLinks(t *testing.T) {
	ex := stubExtractor{hrefs: nil}
	result := Check(context.Background(), ex, "https://example.com/")
	if result.TotalChecked != 0 || len(result.Broken) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}
