// Package engine adapts a third-party accessibility rules engine (axe-core,
// run in-page via JavaScript injection) to the orchestrator's phase
// sequence. It owns only the "ask the engine, parse its output" concern;
// severity buckets, scoring, and action-item derivation live in normalize.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
)

// Standard is a WCAG tag set axe-core can be configured against.
type Standard string

const (
	WCAG2A    Standard = "wcag2a"
	WCAG2AA   Standard = "wcag2aa"
	WCAG21A   Standard = "wcag21a"
	WCAG21AA  Standard = "wcag21aa"
	WCAG22AA  Standard = "wcag22aa"
)

// Impact is axe-core's own severity vocabulary, mapped to report.Severity
// by the normalizer.
type Impact string

const (
	ImpactCritical Impact = "critical"
	ImpactSerious  Impact = "serious"
	ImpactModerate Impact = "moderate"
	ImpactMinor    Impact = "minor"
)

// Options configures one Analyze call.
type Options struct {
	Standard        Standard
	IncludeSelector string
	ExcludeSelector string
	Rules           []string
	DisabledRules   []string
}

// DefaultOptions targets WCAG 2.2 AA.
func DefaultOptions() *Options {
	return &Options{Standard: WCAG22AA}
}

// Result is axe-core's raw run() output.
type Result struct {
	Violations      []Violation     `json:"violations"`
	Passes          []Rule          `json:"passes"`
	Incomplete      []Rule          `json:"incomplete"`
	Inapplicable    []Rule          `json:"inapplicable"`
	URL             string          `json:"url"`
	Timestamp       string          `json:"timestamp"`
	TestEngine      TestEngine      `json:"testEngine"`
	TestEnvironment TestEnvironment `json:"testEnvironment"`
}

// TestEngine carries the axe-core version string used to populate
// AuditReport.Meta.EngineVersion.
type TestEngine struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// TestEnvironment carries browser metadata axe-core observed.
type TestEnvironment struct {
	UserAgent    string `json:"userAgent"`
	WindowWidth  int    `json:"windowWidth"`
	WindowHeight int    `json:"windowHeight"`
}

// Violation is one rule axe-core flagged.
type Violation struct {
	ID          string   `json:"id"`
	Impact      Impact   `json:"impact"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Help        string   `json:"help"`
	HelpURL     string   `json:"helpUrl"`
	Nodes       []Node   `json:"nodes"`
}

// Rule is an axe-core rule result bucket other than "violations".
type Rule struct {
	ID     string `json:"id"`
	Impact Impact `json:"impact,omitempty"`
	Nodes  []Node `json:"nodes"`
}

// Node is one DOM node axe-core inspected.
type Node struct {
	HTML           string   `json:"html"`
	Target         []string `json:"target"`
	FailureSummary string   `json:"failureSummary,omitempty"`
	Impact         Impact   `json:"impact,omitempty"`
}

// Evaluator is the narrow capability the adapter needs from the browser
// session: run a script, get back a JSON-decodable value. Satisfied by
// *session.Session.
type Evaluator interface {
	Eval(ctx context.Context, script string, args ...interface{}) (interface{}, error)
}

// Analyze injects axe-core (if not already present) and runs it against
// the current page, configured per opts.
func Analyze(ctx context.Context, evaluator Evaluator, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	axeOpts := buildAxeOptions(opts)

	script := fmt.Sprintf(`(async function() {
		if (typeof axe === 'undefined') {
			await new Promise((resolve, reject) => {
				const s = document.createElement('script');
				s.src = 'https://cdnjs.cloudflare.com/ajax/libs/axe-core/4.8.4/axe.min.js';
				s.onload = resolve;
				s.onerror = reject;
				document.head.appendChild(s);
			});
		}
		const results = await axe.run(%s);
		return JSON.stringify(results);
	})()`, axeOpts)

	raw, err := evaluator.Eval(ctx, script)
	if err != nil {
		return nil, fmt.Errorf("rules engine execution failed: %w", err)
	}

	var resultStr string
	switch v := raw.(type) {
	case string:
		resultStr = v
	case map[string]interface{}:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal rules engine result: %w", err)
		}
		resultStr = string(data)
	default:
		return nil, fmt.Errorf("unexpected rules engine result type: %T", raw)
	}

	var result Result
	if err := json.Unmarshal([]byte(resultStr), &result); err != nil {
		return nil, fmt.Errorf("parse rules engine result: %w", err)
	}

	return &result, nil
}

func buildAxeOptions(opts *Options) string {
	axeOpts := make(map[string]interface{})

	tags := standardToTags(opts.Standard)
	if len(opts.Rules) > 0 {
		axeOpts["runOnly"] = map[string]interface{}{"type": "rule", "values": opts.Rules}
	} else if len(tags) > 0 {
		axeOpts["runOnly"] = map[string]interface{}{"type": "tag", "values": tags}
	}

	if opts.IncludeSelector != "" || opts.ExcludeSelector != "" {
		ctx := make(map[string]interface{})
		if opts.IncludeSelector != "" {
			ctx["include"] = []string{opts.IncludeSelector}
		}
		if opts.ExcludeSelector != "" {
			ctx["exclude"] = []string{opts.ExcludeSelector}
		}
		axeOpts["context"] = ctx
	}

	if len(opts.DisabledRules) > 0 {
		rules := make(map[string]interface{})
		for _, rule := range opts.DisabledRules {
			rules[rule] = map[string]bool{"enabled": false}
		}
		axeOpts["rules"] = rules
	}

	data, _ := json.Marshal(axeOpts)
	return string(data)
}

func standardToTags(standard Standard) []string {
	switch standard {
	case WCAG2A:
		return []string{"wcag2a"}
	case WCAG2AA:
		return []string{"wcag2a", "wcag2aa"}
	case WCAG21A:
		return []string{"wcag2a", "wcag21a"}
	case WCAG21AA:
		return []string{"wcag2a", "wcag2aa", "wcag21a", "wcag21aa"}
	case WCAG22AA:
		return []string{"wcag2a", "wcag2aa", "wcag21a", "wcag21aa", "wcag22aa"}
	default:
		return []string{"wcag2a", "wcag2aa", "wcag21a", "wcag21aa", "wcag22aa"}
	}
}
