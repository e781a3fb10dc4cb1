// Command auditor (see cmd/auditor) and package auditor drive a headless
// browser through a fixed phase sequence — device emulation, performance
// instrumentation, navigation, cookie-banner dismissal, a keyboard walk,
// an accessibility rules-engine pass, a custom ACT probe suite, heading and
// link-health extraction — to produce one AuditReport per page, and can
// aggregate that across a crawled site into a CrawlSummary.
//
// Quick start:
//
//	sess, err := session.Launch(ctx, session.LaunchOptions{Headless: true})
//	if err != nil { ... }
//	defer sess.Close(ctx)
//
//	rpt, err := auditor.Scan(ctx, sess, "https://example.com", auditor.Options{})
//
// Or crawl a whole site:
//
//	summary, err := auditor.Crawl(ctx, sess, "https://example.com", auditor.CrawlOptions{MaxPages: 20})
//
// The MCP server in package mcp exposes the same two operations as tools
// for AI-assisted auditing, and cmd/auditor wraps them in a CLI.
package auditor
