package session

import (
	"context"
	"fmt"
)

// cookieSelectors are common consent-banner accept buttons, tried first by
// fixed selector before falling back to text matching.
var cookieSelectors = []string{
	"#onetrust-accept-btn-handler",
	".cc-btn.cc-allow",
	"#CybotCookiebotDialogBodyLevelButtonLevelOptinAllowAll",
	"[data-testid=uc-accept-all-button]",
	"button[aria-label='Accept all']",
	"button[aria-label='Accept All']",
}

// cookieKeywords is the frozen set of accept-button label fragments the
// dismissal phase matches against, case-insensitively. Czech and English
// were the two locales observed in the source product; this set is frozen
// rather than grown into a locale-detection framework.
var cookieKeywords = []string{
	"accept all", "accept cookies", "i agree", "allow all", "got it",
	"souhlasím", "přijmout vše", "povolit vše", "rozumím",
}

// DismissCookieBanner attempts to close a cookie/consent banner: first by a
// fixed selector whitelist, then by language-aware button-text match. It is
// best-effort — a banner that cannot be located or dismissed is not an
// error, since phase 4 of the scan pipeline is non-fatal.
func (s *Session) DismissCookieBanner(ctx context.Context) (bool, error) {
	for _, sel := range cookieSelectors {
		el, err := s.Find(ctx, sel)
		if err != nil {
			continue
		}
		if err := el.Click(ctx); err == nil {
			return true, nil
		}
	}

	clicked, err := s.Eval(ctx, fmt.Sprintf(`() => {
		const keywords = %s;
		const candidates = Array.from(document.querySelectorAll('button, a[role=button], input[type=button], input[type=submit]'));
		for (const el of candidates) {
			const label = (el.innerText || el.value || el.getAttribute('aria-label') || '').toLowerCase();
			if (!label) continue;
			for (const kw of keywords) {
				if (label.includes(kw)) {
					el.click();
					return true;
				}
			}
		}
		return false;
	}`, toJSONString(cookieKeywords)))
	if err != nil {
		return false, nil //nolint:nilerr // cookie dismissal is best-effort
	}
	ok, _ := clicked.(bool)
	return ok, nil
}
