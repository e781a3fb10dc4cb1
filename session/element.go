package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Element is a located DOM element bound to the selector that found it.
// Every operation re-resolves the selector against the live DOM rather than
// holding a remote object handle, matching the facade's "send strings, not
// object references" evaluate primitive.
type Element struct {
	session  *Session
	selector string
	info     ElementInfo
}

// Selector returns the CSS selector used to find this element.
func (e *Element) Selector() string { return e.selector }

// Info returns the element metadata captured at Find time.
func (e *Element) Info() ElementInfo { return e.info }

// Find locates the first element matching selector within the current
// document and returns an Element, or an *ElementNotFoundError when nothing
// matches.
func (s *Session) Find(ctx context.Context, selector string) (*Element, error) {
	var info ElementInfo
	found, err := s.Eval(ctx, fmt.Sprintf(`() => {
		const el = document.querySelector(%s);
		if (!el) return null;
		const r = el.getBoundingClientRect();
		return {tag: el.tagName.toLowerCase(), text: (el.textContent||'').trim(), box: {x:r.x,y:r.y,width:r.width,height:r.height}};
	}`, jsString(selector)))
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, &ElementNotFoundError{Selector: selector}
	}
	data, err := json.Marshal(found)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &Element{session: s, selector: selector, info: info}, nil
}

// FindAll locates every element matching selector, in document order.
func (s *Session) FindAll(ctx context.Context, selector string) ([]*Element, error) {
	var infos []ElementInfo
	err := s.EvalJSON(ctx, fmt.Sprintf(`() => Array.from(document.querySelectorAll(%s)).map(el => {
		const r = el.getBoundingClientRect();
		return {tag: el.tagName.toLowerCase(), text: (el.textContent||'').trim(), box: {x:r.x,y:r.y,width:r.width,height:r.height}};
	})`, jsString(selector)), &infos)
	if err != nil {
		return nil, err
	}

	elements := make([]*Element, 0, len(infos))
	for i, info := range infos {
		elements = append(elements, &Element{
			session:  s,
			selector: fmt.Sprintf("%s:nth-of-type-match(%d)", selector, i),
			info:     info,
		})
	}
	return elements, nil
}

// Click clicks the element, re-resolving it by selector.
func (e *Element) Click(ctx context.Context) error {
	_, err := e.session.client.Send(ctx, "auditor:click", map[string]interface{}{
		"context":  e.session.browsingCtx,
		"selector": e.selector,
		"timeout":  DefaultTimeout.Milliseconds(),
	})
	return err
}

// Text returns the trimmed text content of the element.
func (e *Element) Text(ctx context.Context) (string, error) {
	value, err := e.session.Eval(ctx, fmt.Sprintf(`() => { const el = document.querySelector(%s); return el ? el.textContent : ''; }`, jsString(e.selector)))
	if err != nil {
		return "", err
	}
	str, _ := value.(string)
	return strings.TrimSpace(str), nil
}

// Attribute returns the named attribute's value, or "" if absent.
func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	value, err := e.session.Eval(ctx, fmt.Sprintf(`() => { const el = document.querySelector(%s); return el ? el.getAttribute(%s) : null; }`, jsString(e.selector), jsString(name)))
	if err != nil {
		return "", err
	}
	str, _ := value.(string)
	return str, nil
}

// BoundingBox returns the element's current bounding box.
func (e *Element) BoundingBox(ctx context.Context) (BoundingBox, error) {
	var box BoundingBox
	err := e.session.EvalJSON(ctx, fmt.Sprintf(`() => { const el = document.querySelector(%s); if (!el) return null; const r = el.getBoundingClientRect(); return {x:r.x,y:r.y,width:r.width,height:r.height}; }`, jsString(e.selector)), &box)
	return box, err
}

// Screenshot captures a PNG of just this element. No scan phase calls it;
// the auditor has no per-node screenshot upload.
func (e *Element) Screenshot(ctx context.Context) ([]byte, error) {
	result, err := e.session.client.Send(ctx, "auditor:el.screenshot", map[string]interface{}{
		"context":  e.session.browsingCtx,
		"selector": e.selector,
	})
	if err != nil {
		return nil, err
	}
	var resp struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(result, &resp); err != nil {
		return nil, err
	}
	return decodeBase64(resp.Data)
}

func decodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// jsString renders a Go string as a double-quoted JavaScript string literal
// for inline interpolation into an evaluated function body.
func jsString(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}
