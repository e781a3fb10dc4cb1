package normalize

import "github.com/a11yscan/auditor/report"

// ruleMeta is the central metadata table: for every recognized rule id,
// the category and remediation text come from here rather than being
// derived per-violation. Adapted from a WCAG-criterion -> axe-rule mapping
// (the data table, not a VPAT renderer/generator, which is out of scope).
type ruleMeta struct {
	Category      string
	WCAGCriterion string
	WCAGLevel     report.WCAGLevel
	What          string
	Fix           string
}

var ruleTable = map[string]ruleMeta{
	"image-alt": {
		Category: "Graphics", WCAGCriterion: "1.1.1", WCAGLevel: report.WCAGLevelA,
		What: "Images are missing alternative text.",
		Fix:  "Add a descriptive alt attribute, or alt=\"\" if the image is purely decorative.",
	},
	"input-image-alt": {
		Category: "Graphics", WCAGCriterion: "1.1.1", WCAGLevel: report.WCAGLevelA,
		What: "Image buttons are missing alternative text.",
		Fix:  "Add an alt attribute describing the button's action.",
	},
	"area-alt": {
		Category: "Graphics", WCAGCriterion: "1.1.1", WCAGLevel: report.WCAGLevelA,
		What: "Image map areas are missing alternative text.",
		Fix:  "Add an alt attribute to each <area> element.",
	},
	"object-alt": {
		Category: "Graphics", WCAGCriterion: "1.1.1", WCAGLevel: report.WCAGLevelA,
		What: "Embedded objects are missing a text alternative.",
		Fix:  "Provide a text alternative inside the <object> element.",
	},
	"svg-img-alt": {
		Category: "Graphics", WCAGCriterion: "1.1.1", WCAGLevel: report.WCAGLevelA,
		What: "SVG images are missing an accessible name.",
		Fix:  "Add a <title> element or aria-label to the SVG.",
	},
	"definition-list": {
		Category: "Structure", WCAGCriterion: "1.3.1", WCAGLevel: report.WCAGLevelA,
		What: "Definition lists are not structured correctly.",
		Fix:  "Ensure <dl> contains only properly ordered <dt>/<dd> groups.",
	},
	"dlitem": {
		Category: "Structure", WCAGCriterion: "1.3.1", WCAGLevel: report.WCAGLevelA,
		What: "Definition list items are not contained in a <dl>.",
		Fix:  "Move <dt>/<dd> elements inside a parent <dl>.",
	},
	"list": {
		Category: "Structure", WCAGCriterion: "1.3.1", WCAGLevel: report.WCAGLevelA,
		What: "Lists are not structured correctly.",
		Fix:  "Ensure <ul>/<ol> only contain <li> elements directly.",
	},
	"listitem": {
		Category: "Structure", WCAGCriterion: "1.3.1", WCAGLevel: report.WCAGLevelA,
		What: "List items are not contained in a list.",
		Fix:  "Wrap <li> elements in a parent <ul> or <ol>.",
	},
	"table-fake-caption": {
		Category: "Structure", WCAGCriterion: "1.3.1", WCAGLevel: report.WCAGLevelA,
		What: "A table uses styled text instead of a real caption.",
		Fix:  "Use a <caption> element instead of styled cell text.",
	},
	"td-headers-attr": {
		Category: "Structure", WCAGCriterion: "1.3.1", WCAGLevel: report.WCAGLevelA,
		What: "Table cells reference headers that do not exist.",
		Fix:  "Ensure every headers attribute value matches an id on a <th>.",
	},
	"th-has-data-cells": {
		Category: "Structure", WCAGCriterion: "1.3.1", WCAGLevel: report.WCAGLevelA,
		What: "Table headers have no associated data cells.",
		Fix:  "Check table markup; every <th> should describe at least one data cell.",
	},
	"empty-table-header": {
		Category: "Structure", WCAGCriterion: "1.3.1", WCAGLevel: report.WCAGLevelA,
		What: "Table headers have no text content.",
		Fix:  "Give every <th> a descriptive text label.",
	},
	"scope-attr-valid": {
		Category: "Structure", WCAGCriterion: "1.3.1", WCAGLevel: report.WCAGLevelA,
		What: "Table header scope attribute has an invalid value.",
		Fix:  "Use scope=\"row\" or scope=\"col\" on table headers.",
	},
	"p-as-heading": {
		Category: "Structure", WCAGCriterion: "1.3.1", WCAGLevel: report.WCAGLevelA,
		What: "Styled paragraphs are used in place of real headings.",
		Fix:  "Replace styled <p> text with a semantic <h1>-<h6> element.",
	},
	"css-orientation-lock": {
		Category: "Structure", WCAGCriterion: "1.3.4", WCAGLevel: report.WCAGLevelAA,
		What: "Content is locked to a single display orientation.",
		Fix:  "Remove CSS that forces portrait or landscape orientation.",
	},
	"autocomplete-valid": {
		Category: "Forms", WCAGCriterion: "1.3.5", WCAGLevel: report.WCAGLevelAA,
		What: "An input's autocomplete attribute is not a recognized token.",
		Fix:  "Use a valid autocomplete value describing the input's purpose.",
	},
	"link-in-text-block": {
		Category: "Visual Design", WCAGCriterion: "1.4.1", WCAGLevel: report.WCAGLevelA,
		What: "A link is distinguishable from surrounding text by color alone.",
		Fix:  "Add an underline or other non-color cue to inline links.",
	},
	"color-contrast": {
		Category: "Visual Design", WCAGCriterion: "1.4.3", WCAGLevel: report.WCAGLevelAA,
		What: "Text does not have sufficient contrast against its background.",
		Fix:  "Increase the contrast ratio to at least 4.5:1 for normal text.",
	},
	"meta-viewport": {
		Category: "Visual Design", WCAGCriterion: "1.4.4", WCAGLevel: report.WCAGLevelAA,
		What: "The viewport meta tag disables or limits pinch-to-zoom.",
		Fix:  "Remove user-scalable=no and allow maximum-scale of at least 2.",
	},
	"link-name": {
		Category: "Navigation", WCAGCriterion: "2.4.4", WCAGLevel: report.WCAGLevelA,
		What: "A link has no discernible accessible name.",
		Fix:  "Add visible text, aria-label, or aria-labelledby to the link.",
	},
	"button-name": {
		Category: "Forms", WCAGCriterion: "4.1.2", WCAGLevel: report.WCAGLevelA,
		What: "A button has no discernible accessible name.",
		Fix:  "Add visible text or an aria-label to the button.",
	},
	"label": {
		Category: "Forms", WCAGCriterion: "1.3.1", WCAGLevel: report.WCAGLevelA,
		What: "A form field has no associated label.",
		Fix:  "Associate a <label> element with the field via its for/id pair.",
	},
	"aria-allowed-attr": {
		Category: "ARIA", WCAGCriterion: "4.1.2", WCAGLevel: report.WCAGLevelA,
		What: "An element uses an ARIA attribute not allowed for its role.",
		Fix:  "Remove the disallowed aria-* attribute or change the element's role.",
	},
	"aria-required-attr": {
		Category: "ARIA", WCAGCriterion: "4.1.2", WCAGLevel: report.WCAGLevelA,
		What: "An ARIA role is missing a required attribute.",
		Fix:  "Add the required aria-* attribute for this role.",
	},
	"aria-hidden-focus": {
		Category: "ARIA", WCAGCriterion: "4.1.2", WCAGLevel: report.WCAGLevelA,
		What: "A focusable element is hidden from assistive technology.",
		Fix:  "Remove aria-hidden from focusable elements, or remove them from the tab order.",
	},
	"duplicate-id-aria": {
		Category: "ARIA", WCAGCriterion: "4.1.1", WCAGLevel: report.WCAGLevelA,
		What: "An id referenced by ARIA attributes is duplicated on the page.",
		Fix:  "Make every id referenced by aria-* attributes unique.",
	},
	"landmark-one-main": {
		Category: "Structure", WCAGCriterion: "1.3.1", WCAGLevel: report.WCAGLevelA,
		What: "The page does not have exactly one main landmark.",
		Fix:  "Wrap the primary content in a single <main> element.",
	},
	"region": {
		Category: "Structure", WCAGCriterion: "1.3.1", WCAGLevel: report.WCAGLevelA,
		What: "Content exists outside of any landmark region.",
		Fix:  "Place all page content inside header, nav, main, or footer landmarks.",
	},
	"html-has-lang": {
		Category: "Structure", WCAGCriterion: "3.1.1", WCAGLevel: report.WCAGLevelA,
		What: "The page does not declare a language.",
		Fix:  "Add a lang attribute to the <html> element.",
	},
	"document-title": {
		Category: "Structure", WCAGCriterion: "2.4.2", WCAGLevel: report.WCAGLevelA,
		What: "The page has no <title>.",
		Fix:  "Add a descriptive <title> element.",
	},
}

// Lookup returns the metadata for rule, and false for unrecognized ids. The
// normalizer falls back to generic defaults when this returns false.
func Lookup(ruleID string) (ruleMeta, bool) {
	meta, ok := ruleTable[ruleID]
	return meta, ok
}

const genericCategory = "Other"
const genericWhat = "An automated accessibility rule was violated."
const genericFix = "Review the flagged elements against the linked rule documentation."
