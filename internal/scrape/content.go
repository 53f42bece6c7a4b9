package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// contentSelectors are tried in order; the first match becomes the
// extraction root. Plain body is the fallback.
var contentSelectors = []string{"main", "article", ".content", "#content", ".main", "#main"}

// stripSelector removes boilerplate elements before extraction
const stripSelector = "script, style, nav, footer, header"

// blockSignatures are phrases indicating a bot-protection or CAPTCHA
// interstitial rather than real content. Matching is pattern-based, not
// definitive; a missed block yields garbage text downstream rather than
// an error.
var blockSignatures = []string{
	"access denied",
	"access to this page has been denied",
	"has been blocked",
	"detected unusual activity",
	"please enable javascript",
	"browser appears to have javascript disabled",
	"captcha",
	"cloudflare",
	"ddos protection",
	"human verification",
	"bot protection",
	"security check",
}

// IsBlocked reports whether the content looks like a bot-block page
func IsBlocked(content string) bool {
	if content == "" {
		return false
	}
	lower := strings.ToLower(content)
	for _, phrase := range blockSignatures {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// ExtractText reduces raw markup to plain text: boilerplate elements are
// stripped, the first matching main-content container is selected (falling
// back to body, then the whole document), and text nodes are joined with
// single newlines. If structural parsing itself fails the raw input is
// returned so downstream stages still get something to work with.
func ExtractText(rawHTML string) string {
	if rawHTML == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	doc.Find(stripSelector).Remove()

	var selection *goquery.Selection
	for _, sel := range contentSelectors {
		if match := doc.Find(sel).First(); match.Length() > 0 {
			selection = match
			break
		}
	}
	if selection == nil {
		selection = doc.Find("body").First()
	}
	if selection.Length() == 0 {
		selection = doc.Selection
	}

	return textOf(selection)
}

// textOf walks the selection's nodes collecting trimmed text blocks
func textOf(selection *goquery.Selection) string {
	var blocks []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				blocks = append(blocks, text)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}

	for _, node := range selection.Nodes {
		walk(node)
	}

	return strings.Join(blocks, "\n")
}
