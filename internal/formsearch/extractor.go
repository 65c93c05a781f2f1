package formsearch

import (
	"net/url"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/Bahjat/formsearch/internal/model"
)

// DefaultResultCap is how many links a lookup reports unless configured otherwise.
const DefaultResultCap = 2

// Extract returns the first limit anchors of doc that carry both an href and
// visible text, in document order, with hrefs resolved against baseURL. It
// truncates; it does not rank.
func Extract(doc *Document, baseURL *url.URL, limit int) []model.ResultEntry {
	if limit <= 0 {
		return nil
	}

	var results []model.ResultEntry
	for _, a := range doc.Descendants(atom.A) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			continue
		}
		label := a.Text()
		if label == "" {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}

		results = append(results, model.ResultEntry{
			Label: label,
			URL:   baseURL.ResolveReference(ref).String(),
		})
		if len(results) == limit {
			break
		}
	}
	return results
}
