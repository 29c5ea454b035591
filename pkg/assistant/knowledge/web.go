package knowledge

import (
	"context"
	"regexp"
	"strings"
)

// FetchFailedSentinel is attached as web content when a requested fetch
// fails, so the prompt can acknowledge the failure instead of silently
// dropping the request.
const FetchFailedSentinel = "[web content unavailable: the requested page could not be fetched]"

// PageFetcher is the external web-fetch collaborator.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

var scrapeKeywords = []string{
	"scrape", "crawl", "search the internet", "search the web",
	"live data", "latest from the web", "fetch the page", "look up online",
}

var urlPattern = regexp.MustCompile(`https?://[^\s>'"]+`)

// wantsWebContent reports whether the message explicitly asks for live
// web data. Detected independently of the primary intent.
func wantsWebContent(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range scrapeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// extractURL returns the first URL in the message, or "".
func extractURL(message string) string {
	return urlPattern.FindString(message)
}
