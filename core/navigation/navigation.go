// Package navigation maps page keys to paths and resolves the query-string
// redirect used by static hosts that serve a single 404 page.
package navigation

import (
	"net/url"
	"strings"
)

// Page identifies a view of the tracker.
type Page string

const (
	PageHome             Page = "home"
	PageTimeline         Page = "timeline"
	PageAllPredictions   Page = "allPredictions"
	PagePredictionDetail Page = "predictionDetail"
	PageBlog             Page = "blog"
	PageBlogPost         Page = "blogPost"
	PageAbout            Page = "about"
)

// RedirectParam is the query parameter carrying the original path.
const RedirectParam = "p"

// Path returns the route of page. Detail pages without an id fall back to
// their list. Strings that already start with "/" are returned unchanged.
func Path(page Page, id string) string {
	if strings.HasPrefix(string(page), "/") {
		return string(page)
	}
	switch page {
	case PageHome:
		return "/"
	case PageTimeline:
		return "/timeline"
	case PageAllPredictions:
		return "/predictions"
	case PagePredictionDetail:
		if id == "" {
			return "/predictions"
		}
		return "/prediction/" + url.PathEscape(id)
	case PageBlog:
		return "/blog"
	case PageBlogPost:
		if id == "" {
			return "/blog"
		}
		return "/blog/" + url.PathEscape(id)
	case PageAbout:
		return "/about"
	default:
		return "/"
	}
}

// ResolveRedirect returns the target of a redirected request: the value of
// the p parameter followed by the remaining query and the fragment. ok is
// false when u carries no redirect.
func ResolveRedirect(u *url.URL) (target string, ok bool) {
	q := u.Query()
	path := q.Get(RedirectParam)
	if path == "" {
		return "", false
	}
	q.Del(RedirectParam)
	target = path
	if rest := q.Encode(); rest != "" {
		target += "?" + rest
	}
	if u.Fragment != "" {
		target += "#" + u.Fragment
	}
	return target, true
}
