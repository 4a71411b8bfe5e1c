// Package blog provides lookups over the read-only blog collection.
package blog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kilianp07/predtrack/core/model"
)

// Find returns the post with the given id.
func Find(posts []model.BlogPost, id string) (model.BlogPost, bool) {
	for _, p := range posts {
		if p.ID == id {
			return p, true
		}
	}
	return model.BlogPost{}, false
}

// Exists reports whether id is already used.
func Exists(posts []model.BlogPost, id string) bool {
	_, ok := Find(posts, id)
	return ok
}

// Latest returns the first n posts in data order, which is the order the
// home page features them in.
func Latest(posts []model.BlogPost, n int) []model.BlogPost {
	if n < 0 || n > len(posts) {
		n = len(posts)
	}
	out := make([]model.BlogPost, n)
	copy(out, posts[:n])
	return out
}

// Newest returns a copy of posts ordered by date, newest first. Posts with
// unparseable dates sort last and keep their relative order.
func Newest(posts []model.BlogPost) []model.BlogPost {
	out := make([]model.BlogPost, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := model.ParseDate(out[i].Date)
		b, bok := model.ParseDate(out[j].Date)
		if aok != bok {
			return aok
		}
		return a.After(b)
	})
	return out
}

// WithTag returns the posts carrying tag, compared case-insensitively.
func WithTag(posts []model.BlogPost, tag string) []model.BlogPost {
	out := []model.BlogPost{}
	for _, p := range posts {
		for _, t := range p.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// NextID returns the id following the highest "B<number>" id in posts,
// zero padded to three digits.
func NextID(posts []model.BlogPost) string {
	highest := 0
	for _, p := range posts {
		if !strings.HasPrefix(p.ID, "B") {
			continue
		}
		n, err := strconv.Atoi(p.ID[1:])
		if err != nil || n < 0 {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("B%03d", highest+1)
}

// NewDraft returns a template post with the next free id.
func NewDraft(posts []model.BlogPost, today time.Time) model.BlogPost {
	return model.BlogPost{
		ID:      NextID(posts),
		Title:   "New Blog Post Title",
		Date:    today.Format("2006-01-02"),
		Author:  "Your Name",
		Summary: "A brief summary of this new post.",
		Content: "# New Post\n\nStart writing your Markdown content here!",
		Tags:    []string{"new", "draft"},
	}
}
