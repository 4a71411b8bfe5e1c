package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilianp07/predtrack/core/logger"
	"github.com/kilianp07/predtrack/core/model"
)

// Dataset holds everything the tracker displays.
type Dataset struct {
	Predictions []model.Prediction
	Posts       []model.BlogPost
}

// Loader reads dataset files from disk.
type Loader struct {
	log logger.Logger
}

// NewLoader returns a Loader reporting dropped records to log.
func NewLoader(log logger.Logger) *Loader {
	return &Loader{log: log}
}

// FormatOf infers the document format from the file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Predictions loads the prediction collection at path.
func (l *Loader) Predictions(path string) ([]model.Prediction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read predictions: %w", err)
	}
	preds, skipped, err := DecodePredictions(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if skipped > 0 {
		l.log.Warnf("%s: skipped %d malformed prediction records", path, skipped)
	}
	l.log.Debugw("predictions loaded", map[string]any{"path": path, "count": len(preds)})
	return preds, nil
}

// BlogPosts loads the blog collection at path.
func (l *Loader) BlogPosts(path string) ([]model.BlogPost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blog posts: %w", err)
	}
	posts, skipped, err := DecodeBlogPosts(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if skipped > 0 {
		l.log.Warnf("%s: skipped %d malformed blog records", path, skipped)
	}
	l.log.Debugw("blog posts loaded", map[string]any{"path": path, "count": len(posts)})
	return posts, nil
}

// Load reads both collections. An empty postsPath yields no posts.
func (l *Loader) Load(predictionsPath, postsPath string) (*Dataset, error) {
	preds, err := l.Predictions(predictionsPath)
	if err != nil {
		return nil, err
	}
	ds := &Dataset{Predictions: preds, Posts: []model.BlogPost{}}
	if postsPath == "" {
		return ds, nil
	}
	if ds.Posts, err = l.BlogPosts(postsPath); err != nil {
		return nil, err
	}
	return ds, nil
}
