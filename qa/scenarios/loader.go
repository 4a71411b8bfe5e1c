// Package scenarios runs declarative QA scenarios against the query engine.
// A scenario carries an inline dataset, one list query and the figures the
// tracker is expected to produce for it.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/predtrack/core/dataset"
	"github.com/kilianp07/predtrack/core/model"
	"github.com/kilianp07/predtrack/core/prediction"
)

// QueryDef mirrors the list filters.
type QueryDef struct {
	Search   string `yaml:"search,omitempty"`
	Status   string `yaml:"status,omitempty"`
	Category string `yaml:"category,omitempty"`
	Sort     string `yaml:"sort,omitempty"`
}

// ToQuery converts the definition.
func (q QueryDef) ToQuery() prediction.Query {
	return prediction.Query{
		Filter: prediction.Filter{Search: q.Search, Status: q.Status, Category: q.Category},
		SortBy: prediction.ParseSortKey(q.Sort),
	}
}

// Expected lists the checked outcomes. Nil fields are not checked.
type Expected struct {
	IDs              []string       `yaml:"ids"`
	OverallAccuracy  *int           `yaml:"overall_accuracy,omitempty"`
	EvaluatedPercent *int           `yaml:"evaluated_percent,omitempty"`
	SegmentAccuracy  map[string]int `yaml:"segment_accuracy,omitempty"`
	Segments         []string       `yaml:"segments,omitempty"`
	Categories       []string       `yaml:"categories,omitempty"`
	Statuses         []string       `yaml:"statuses,omitempty"`
}

type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	// Predictions is kept as raw YAML so it goes through the same tolerant
	// decoder as dataset files.
	Predictions yaml.Node `yaml:"predictions"`
	// Canonical overrides the default segment order.
	Canonical []string `yaml:"canonical,omitempty"`
	Query     QueryDef `yaml:"query"`
	Expected  Expected `yaml:"expected"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("%s: scenario name is required", path)
	}
	return &sc, nil
}

// Dataset decodes the inline predictions.
func (sc *Scenario) Dataset() ([]model.Prediction, error) {
	if sc.Predictions.Kind == 0 {
		return []model.Prediction{}, nil
	}
	data, err := yaml.Marshal(&sc.Predictions)
	if err != nil {
		return nil, err
	}
	preds, _, err := dataset.DecodePredictions(data, dataset.FormatYAML)
	return preds, err
}
