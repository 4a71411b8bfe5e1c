// Package dataset loads the read-only prediction and blog collections.
//
// Records are decoded tolerantly: a field holding the wrong type is treated
// as absent and resolved by the model defaults. Only a document whose top
// level is not a sequence is rejected, with prediction.ErrInvalidInput.
package dataset

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/predtrack/core/model"
	"github.com/kilianp07/predtrack/core/prediction"
)

// Format identifies the encoding of a dataset document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// records parses data and returns its top-level elements.
func records(data []byte, f Format) ([]gjson.Result, error) {
	if f == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", prediction.ErrInvalidInput, err)
		}
		if _, ok := doc.([]any); !ok {
			return nil, fmt.Errorf("%w: top level is %T", prediction.ErrInvalidInput, doc)
		}
		b, err := json.Marshal(jsonSafe(doc))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", prediction.ErrInvalidInput, err)
		}
		data = b
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", prediction.ErrInvalidInput)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: top level is %s", prediction.ErrInvalidInput, root.Type)
	}
	return root.Array(), nil
}

// jsonSafe rewrites a decoded YAML value into one json.Marshal accepts:
// non-string map keys are stringified and non-finite floats become null.
func jsonSafe(v any) any {
	switch t := v.(type) {
	case []any:
		for i, e := range t {
			t[i] = jsonSafe(e)
		}
		return t
	case map[string]any:
		for k, e := range t {
			t[k] = jsonSafe(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = jsonSafe(e)
		}
		return out
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return t
	case float32:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return nil
		}
		return t
	default:
		return v
	}
}

// DecodePredictions decodes a prediction collection. skipped counts
// elements that were not objects and were dropped.
func DecodePredictions(data []byte, f Format) (preds []model.Prediction, skipped int, err error) {
	recs, err := records(data, f)
	if err != nil {
		return nil, 0, err
	}
	preds = make([]model.Prediction, 0, len(recs))
	for _, r := range recs {
		if !r.IsObject() {
			skipped++
			continue
		}
		preds = append(preds, predictionFrom(r))
	}
	return preds, skipped, nil
}

// DecodeBlogPosts decodes a blog post collection.
func DecodeBlogPosts(data []byte, f Format) (posts []model.BlogPost, skipped int, err error) {
	recs, err := records(data, f)
	if err != nil {
		return nil, 0, err
	}
	posts = make([]model.BlogPost, 0, len(recs))
	for _, r := range recs {
		if !r.IsObject() {
			skipped++
			continue
		}
		posts = append(posts, model.BlogPost{
			ID:      id(r),
			Title:   str(r, "title"),
			Date:    str(r, "date"),
			Author:  str(r, "author"),
			Summary: str(r, "summary"),
			Content: str(r, "content"),
			Tags:    strs(r, "tags"),
		})
	}
	return posts, skipped, nil
}

func predictionFrom(r gjson.Result) model.Prediction {
	p := model.Prediction{
		ID:                  id(r),
		Text:                str(r, "text"),
		OriginalScenario:    str(r, "originalScenario"),
		PredictedDate:       str(r, "predictedDate"),
		TimelineSegment:     str(r, "timelineSegment"),
		Categories:          strs(r, "categories"),
		Status:              model.Status(str(r, "status")),
		AccuracyScore:       score(r.Get("accuracyScore")),
		QualitativeAccuracy: str(r, "qualitativeAccuracy"),
		ActualOutcome:       str(r, "actualOutcome"),
		SupportingEvidence:  []model.Evidence{},
		AnalystCommentary:   []model.Commentary{},
		LastEvaluated:       str(r, "lastEvaluated"),
	}
	for _, e := range objects(r, "supportingEvidence") {
		p.SupportingEvidence = append(p.SupportingEvidence, model.Evidence{Text: str(e, "text"), URL: str(e, "url")})
	}
	for _, c := range objects(r, "analystCommentary") {
		p.AnalystCommentary = append(p.AnalystCommentary, model.Commentary{Date: str(c, "date"), Comment: str(c, "comment")})
	}
	return p
}

// str returns a string field, anything else as "".
func str(r gjson.Result, key string) string {
	v := r.Get(key)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

// id accepts numeric identifiers as well as strings.
func id(r gjson.Result) string {
	v := r.Get("id")
	if v.Type == gjson.Number {
		return v.Raw
	}
	return str(r, "id")
}

// strs returns the string elements of an array field.
func strs(r gjson.Result, key string) []string {
	out := []string{}
	v := r.Get(key)
	if !v.IsArray() {
		return out
	}
	for _, e := range v.Array() {
		if e.Type == gjson.String {
			out = append(out, e.Str)
		}
	}
	return out
}

func objects(r gjson.Result, key string) []gjson.Result {
	v := r.Get(key)
	if !v.IsArray() {
		return nil
	}
	var out []gjson.Result
	for _, e := range v.Array() {
		if e.IsObject() {
			out = append(out, e)
		}
	}
	return out
}

// score accepts numbers within [0,100].
func score(v gjson.Result) *float64 {
	if v.Type != gjson.Number {
		return nil
	}
	f := v.Float()
	if math.IsNaN(f) || f < 0 || f > 100 {
		return nil
	}
	return &f
}
