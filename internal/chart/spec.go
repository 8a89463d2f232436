// Package chart decodes chart specifications and renders them to PNG
// images sized for document embedding.
package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind is the chart type discriminant.
type Kind string

const (
	KindPie  Kind = "pie"
	KindBar  Kind = "bar"
	KindLine Kind = "line"
)

// Datum is one labelled value. Order is significant for every chart
// type, so data is a slice rather than a map.
type Datum struct {
	Label string
	Value float64
}

// Spec describes one chart to render and where to place it.
type Spec struct {
	Type     Kind   `json:"type"`
	Title    string `json:"title"`
	Position string `json:"position"`
	Data     []Datum
}

// DataError marks a chart whose data cannot be rendered. The chart is
// skipped and reported as a warning; it never fails the document.
type DataError struct {
	Chart  string
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("chart %q: %s", e.Chart, e.Reason)
}

// orderedData decodes a JSON object while preserving key order, which
// encoding/json's map decoding discards. Values must be numeric.
type orderedData []Datum

func (d *orderedData) UnmarshalJSON(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("data must be an object of label to value")
	}

	var out []Datum
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		label, _ := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return fmt.Errorf("value for %q is not numeric", label)
		}
		f, err := num.Float64()
		if err != nil {
			return fmt.Errorf("value for %q is not numeric", label)
		}
		out = append(out, Datum{Label: label, Value: f})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*d = out
	return nil
}

// specEnvelope matches the wire shape of a single chart entry.
type specEnvelope struct {
	Type     string      `json:"type"`
	Title    string      `json:"title"`
	Position string      `json:"position"`
	Data     orderedData `json:"data"`
}

// ParsePayload decodes a chart payload. Accepted shapes are an
// envelope {"charts": [...]} or a bare array [...]. A malformed entry
// is skipped with a warning; only an unreadable envelope is an error.
func ParsePayload(raw []byte) ([]Spec, []string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil, nil
	}

	var entries []json.RawMessage
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, nil, fmt.Errorf("decode chart payload: %w", err)
		}
	} else {
		var env struct {
			Charts []json.RawMessage `json:"charts"`
		}
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, nil, fmt.Errorf("decode chart payload: %w", err)
		}
		entries = env.Charts
	}

	var specs []Spec
	var warnings []string
	for i, entry := range entries {
		var env specEnvelope
		if err := json.Unmarshal(entry, &env); err != nil {
			warnings = append(warnings, fmt.Sprintf("chart %d skipped: %v", i+1, err))
			continue
		}
		kind := Kind(env.Type)
		switch kind {
		case KindPie, KindBar, KindLine:
		default:
			warnings = append(warnings, fmt.Sprintf("chart %d skipped: unknown type %q", i+1, env.Type))
			continue
		}
		specs = append(specs, Spec{
			Type:     kind,
			Title:    env.Title,
			Position: env.Position,
			Data:     []Datum(env.Data),
		})
	}
	return specs, warnings, nil
}

// name returns a label for errors and warnings about this spec.
func (s *Spec) name() string {
	if s.Title != "" {
		return s.Title
	}
	return string(s.Type)
}
