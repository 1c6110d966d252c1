package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/travigo/coruna-bus/pkg/ctdf"
)

var ErrInvalidSnapshot = errors.New("catalog snapshot must be an object with stops and lines arrays")

type snapshot struct {
	GeneratedAt json.RawMessage    `json:"generated_at"`
	SourceURL   json.RawMessage    `json:"source_url"`
	Stops       *[]json.RawMessage `json:"stops"`
	Lines       *[]json.RawMessage `json:"lines"`
}

// Encode renders the catalog as indented JSON with a trailing newline.
// Non-ASCII text is written as is.
func Encode(catalog *ctdf.Catalog) ([]byte, error) {
	var buffer bytes.Buffer

	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(catalog); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// Decode reads a persisted snapshot. Only the root shape is required; records
// that do not fit the schema are skipped.
func Decode(data []byte) (*ctdf.Catalog, error) {
	var raw snapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrInvalidSnapshot, err)
	}
	if raw.Stops == nil || raw.Lines == nil {
		return nil, ErrInvalidSnapshot
	}

	catalog := &ctdf.Catalog{
		Stops: make([]ctdf.Stop, 0, len(*raw.Stops)),
		Lines: make([]ctdf.Line, 0, len(*raw.Lines)),
	}

	var generatedAt time.Time
	if json.Unmarshal(raw.GeneratedAt, &generatedAt) == nil {
		catalog.GeneratedAt = generatedAt
	}
	var sourceURL string
	if json.Unmarshal(raw.SourceURL, &sourceURL) == nil {
		catalog.SourceURL = sourceURL
	}

	for _, item := range *raw.Stops {
		var stop ctdf.Stop
		if json.Unmarshal(item, &stop) != nil {
			continue
		}
		if stop.Lines == nil {
			stop.Lines = []int{}
		}
		catalog.Stops = append(catalog.Stops, stop)
	}

	for _, item := range *raw.Lines {
		var line ctdf.Line
		if json.Unmarshal(item, &line) != nil {
			continue
		}
		catalog.Lines = append(catalog.Lines, line)
	}

	return catalog, nil
}
