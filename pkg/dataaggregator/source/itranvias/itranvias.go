package itranvias

import (
	"context"
	"reflect"

	"github.com/travigo/coruna-bus/pkg/arrivals"
	"github.com/travigo/coruna-bus/pkg/ctdf"
	"github.com/travigo/coruna-bus/pkg/dataaggregator"
	"github.com/travigo/coruna-bus/pkg/dataaggregator/query"
	"github.com/travigo/coruna-bus/pkg/fetcher"
)

// Source fetches live arrivals from the iTranvias API
type Source struct {
	Fetcher      fetcher.JSONFetcher
	URLTemplate  string
	Options      fetcher.Options
	LineMetadata map[int]ctdf.LineMetadata
}

func (s Source) GetName() string {
	return "iTranvias API"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.Arrivals{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.StopArrivals:
		return arrivals.Fetch(ctx, s.Fetcher, s.URLTemplate, q.StopID, s.Options, s.LineMetadata)
	}

	return nil, dataaggregator.ErrUnsupportedQuery
}
