package catalogsource

import (
	"context"
	"reflect"

	"github.com/travigo/coruna-bus/pkg/ctdf"
	"github.com/travigo/coruna-bus/pkg/dataaggregator"
	"github.com/travigo/coruna-bus/pkg/dataaggregator/query"
	"github.com/travigo/coruna-bus/pkg/resolver"
)

// Source answers stop and line queries from a catalog snapshot. Catalog may
// be nil, in which case only ID selectors resolve.
type Source struct {
	Catalog *ctdf.Catalog
}

func (s Source) GetName() string {
	return "Catalog Lookup"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(resolver.StopMatch{}),
		reflect.TypeOf(resolver.LineMatch{}),
		reflect.TypeOf(ctdf.Catalog{}),
		reflect.TypeOf([]ctdf.Stop{}),
		reflect.TypeOf([]ctdf.Line{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.Stop:
		return resolver.ResolveStop(q.ID, q.Name, s.Catalog)
	case query.Line:
		return resolver.ResolveLine(q.ID, q.Name, s.Catalog)
	case query.Catalog:
		return s.Catalog, nil
	case query.StopSearch:
		return resolver.SearchStops(s.Catalog, q.Name), nil
	case query.LineList:
		if s.Catalog == nil {
			return []ctdf.Line{}, nil
		}
		return s.Catalog.Lines, nil
	}

	return nil, dataaggregator.ErrUnsupportedQuery
}
