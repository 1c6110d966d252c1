package dataaggregator

import (
	"context"
	"errors"
	"reflect"

	"github.com/rs/zerolog/log"
)

var ErrNoSource = errors.New("failed to find a matching Data Source for type")

type Aggregator struct {
	Sources []DataSource
}

func New() *Aggregator {
	return &Aggregator{}
}

func (a *Aggregator) RegisterSource(source DataSource) {
	a.Sources = append(a.Sources, source)

	log.Debug().Str("name", source.GetName()).Msg("Registering new Data Source")
}

// Lookup asks the first source supporting T to answer query. A source that
// returns ErrUnsupportedQuery passes the query on to the next one.
func Lookup[T any](ctx context.Context, a *Aggregator, query any) (T, error) {
	var empty T

	lookupType := reflect.TypeOf(*new(T))
	if lookupType.Kind() == reflect.Pointer {
		lookupType = lookupType.Elem()
	}

	for _, source := range a.Sources {
		matches := false
		for _, supportedType := range source.Supports() {
			if lookupType == supportedType {
				matches = true
				break
			}
		}

		if !matches {
			continue
		}

		returnValue, returnError := source.Lookup(ctx, query)
		if errors.Is(returnError, ErrUnsupportedQuery) {
			continue
		}

		if returnValue == nil {
			return empty, returnError
		}
		return returnValue.(T), returnError
	}

	return empty, ErrNoSource
}
