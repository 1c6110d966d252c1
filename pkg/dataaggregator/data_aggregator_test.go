package dataaggregator

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeting struct {
	Text string
}

type greetingQuery struct {
	Name string
}

type greetingSource struct {
	name    string
	handles string
}

func (s greetingSource) GetName() string {
	return s.name
}

func (s greetingSource) Supports() []reflect.Type {
	return []reflect.Type{reflect.TypeOf(greeting{})}
}

func (s greetingSource) Lookup(ctx context.Context, q any) (interface{}, error) {
	query, ok := q.(greetingQuery)
	if !ok || query.Name != s.handles {
		return nil, ErrUnsupportedQuery
	}
	if query.Name == "error" {
		return nil, errors.New("lookup failed")
	}

	return &greeting{Text: "hola " + query.Name + " from " + s.name}, nil
}

func TestLookup(t *testing.T) {
	aggregator := New()
	aggregator.RegisterSource(greetingSource{name: "first", handles: "ana"})
	aggregator.RegisterSource(greetingSource{name: "second", handles: "xoan"})
	aggregator.RegisterSource(greetingSource{name: "third", handles: "error"})

	result, err := Lookup[*greeting](context.Background(), aggregator, greetingQuery{Name: "xoan"})
	require.NoError(t, err)
	assert.Equal(t, "hola xoan from second", result.Text)

	result, err = Lookup[*greeting](context.Background(), aggregator, greetingQuery{Name: "error"})
	assert.EqualError(t, err, "lookup failed")
	assert.Nil(t, result)

	_, err = Lookup[*greeting](context.Background(), aggregator, greetingQuery{Name: "nobody"})
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = Lookup[string](context.Background(), aggregator, greetingQuery{Name: "ana"})
	assert.ErrorIs(t, err, ErrNoSource)
}
