package dataaggregator

import (
	"context"
	"errors"
	"reflect"
)

var ErrUnsupportedQuery = errors.New("unable to lookup")

type DataSource interface {
	GetName() string
	Supports() []reflect.Type
	Lookup(context.Context, any) (interface{}, error)
}
