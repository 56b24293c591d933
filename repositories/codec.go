package repositories

import (
	"cosmokit/domain"
	"encoding/json"
	"reflect"
)

// Codec turns aggregates into stored bytes and back.
// Decode must return a fresh instance: pending events are never persisted.
type Codec[A domain.Aggregate] interface {
	Encode(aggregate A) ([]byte, error)
	Decode(data []byte) (A, error)
}

type JSONCodec[A domain.Aggregate] struct{}

func (JSONCodec[A]) Encode(aggregate A) ([]byte, error) {
	return json.Marshal(aggregate)
}

func (JSONCodec[A]) Decode(data []byte) (A, error) {
	aggregate := reflect.New(reflect.TypeFor[A]().Elem()).Interface().(A)
	if err := json.Unmarshal(data, aggregate); err != nil {
		var zero A
		return zero, err
	}
	return aggregate, nil
}
