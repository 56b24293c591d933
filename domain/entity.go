// Package domain contains the building blocks of a bounded context.
// This file defines Entities: mutable objects identified by a designated subset of
// their fields, never by object identity nor by all their fields.
package domain

import (
	"cosmokit/errors"
	"fmt"
	"reflect"
)

// Entity declares the exported fields that determine its identity.
// Those fields must not change while the entity is keyed in a repository.
type Entity interface {
	HashFields() []string
}

// IdentityOf computes the identity from the live field values of an entity.
func IdentityOf(e Entity) (Identity, error) {
	if e == nil {
		return "", fmt.Errorf("%w: nil entity", errors.ErrTypeMismatch)
	}
	v, ok := indirect(reflect.ValueOf(e))
	if !ok {
		return "", fmt.Errorf("%w: %T is not a struct", errors.ErrTypeMismatch, e)
	}
	fields := e.HashFields()
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: %T declares no hash field", errors.ErrMissingIdentityField, e)
	}

	var enc encoder
	for _, name := range fields {
		f := v.FieldByName(name)
		if !f.IsValid() || !f.CanInterface() {
			return "", fmt.Errorf("%w: %T has no exported field %q", errors.ErrMissingIdentityField, e, name)
		}
		if err := enc.field(name, f); err != nil {
			return "", err
		}
	}
	return Identity(enc.String()), nil
}

// IdentityFromFields computes the identity E would have if its hash fields held
// the given candidate values. Candidates not declared as hash fields are ignored.
func IdentityFromFields[E Entity](candidates map[string]any) (Identity, error) {
	witness, err := zeroEntity[E]()
	if err != nil {
		return "", err
	}
	fields := witness.HashFields()
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: %T declares no hash field", errors.ErrMissingIdentityField, witness)
	}

	var enc encoder
	for _, name := range fields {
		candidate, ok := candidates[name]
		if !ok {
			return "", fmt.Errorf("%w: %q", errors.ErrMissingIdentityField, name)
		}
		if err := enc.field(name, reflect.ValueOf(candidate)); err != nil {
			return "", err
		}
	}
	return Identity(enc.String()), nil
}

// Equal reports whether two entities are the same logical entity.
// Entities of different concrete types are never equal.
func Equal(a, b Entity) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	ia, err := IdentityOf(a)
	if err != nil {
		return false
	}
	ib, err := IdentityOf(b)
	if err != nil {
		return false
	}
	return ia == ib
}

// zeroEntity builds a usable instance of E to read its declared hash fields,
// allocating the struct when E is a pointer type.
func zeroEntity[E Entity]() (E, error) {
	var zero E
	t := reflect.TypeFor[E]()
	switch t.Kind() {
	case reflect.Interface:
		return zero, fmt.Errorf("%w: %s is not a concrete entity type", errors.ErrTypeMismatch, t)
	case reflect.Pointer:
		return reflect.New(t.Elem()).Interface().(E), nil
	default:
		return zero, nil
	}
}
