package jq

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/itchyny/gojq"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// ErrNotFound is returned by Query when the query yields null, which for
// object paths means the path does not exist in the input.
var ErrNotFound = errors.New("jq: path not found")

// convertValue converts a value to a gojq-compatible format. Unstructured
// objects contribute their Object map; maps and slices pass through; other
// types are normalized via a JSON round trip.
func convertValue(value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	if v, ok := value.(unstructured.Unstructured); ok {
		return v.Object, nil
	}

	if v, ok := value.(*unstructured.Unstructured); ok {
		return v.Object, nil
	}

	rv := reflect.ValueOf(value)

	if rv.Kind() == reflect.Map {
		return value, nil
	}

	if rv.Kind() == reflect.Slice {
		if _, isByteSlice := value.([]byte); !isByteSlice {
			slice := make([]any, rv.Len())
			for i := range rv.Len() {
				slice[i] = rv.Index(i).Interface()
			}

			return slice, nil
		}
	}

	var normalized any

	jsonBytes, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, &normalized); err != nil {
		return nil, fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return normalized, nil
}

// Query executes a jq query against the provided value and returns the first
// result cast to type T. A null result yields ErrNotFound; a result of the
// wrong type is an error.
func Query[T any](value any, jqQuery string) (T, error) {
	var zero T

	compiledQuery, err := gojq.Parse(jqQuery)
	if err != nil {
		return zero, fmt.Errorf("failed to parse jq query: %w", err)
	}

	normalized, err := convertValue(value)
	if err != nil {
		return zero, err
	}

	iter := compiledQuery.Run(normalized)

	result, ok := iter.Next()
	if !ok {
		return zero, ErrNotFound
	}

	if err, isErr := result.(error); isErr {
		return zero, fmt.Errorf("jq query error: %w", err)
	}

	if result == nil {
		return zero, ErrNotFound
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("query result type mismatch: expected %T, got %T (value: %v)",
			zero, result, result)
	}

	return typed, nil
}
