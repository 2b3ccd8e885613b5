// Package parameters handles generic configuration Params, a map[string]string that the
// user can set with a string like "max_turn=5,leg=20,bfs".
package parameters

import (
	"strconv"
	"strings"

	"github.com/gzhynko/astar-pathfinding-heightmap/internal/generics"
	"github.com/pkg/errors"
)

// Params represent generic configuration parameters.
type Params map[string]string

// Value enumerates the types that can be parsed from Params.
type Value interface {
	bool | int | int64 | float32 | float64 | string
}

// NewFromConfigString create params from user's configuration string.
//
// Parts are separated by commas, and each part is either a "key=value" or just a "key", in
// which case the value is empty (and interpreted as true for booleans). Empty parts are ignored.
// See GetParamOr and PopParamOr to parse values from this map.
func NewFromConfigString(config string) Params {
	params := make(Params)
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=") // Only the first '=' separates key and value.
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return params
}

// PopParamOr is like GetParamOr, but it also deletes from the params map the retrieved parameter.
func PopParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}

// GetParamOr attempts to parse a parameter to the given type if the key is present, or returns the defaultValue
// if not.
//
// For bool types, a key without a value is interpreted as true. For numeric types, a key
// without a value keeps the default.
func GetParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}
	var parsed any
	var err error
	switch any(defaultValue).(type) {
	case string:
		parsed = value
	case bool:
		switch strings.ToLower(value) {
		case "", "true", "1":
			parsed = true
		case "false", "0":
			parsed = false
		default:
			return defaultValue, errors.Errorf("failed to parse configuration %s=%q to bool", key, value)
		}
	case int:
		if value == "" {
			return defaultValue, nil
		}
		parsed, err = strconv.Atoi(value)
	case int64:
		if value == "" {
			return defaultValue, nil
		}
		parsed, err = strconv.ParseInt(value, 10, 64)
	case float32:
		if value == "" {
			return defaultValue, nil
		}
		var f float64
		f, err = strconv.ParseFloat(value, 32)
		parsed = float32(f)
	case float64:
		if value == "" {
			return defaultValue, nil
		}
		parsed, err = strconv.ParseFloat(value, 64)
	}
	if err != nil {
		return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q as %T", key, value, defaultValue)
	}
	return parsed.(T), nil
}

// CheckAllConsumed returns an error listing the keys still in params. It is used after all
// the consumers have popped their parameters.
func CheckAllConsumed(params Params) error {
	if len(params) == 0 {
		return nil
	}
	return errors.Errorf("unknown parameters \"%s\" passed", strings.Join(generics.KeysSlice(params), "\", \""))
}
