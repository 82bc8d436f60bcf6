// Package mcputils binds loosely typed MCP tool arguments to request structs.
package mcputils

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// ArgumentGetter is an interface for getting arguments from a request
type ArgumentGetter interface {
	GetArguments() map[string]interface{}
}

// CoerceBindArguments binds MCP request arguments to a target struct using
// its json tags. Some MCP clients send every parameter as a string,
// including JSON-encoded arrays, objects, booleans and numbers; those are
// decoded into the field's type. Non-string scalars bound to string fields
// are converted (WeaklyTypedInput).
func CoerceBindArguments[T any](request ArgumentGetter, target *T) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			jsonStringHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:  target,
		TagName: "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(request.GetArguments())
}

// jsonStringHook decodes string arguments that carry JSON for non-string
// fields. Anything that does not parse is passed through unchanged for the
// later hooks.
func jsonStringHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	raw, _ := data.(string)
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return data, nil
	}

	switch kind := to.Kind(); {
	case kind == reflect.Slice:
		if !enclosed(trimmed, '[', ']') {
			return data, nil
		}
		slicePtr := reflect.New(to)
		if err := json.Unmarshal([]byte(trimmed), slicePtr.Interface()); err == nil {
			return slicePtr.Elem().Interface(), nil
		}

	case kind == reflect.Map || kind == reflect.Struct:
		if !enclosed(trimmed, '{', '}') {
			return data, nil
		}
		var result interface{}
		if err := json.Unmarshal([]byte(trimmed), &result); err == nil {
			return result, nil
		}

	case kind == reflect.Bool:
		if trimmed == "true" || trimmed == "false" {
			return trimmed == "true", nil
		}

	case kind >= reflect.Int && kind <= reflect.Float64:
		var result json.Number
		if err := json.Unmarshal([]byte(trimmed), &result); err == nil {
			// mapstructure converts json.Number to the target numeric type
			return result, nil
		}
	}

	return data, nil
}

func enclosed(s string, open, close byte) bool {
	return len(s) >= 2 && s[0] == open && s[len(s)-1] == close
}
