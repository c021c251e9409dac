package configschema

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// envSnapshot returns the environment variables starting with prefix,
// keyed by the remainder of their name.
func envSnapshot(prefix string) map[string]string {
	snapshot := make(map[string]string)
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		snapshot[strings.TrimPrefix(key, prefix)] = value
	}
	return snapshot
}

// applyDefaults sets every field carrying a `default` tag.
func applyDefaults(target any) error {
	return walkFields(target, func(field reflect.Value, sf reflect.StructField) error {
		value := sf.Tag.Get("default")
		if value == "" {
			return nil
		}
		return setFieldValue(field, value)
	})
}

// bindEnv overwrites every field whose `env` tag is present in snapshot.
func bindEnv(snapshot map[string]string, target any) error {
	return walkFields(target, func(field reflect.Value, sf reflect.StructField) error {
		key := sf.Tag.Get("env")
		if key == "" {
			return nil
		}
		value, ok := snapshot[key]
		if !ok {
			return nil
		}
		if err := setFieldValue(field, value); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		return nil
	})
}

func walkFields(target any, fn func(reflect.Value, reflect.StructField) error) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to struct")
	}
	return walkStruct(v.Elem(), fn)
}

func walkStruct(structValue reflect.Value, fn func(reflect.Value, reflect.StructField) error) error {
	structType := structValue.Type()
	for i := 0; i < structValue.NumField(); i++ {
		field := structValue.Field(i)
		sf := structType.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			if err := walkStruct(field, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(field, sf); err != nil {
			return err
		}
	}
	return nil
}

// setFieldValue parses value into field. Booleans accept the usual
// strconv spellings.
func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
	return nil
}
