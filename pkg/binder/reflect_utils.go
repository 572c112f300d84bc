package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// lookupFunc returns the raw values for a parameter name.
type lookupFunc func(name string) []string

// bindStruct walks the exported fields of the struct v points to and sets
// every field tagged with tagName from lookup. Embedded structs are walked
// as if their fields belonged to the parent.
func bindStruct(v any, tagName string, lookup lookupFunc, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}

	return bindFields(rv, tagName, lookup, bindErr)
}

func bindFields(rv reflect.Value, tagName string, lookup lookupFunc, bindErr error) error {
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.Tag.Get(tagName) == "" {
			if err := bindFields(field, tagName, lookup, bindErr); err != nil {
				return err
			}
			continue
		}

		if !field.CanSet() {
			continue
		}

		name, ok := paramName(sf, tagName)
		if !ok {
			continue
		}

		values := lookup(name)
		if len(values) == 0 {
			continue
		}

		if err := setFieldValue(field, sf.Type, values); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}

	return nil
}

// paramName reads the parameter name from the field tag. Fields without the
// tag, or tagged "-", are not bound.
func paramName(sf reflect.StructField, tagName string) (string, bool) {
	tag := sf.Tag.Get(tagName)
	if tag == "" || tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, name != ""
}

// setFieldValue sets field from the first of values, or from all of them for
// slice fields.
func setFieldValue(field reflect.Value, typ reflect.Type, values []string) error {
	switch typ.Kind() {
	case reflect.Ptr:
		if field.IsNil() {
			field.Set(reflect.New(typ.Elem()))
		}
		return setFieldValue(field.Elem(), typ.Elem(), values)

	case reflect.Slice:
		slice := reflect.MakeSlice(typ, len(values), len(values))
		for i, v := range values {
			if err := setFieldValue(slice.Index(i), typ.Elem(), []string{v}); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}

	value := values[0]

	switch typ.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Bool:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", typ.Kind())
	}

	return nil
}

// parseBool accepts strconv.ParseBool input plus the checkbox value "on".
func parseBool(value string) (bool, error) {
	if b, err := strconv.ParseBool(value); err == nil {
		return b, nil
	}
	switch strings.ToLower(value) {
	case "on", "yes", "checked":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", value)
}
