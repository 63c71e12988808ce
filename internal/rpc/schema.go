package rpc

import (
	"reflect"
	"strings"
)

// FieldInfo describes one parameter of an operation as advertised by the
// schema directory.
type FieldInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// OperationInfo describes one registered operation.
type OperationInfo struct {
	Name         string      `json:"name"`
	RequiresAuth bool        `json:"requiresAuth"`
	Parameters   []FieldInfo `json:"parameters"`
}

// Directory lists every registered operation in registration order, with
// parameter shapes derived from the input struct tags. The transport layer
// serves this as the service's discovery document.
func (d *Dispatcher) Directory() []OperationInfo {
	infos := make([]OperationInfo, 0, len(d.order))
	for _, name := range d.order {
		op := d.ops[name]
		info := OperationInfo{
			Name:         op.Name,
			RequiresAuth: op.RequiresAuth,
			Parameters:   []FieldInfo{},
		}
		if op.NewInput != nil {
			info.Parameters = describeInput(op.NewInput())
		}
		infos = append(infos, info)
	}
	return infos
}

// describeInput reflects over an input struct's fields, reading the wire
// name from the json tag and the required flag from the validate tag.
func describeInput(input any) []FieldInfo {
	t := reflect.TypeOf(input)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return []FieldInfo{}
	}

	fields := make([]FieldInfo, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := f.Name
		if tag := f.Tag.Get("json"); tag != "" {
			jsonName, _, _ := strings.Cut(tag, ",")
			if jsonName == "-" {
				continue
			}
			if jsonName != "" {
				name = jsonName
			}
		}

		fields = append(fields, FieldInfo{
			Name:     name,
			Type:     typeName(f.Type),
			Required: hasRequiredRule(f.Tag.Get("validate")),
		})
	}
	return fields
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	default:
		return t.Kind().String()
	}
}

func hasRequiredRule(validateTag string) bool {
	for _, rule := range strings.Split(validateTag, ",") {
		if rule == "required" {
			return true
		}
	}
	return false
}
