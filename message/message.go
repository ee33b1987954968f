// Copyright 2024 Boardmill Authors

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package message implements JSON-based configuration objects with schema
// validation driven by struct tags.
package message

import (
	"encoding/json"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/stockparfait/errors"
)

// Message is the primitive building block of a JSON-based configuration. It
// typically represents a JSON object, and is implemented by a struct pointer
// holding the expected fields.
//
// A typical implementation:
//
//	type Report struct {
//	  Title   string   `json:"title" required:"true"`
//	  Rows    int      `json:"rows" default:"20"`
//	  Format  string   `json:"format" choices:"csv,text" default:"text"`
//	  Boards  []int64  `json:"boards"`
//	  Ignored int      `json:"-"`
//	  Parent  *Report  // recursively parsed Message
//	  Subs    []Report `json:"subs"` // *Report implements Message, Report
//	                                 // doesn't, but is still populated
//	}
//
//	func (r *Report) InitMessage(js interface{}) error {
//	  return message.Init(r, js)
//	}
type Message interface {
	// InitMessage converts a generic JSON value read by the encoding/json
	// package into the specific message: checks required fields, sets defaults
	// of optional fields, and rejects unrecognized fields. A Message containing
	// other Messages as fields calls this method recursively on them.
	InitMessage(js interface{}) error
}

// messageType is the reflection of the Message interface; TypeOf of a pointer
// to the interface is used because an interface type itself has no values.
var messageType = reflect.TypeOf((*Message)(nil)).Elem()

// Init is the generic implementation behind most InitMessage methods. It
// expects m to be a struct pointer and js the generic JSON value of an object.
//
// Recognized struct tags:
// `json:"field_name" required:"true" default:"value" choices:"one,two,three"`
//
// The `json:` tag is compatible with the encoding/json package: only exported
// fields are part of a message, a missing tag is equivalent to the field name,
// `json:"-"` skips the field, and qualifiers like `,omitempty` are accepted
// but ignored. The "choices" tag is supported only for string fields.
func Init(m Message, js interface{}) error {
	rt := reflect.TypeOf(m)
	if rt.Kind() != reflect.Ptr || rt.Elem().Kind() != reflect.Struct {
		return errors.Reason("message must be a struct pointer, got %s", rt)
	}
	if js == nil {
		return errors.Reason("JSON object is nil")
	}
	jsMap, ok := js.(map[string]interface{})
	if !ok {
		return errors.Reason("JSON object is not a map: %v", js)
	}

	rt = rt.Elem()
	rv := reflect.ValueOf(m).Elem()
	seen := make(map[string]struct{})
	var missing []string
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" { // unexported
			continue
		}
		name, skip := jsonName(f)
		if skip {
			continue
		}
		jv, ok := jsMap[name]
		if ok {
			seen[name] = struct{}{}
			v, err := convert(jv, f.Type)
			if err != nil {
				return errors.Annotate(err, "error assigning field %s", f.Name)
			}
			if err := set(f, rv.Field(i), v); err != nil {
				return err
			}
			continue
		}
		// No value in JSON: required, default, or zero value.
		if f.Tag.Get("required") == "true" {
			missing = append(missing, name)
			continue
		}
		if d, ok := f.Tag.Lookup("default"); ok {
			v, err := fromString(d, f.Type)
			if err != nil {
				return errors.Annotate(err, "error setting default value for %s", f.Name)
			}
			if err := set(f, rv.Field(i), v); err != nil {
				return err
			}
			continue
		}
		v, err := convert(nil, f.Type)
		if err != nil {
			return errors.Annotate(err, "error creating zero value for %s", f.Name)
		}
		if err := set(f, rv.Field(i), v); err != nil {
			return errors.Annotate(err, "error setting zero value for %s", f.Name)
		}
	}
	if len(missing) != 0 {
		return errors.Reason("missing required fields: %s",
			strings.Join(missing, ", "))
	}
	var extra []string
	for k := range jsMap {
		if _, ok := seen[k]; !ok {
			extra = append(extra, k)
		}
	}
	if len(extra) != 0 {
		return errors.Reason("unsupported fields for %s: %s",
			rt.Name(), strings.Join(extra, ", "))
	}
	return nil
}

// FromJSON parses a JSON string and initializes the message from it.
func FromJSON(m Message, js string) error {
	var v interface{}
	if err := json.Unmarshal([]byte(js), &v); err != nil {
		return errors.Annotate(err, "failed to unmarshal JSON")
	}
	return m.InitMessage(v)
}

// FromFile reads a JSON file and initializes the message from it.
func FromFile(m Message, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Annotate(err, "failed to read file '%s'", path)
	}
	if err := FromJSON(m, string(data)); err != nil {
		return errors.Annotate(err, "failed to parse file '%s'", path)
	}
	return nil
}

// jsonName resolves the JSON key of a struct field per its json tag; the
// second value indicates the field is skipped entirely.
func jsonName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name, false
	}
	name := strings.Split(tag, ",")[0]
	if name == "-" {
		return "", true
	}
	if name == "" {
		return f.Name, false
	}
	return name, false
}

// set assigns v to the struct field value fv, enforcing the choices tag.
func set(f reflect.StructField, fv, v reflect.Value) error {
	if choices, ok := f.Tag.Lookup("choices"); ok {
		if f.Type.Kind() != reflect.String {
			return errors.Reason("choices tag applied to a non-string field: %s", f.Name)
		}
		s := v.Interface().(string)
		if !StringIn(s, strings.Split(choices, ",")...) {
			return errors.Reason("value for %s is not in its choice list: '%s'",
				f.Name, s)
		}
	}
	fv.Set(v)
	return nil
}

// initMessage initializes a fresh value of the pointer type t, which must
// implement Message, from the JSON value jv.
func initMessage(jv interface{}, t reflect.Type) (reflect.Value, error) {
	var none reflect.Value
	if t.Kind() != reflect.Ptr {
		return none, errors.Reason("type %s implements Message but is not a pointer", t)
	}
	ptr := reflect.New(t.Elem())
	if err := ptr.Interface().(Message).InitMessage(jv); err != nil {
		return none, errors.Annotate(err, "%s.InitMessage() failed", t.Elem().Name())
	}
	return ptr, nil
}

// convert recursively converts a raw JSON value to the target type: basic
// types, slices, map[string]* and Message implementations. A nil jv yields
// the zero value, or the default-initialized value for Messages.
func convert(jv interface{}, t reflect.Type) (reflect.Value, error) {
	var none reflect.Value
	if t.Implements(messageType) {
		if jv == nil {
			return reflect.Zero(t), nil
		}
		return initMessage(jv, t)
	}
	if ptr := reflect.PtrTo(t); ptr.Implements(messageType) {
		if jv == nil {
			jv = make(map[string]interface{}) // force default values for t
		}
		v, err := initMessage(jv, ptr)
		if err != nil {
			return none, err
		}
		return v.Elem(), nil
	}
	if jv == nil {
		return reflect.Zero(t), nil
	}
	switch t.Kind() {
	case reflect.Ptr:
		v, err := convert(jv, t.Elem())
		if err != nil {
			return none, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(v)
		return ptr, nil

	case reflect.Bool:
		b, ok := jv.(bool)
		if !ok {
			return none, errors.Reason("not a bool type: %v", jv)
		}
		return reflect.ValueOf(b), nil

	case reflect.Int, reflect.Int64:
		x, ok := jv.(float64)
		if !ok {
			return none, errors.Reason("not a numeric type: %v", jv)
		}
		v := reflect.New(t).Elem()
		v.SetInt(int64(x))
		return v, nil

	case reflect.Float64:
		x, ok := jv.(float64)
		if !ok {
			return none, errors.Reason("not a numeric type: %v", jv)
		}
		return reflect.ValueOf(x), nil

	case reflect.String:
		s, ok := jv.(string)
		if !ok {
			return none, errors.Reason("not a string type: %v", jv)
		}
		return reflect.ValueOf(s), nil

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return none, errors.Reason("map[%s] is not supported", t.Key().Kind())
		}
		m, ok := jv.(map[string]interface{})
		if !ok {
			return none, errors.Reason("not a map[string] type: %v", jv)
		}
		res := reflect.MakeMap(t)
		for k, v := range m {
			el, err := convert(v, t.Elem())
			if err != nil {
				return none, err
			}
			res.SetMapIndex(reflect.ValueOf(k), el)
		}
		return res, nil

	case reflect.Slice:
		s, ok := jv.([]interface{})
		if !ok {
			return none, errors.Reason("not a slice type: %v", jv)
		}
		res := reflect.MakeSlice(t, len(s), len(s))
		for i, v := range s {
			el, err := convert(v, t.Elem())
			if err != nil {
				return none, err
			}
			res.Index(i).Set(el)
		}
		return res, nil
	}
	return none, errors.Reason("unsupported type: %s", t)
}

// fromString converts a struct tag string to the type t, for default values.
func fromString(s string, t reflect.Type) (reflect.Value, error) {
	var none reflect.Value
	switch t.Kind() {
	case reflect.Ptr:
		v, err := fromString(s, t.Elem())
		if err != nil {
			return none, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(v)
		return ptr, nil
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return none, errors.Annotate(err, "invalid bool value: %s", s)
		}
		return reflect.ValueOf(b), nil
	case reflect.Int, reflect.Int64:
		x, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return none, errors.Annotate(err, "invalid int value: %s", s)
		}
		v := reflect.New(t).Elem()
		v.SetInt(x)
		return v, nil
	case reflect.Float64:
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return none, errors.Annotate(err, "invalid float64 value: %s", s)
		}
		return reflect.ValueOf(x), nil
	case reflect.String:
		return reflect.ValueOf(s), nil
	}
	return none, errors.Reason("type %s is not supported", t)
}

// StringIn checks that s equals one of the values.
func StringIn(s string, values ...string) bool {
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}
