package registry

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/funvibe/funcall/internal/object"
)

var objectType = reflect.TypeOf((*object.Object)(nil)).Elem()

// FromObject converts one bound dynamic value into the Go value a native
// parameter expects. The binder never looks inside values; this is the
// extractor stage, and a failure here reports against the argument name,
// not the callable as a whole.
func FromObject(obj object.Object, target reflect.Type) (reflect.Value, error) {
	// Pass-through: native parameter wants the dynamic value itself.
	if target == objectType {
		return reflect.ValueOf(obj), nil
	}
	if target.Kind() == reflect.Ptr && reflect.TypeOf(obj) == target {
		return reflect.ValueOf(obj), nil
	}

	switch o := obj.(type) {
	case *object.Integer:
		switch target.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			v := reflect.New(target).Elem()
			v.SetInt(o.Value)
			return v, nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if o.Value < 0 {
				return reflect.Value{}, fmt.Errorf("cannot convert negative %d to %s", o.Value, target)
			}
			v := reflect.New(target).Elem()
			v.SetUint(uint64(o.Value))
			return v, nil
		case reflect.Float32, reflect.Float64:
			v := reflect.New(target).Elem()
			v.SetFloat(float64(o.Value))
			return v, nil
		}
	case *object.Float:
		switch target.Kind() {
		case reflect.Float32, reflect.Float64:
			v := reflect.New(target).Elem()
			v.SetFloat(o.Value)
			return v, nil
		}
	case *object.Boolean:
		if target.Kind() == reflect.Bool {
			v := reflect.New(target).Elem()
			v.SetBool(o.Value)
			return v, nil
		}
	case *object.String:
		if target.Kind() == reflect.String {
			v := reflect.New(target).Elem()
			v.SetString(o.Value)
			return v, nil
		}
	case *object.List:
		if target.Kind() == reflect.Slice {
			out := reflect.MakeSlice(target, 0, len(o.Elements))
			for i, el := range o.Elements {
				gv, err := FromObject(el, target.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("element %d: %v", i, err)
				}
				out = reflect.Append(out, gv)
			}
			return out, nil
		}
	case *object.Record:
		if target.Kind() == reflect.Map && target.Key().Kind() == reflect.String {
			out := reflect.MakeMapWithSize(target, len(o.Names))
			for _, name := range o.Names {
				gv, err := FromObject(o.Fields[name], target.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("field '%s': %v", name, err)
				}
				out.SetMapIndex(reflect.ValueOf(name), gv)
			}
			return out, nil
		}
	case *object.Nil:
		switch target.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(target), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot convert nil to %s", target)
	}

	return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", obj.Type(), target)
}

// ToObject converts a native Go result back into a dynamic value.
func ToObject(val interface{}) (object.Object, error) {
	if val == nil {
		return object.NilValue, nil
	}
	if obj, ok := val.(object.Object); ok {
		return obj, nil
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &object.Integer{Value: v.Int()}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &object.Integer{Value: int64(v.Uint())}, nil
	case reflect.Float32, reflect.Float64:
		return &object.Float{Value: v.Float()}, nil
	case reflect.Bool:
		if v.Bool() {
			return object.TRUE, nil
		}
		return object.FALSE, nil
	case reflect.String:
		return &object.String{Value: v.String()}, nil
	case reflect.Slice, reflect.Array:
		list := &object.List{Elements: make([]object.Object, 0, v.Len())}
		for i := 0; i < v.Len(); i++ {
			el, err := ToObject(v.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("element %d: %v", i, err)
			}
			list.Elements = append(list.Elements, el)
		}
		return list, nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported map key type %s", v.Type().Key())
		}
		rec := object.NewRecord()
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, k.String())
		}
		// Map iteration order is random; keep the record deterministic.
		sort.Strings(keys)
		for _, k := range keys {
			el, err := ToObject(v.MapIndex(reflect.ValueOf(k)).Interface())
			if err != nil {
				return nil, fmt.Errorf("key '%s': %v", k, err)
			}
			rec.Set(k, el)
		}
		return rec, nil
	default:
		return nil, fmt.Errorf("unsupported Go type %T", val)
	}
}
