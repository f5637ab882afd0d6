package axis

import (
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
)

// Value is implemented by types that classify and serialize themselves
// instead of being registered.
type Value interface {
	AxisCategory() Category
	WriteAxisValue(stream *jsoniter.Stream, policy TimePolicy) error
}

var valueType = reflect.TypeFor[Value]()

// capability returns a Value usable to read T's category, allocating a zero
// element for pointer types so the call cannot hit a nil receiver.
func capability[T any](typ reflect.Type) (Value, bool) {
	if !typ.Implements(valueType) {
		return nil, false
	}

	if typ.Kind() == reflect.Pointer {
		self, ok := reflect.New(typ.Elem()).Interface().(Value)
		return self, ok
	}

	var zero T
	self, ok := any(zero).(Value)
	return self, ok
}

// Binding is the resolved category and strategy of one value type.
type Binding[T any] struct {
	typ      reflect.Type
	category Category
	strategy Strategy[T]
}

// Category returns the axis category of T.
func (b Binding[T]) Category() Category {
	return b.category
}

// Type returns the bound type.
func (b Binding[T]) Type() reflect.Type {
	return b.typ
}

// Wrap binds value to the resolved strategy.
func (b Binding[T]) Wrap(value T) TypedValue[T] {
	return TypedValue[T]{value: value, binding: b}
}

// WrapAll wraps every value, keeping order.
func (b Binding[T]) WrapAll(values ...T) []TypedValue[T] {
	return lo.Map(values, func(value T, _ int) TypedValue[T] {
		return b.Wrap(value)
	})
}

// TypedValue carries a raw value together with the strategy that writes it.
// It is immutable once built.
type TypedValue[T any] struct {
	value   T
	binding Binding[T]
}

// Value returns the raw value.
func (v TypedValue[T]) Value() T {
	return v.value
}

// Category returns the axis category the value was bound with.
func (v TypedValue[T]) Category() Category {
	return v.binding.category
}

// Encode writes the value into stream using its bound strategy.
func (v TypedValue[T]) Encode(stream *jsoniter.Stream) error {
	if v.binding.strategy == nil {
		return &FormatError{Type: reflect.TypeFor[T](), Value: v.value, Err: ErrUnbound}
	}

	if err := v.binding.strategy(v.value, stream); err != nil {
		return v.formatError(err)
	}

	if stream.Error != nil {
		return v.formatError(stream.Error)
	}

	return nil
}

// MarshalJSON implements json.Marshaler.
func (v TypedValue[T]) MarshalJSON() ([]byte, error) {
	return Encode(v.Encode)
}

func (v TypedValue[T]) formatError(err error) error {
	if _, ok := err.(*FormatError); ok {
		return err
	}
	return &FormatError{Type: v.binding.typ, Value: v.value, Err: err}
}

var streams = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode runs write against a pooled stream and returns a copy of what it
// produced.
func Encode(write func(stream *jsoniter.Stream) error) ([]byte, error) {
	stream := streams.BorrowStream(nil)
	defer streams.ReturnStream(stream)

	if err := write(stream); err != nil {
		return nil, err
	}

	if stream.Error != nil {
		return nil, stream.Error
	}

	return append([]byte(nil), stream.Buffer()...), nil
}
