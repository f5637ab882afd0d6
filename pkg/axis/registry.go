package axis

import (
	"reflect"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/raykavin/gochartjs/pkg/logger"
)

// Option configures a Registry.
type Option func(*Registry)

// WithTimePolicy selects how time-like values are written.
func WithTimePolicy(policy TimePolicy) Option {
	return func(r *Registry) {
		r.policy = policy
	}
}

// WithLogger sets the logger used to trace registrations.
func WithLogger(log logger.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// WithoutDefaults builds an empty registry. Types must then be registered
// explicitly before they can be resolved.
func WithoutDefaults() Option {
	return func(r *Registry) {
		r.bare = true
	}
}

type entry struct {
	category Category
	strategy any // Strategy[T] for the key type
}

// Registry maps value types to their axis category and serialization
// strategy. Each type registers itself independently (see Register), so
// adding a type never touches the lookup path.
type Registry struct {
	mu      sync.RWMutex
	policy  TimePolicy
	bare    bool
	entries map[reflect.Type]entry
	log     logger.Logger
}

// registration hooks run by NewRegistry, one per group of value types
var defaults []func(*Registry)

func addDefaults(register func(*Registry)) {
	defaults = append(defaults, register)
}

// NewRegistry creates a registry holding the built-in value types: numbers,
// strings, time package types and the pgx/mongo/bson date types.
func NewRegistry(options ...Option) *Registry {
	r := &Registry{
		policy:  RFC3339,
		entries: make(map[reflect.Type]entry),
		log:     logger.Nop(),
	}

	for _, option := range options {
		option(r)
	}

	if !r.bare {
		for _, register := range defaults {
			register(r)
		}
	}

	r.log.WithField("policy", r.policy).Debugf("axis registry ready with %d types", r.Len())
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared registry using the RFC3339 time policy.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// TimePolicy returns the policy time-like types were registered with.
func (r *Registry) TimePolicy() TimePolicy {
	return r.policy
}

// Len returns the number of explicitly registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Types returns the registered types, in no particular order.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]reflect.Type, 0, len(r.entries))
	for typ := range r.entries {
		types = append(types, typ)
	}
	return types
}

// Register binds T to a category and strategy. A type can be registered
// once; registering it again, or registering a type that implements Value,
// fails with a *RegistrationError.
func Register[T any](r *Registry, category Category, strategy Strategy[T]) error {
	typ := reflect.TypeFor[T]()

	switch {
	case strategy == nil:
		return &RegistrationError{Type: typ, Err: ErrNilStrategy}
	case !category.Valid():
		return &RegistrationError{Type: typ, Err: ErrUnknownCategory}
	case typ.Implements(valueType):
		return &RegistrationError{Type: typ, Err: ErrAmbiguous}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[typ]; ok {
		return &RegistrationError{Type: typ, Err: ErrDuplicate}
	}

	r.entries[typ] = entry{category: category, strategy: strategy}
	r.log.WithField("type", typ).Tracef("registered %s strategy", category)

	return nil
}

// MustRegister is like Register but panics on error. Intended for
// registrations done once at startup.
func MustRegister[T any](r *Registry, category Category, strategy Strategy[T]) {
	if err := Register(r, category, strategy); err != nil {
		panic(err)
	}
}

// RegisterTime registers T as a Time category type, written according to the
// registry's time policy.
func RegisterTime[T any](r *Registry, toTime func(T) (time.Time, error)) error {
	return Register(r, Time, Instant(r.policy, toTime))
}

// MustRegisterTime is like RegisterTime but panics on error.
func MustRegisterTime[T any](r *Registry, toTime func(T) (time.Time, error)) {
	if err := RegisterTime(r, toTime); err != nil {
		panic(err)
	}
}

// Resolve returns the binding for T. Registered types win; otherwise T must
// implement Value. Anything else is an unregistered type and reported as a
// *RegistrationError rather than guessed.
func Resolve[T any](r *Registry) (Binding[T], error) {
	typ := reflect.TypeFor[T]()

	r.mu.RLock()
	e, ok := r.entries[typ]
	r.mu.RUnlock()

	if ok {
		strategy, ok := e.strategy.(Strategy[T])
		if !ok {
			return Binding[T]{}, &RegistrationError{Type: typ, Err: ErrUnregistered}
		}
		return Binding[T]{typ: typ, category: e.category, strategy: strategy}, nil
	}

	if self, ok := capability[T](typ); ok {
		policy := r.policy
		pointer := typ.Kind() == reflect.Pointer

		return Binding[T]{
			typ:      typ,
			category: self.AxisCategory(),
			strategy: func(value T, stream *jsoniter.Stream) error {
				if pointer && reflect.ValueOf(value).IsNil() {
					return ErrInvalid
				}
				return any(value).(Value).WriteAxisValue(stream, policy)
			},
		}, nil
	}

	return Binding[T]{}, &RegistrationError{Type: typ, Err: ErrUnregistered}
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](r *Registry) Binding[T] {
	binding, err := Resolve[T](r)
	if err != nil {
		panic(err)
	}
	return binding
}

// CategoryOf classifies T.
func CategoryOf[T any](r *Registry) (Category, error) {
	binding, err := Resolve[T](r)
	if err != nil {
		return 0, err
	}
	return binding.Category(), nil
}

// Wrap resolves T and wraps value in one step.
func Wrap[T any](r *Registry, value T) (TypedValue[T], error) {
	binding, err := Resolve[T](r)
	if err != nil {
		return TypedValue[T]{}, err
	}
	return binding.Wrap(value), nil
}
