package axis

import "time"

func init() {
	addDefaults(registerNumbers)
	addDefaults(registerStdTime)
}

func registerNumbers(r *Registry) {
	MustRegister(r, Linear, Signed[int]())
	MustRegister(r, Linear, Signed[int8]())
	MustRegister(r, Linear, Signed[int16]())
	MustRegister(r, Linear, Signed[int32]())
	MustRegister(r, Linear, Signed[int64]())
	MustRegister(r, Linear, Unsigned[uint]())
	MustRegister(r, Linear, Unsigned[uint8]())
	MustRegister(r, Linear, Unsigned[uint16]())
	MustRegister(r, Linear, Unsigned[uint32]())
	MustRegister(r, Linear, Unsigned[uint64]())
	MustRegister(r, Linear, Float[float32]())
	MustRegister(r, Linear, Float[float64]())

	MustRegister(r, Categorical, Text[string]())
}

func registerStdTime(r *Registry) {
	MustRegisterTime(r, func(t time.Time) (time.Time, error) {
		return t, nil
	})

	MustRegister(r, Categorical, Named(time.Sunday, time.Saturday))
	MustRegister(r, Categorical, Named(time.January, time.December))
}
