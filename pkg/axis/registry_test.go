package axis

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/cristalhq/bson/bsonproto"
	"github.com/jackc/pgx/v5/pgtype"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/constraints"
)

func encode[T any](t *testing.T, r *Registry, value T) string {
	t.Helper()

	wrapped, err := Wrap(r, value)
	require.NoError(t, err)

	data, err := wrapped.MarshalJSON()
	require.NoError(t, err)
	return string(data)
}

func encodeErr[T any](t *testing.T, r *Registry, value T) error {
	t.Helper()

	wrapped, err := Wrap(r, value)
	require.NoError(t, err)

	_, err = wrapped.MarshalJSON()
	return err
}

func assertNumber[T constraints.Integer | constraints.Float](t *testing.T, r *Registry, value T) {
	t.Helper()

	category, err := CategoryOf[T](r)
	require.NoError(t, err)
	require.Equal(t, Linear, category)

	var back T
	require.NoError(t, json.Unmarshal([]byte(encode(t, r, value)), &back))
	require.Equal(t, value, back)
}

func TestRegistry_Numbers(t *testing.T) {
	r := NewRegistry()

	assertNumber(t, r, int(-42))
	assertNumber(t, r, int8(math.MinInt8))
	assertNumber(t, r, int16(math.MaxInt16))
	assertNumber(t, r, int32(math.MinInt32))
	assertNumber(t, r, int64(math.MaxInt64))
	assertNumber(t, r, uint(7))
	assertNumber(t, r, uint8(math.MaxUint8))
	assertNumber(t, r, uint16(math.MaxUint16))
	assertNumber(t, r, uint32(math.MaxUint32))
	assertNumber(t, r, uint64(math.MaxUint64))
	assertNumber(t, r, float32(0.1))
	assertNumber(t, r, float64(12.5))
	assertNumber(t, r, float64(-1e-9))
	assertNumber(t, r, float64(6.02214076e23))

	require.Equal(t, "14", encode(t, r, 14.0))
	require.Equal(t, "0.1", encode(t, r, float32(0.1)))
}

func TestRegistry_NonFiniteFloat(t *testing.T) {
	r := NewRegistry()

	for _, value := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := encodeErr(t, r, value)

		var formatErr *FormatError
		require.ErrorAs(t, err, &formatErr)
		require.ErrorIs(t, err, ErrNotFinite)
		require.Equal(t, reflect.TypeFor[float64](), formatErr.Type)
	}
}

func TestRegistry_Text(t *testing.T) {
	r := NewRegistry()

	category, err := CategoryOf[string](r)
	require.NoError(t, err)
	require.Equal(t, Categorical, category)

	for _, value := range []string{"First", "", `quote " and \ slash`, "ünïcødé"} {
		var back string
		require.NoError(t, json.Unmarshal([]byte(encode(t, r, value)), &back))
		require.Equal(t, value, back)
	}
}

func TestRegistry_TimeRFC3339(t *testing.T) {
	r := NewRegistry(WithTimePolicy(RFC3339))
	require.Equal(t, RFC3339, r.TimePolicy())

	category, err := CategoryOf[time.Time](r)
	require.NoError(t, err)
	require.Equal(t, Time, category)

	zone := time.FixedZone("UTC+2", 2*60*60)
	instants := []time.Time{
		time.Date(2024, time.March, 1, 12, 30, 45, 123456789, zone),
		time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC),
	}

	for _, instant := range instants {
		var text string
		require.NoError(t, json.Unmarshal([]byte(encode(t, r, instant)), &text))

		parsed, err := time.Parse(time.RFC3339, text)
		require.NoError(t, err)
		require.True(t, instant.Equal(parsed), "%s != %s", instant, parsed)
	}
}

func TestRegistry_TimeRFC3339_YearOutOfRange(t *testing.T) {
	r := NewRegistry()

	err := encodeErr(t, r, time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC))

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestRegistry_TimeEpochMillis(t *testing.T) {
	r := NewRegistry(WithTimePolicy(EpochMillis))
	instant := time.Date(2024, time.March, 1, 12, 30, 45, 987654321, time.UTC)

	require.Equal(t, strconv.FormatInt(instant.UnixMilli(), 10), encode(t, r, instant))
	require.Equal(t, "0", encode(t, r, time.Unix(0, 0)))
}

func TestRegistry_WeekdayAndMonth(t *testing.T) {
	r := NewRegistry()

	category, err := CategoryOf[time.Weekday](r)
	require.NoError(t, err)
	require.Equal(t, Categorical, category)

	category, err = CategoryOf[time.Month](r)
	require.NoError(t, err)
	require.Equal(t, Categorical, category)

	require.Equal(t, `"Wednesday"`, encode(t, r, time.Wednesday))
	require.Equal(t, `"Sunday"`, encode(t, r, time.Sunday))
	require.Equal(t, `"February"`, encode(t, r, time.February))

	require.ErrorIs(t, encodeErr(t, r, time.Weekday(7)), ErrOutOfRange)
	require.ErrorIs(t, encodeErr(t, r, time.Month(0)), ErrOutOfRange)
	require.ErrorIs(t, encodeErr(t, r, time.Month(13)), ErrOutOfRange)
}

func TestRegistry_Pgtype(t *testing.T) {
	r := NewRegistry()
	day := time.Date(2023, time.July, 14, 0, 0, 0, 0, time.UTC)

	for _, category := range []func() (Category, error){
		func() (Category, error) { return CategoryOf[pgtype.Date](r) },
		func() (Category, error) { return CategoryOf[pgtype.Timestamp](r) },
		func() (Category, error) { return CategoryOf[pgtype.Timestamptz](r) },
	} {
		c, err := category()
		require.NoError(t, err)
		require.Equal(t, Time, c)
	}

	require.Equal(t, `"2023-07-14T00:00:00Z"`, encode(t, r, pgtype.Date{Time: day, Valid: true}))
	require.Equal(t, `"2023-07-14T00:00:00Z"`, encode(t, r, pgtype.Timestamptz{Time: day, Valid: true}))

	require.ErrorIs(t, encodeErr(t, r, pgtype.Date{}), ErrInvalid)
	require.ErrorIs(t, encodeErr(t, r, pgtype.Timestamp{Valid: true, InfinityModifier: pgtype.Infinity}), ErrOutOfRange)
}

func TestRegistry_PgtypeClock(t *testing.T) {
	r := NewRegistry()

	category, err := CategoryOf[pgtype.Time](r)
	require.NoError(t, err)
	require.Equal(t, Categorical, category)

	clock := pgtype.Time{
		Microseconds: int64((13*time.Hour + 5*time.Minute + 9*time.Second + 500*time.Millisecond) / time.Microsecond),
		Valid:        true,
	}
	require.Equal(t, `"13:05:09"`, encode(t, r, clock))
	require.Equal(t, `"00:00:00"`, encode(t, r, pgtype.Time{Valid: true}))

	require.ErrorIs(t, encodeErr(t, r, pgtype.Time{}), ErrInvalid)
	require.ErrorIs(t, encodeErr(t, r, pgtype.Time{Microseconds: int64(24 * time.Hour / time.Microsecond), Valid: true}), ErrOutOfRange)
}

func TestRegistry_BSON(t *testing.T) {
	instant := time.Date(2022, time.November, 2, 8, 15, 0, 250*int(time.Millisecond), time.UTC)

	rfc := NewRegistry()
	require.Equal(t, `"2022-11-02T08:15:00.25Z"`, encode(t, rfc, primitive.NewDateTimeFromTime(instant)))
	require.Equal(t, `"2022-11-02T08:15:00Z"`, encode(t, rfc, primitive.Timestamp{T: uint32(instant.Unix()), I: 3}))
	require.Equal(t, `"2022-11-02T08:15:00Z"`, encode(t, rfc, bsonproto.Timestamp(uint64(instant.Unix())<<32|1)))

	millis := NewRegistry(WithTimePolicy(EpochMillis))
	require.Equal(t, strconv.FormatInt(instant.UnixMilli(), 10), encode(t, millis, primitive.NewDateTimeFromTime(instant)))
}

func TestRegistry_Unregistered(t *testing.T) {
	type gauge struct{ level int }

	r := NewRegistry()

	_, err := Resolve[gauge](r)
	var regErr *RegistrationError
	require.ErrorAs(t, err, &regErr)
	require.ErrorIs(t, err, ErrUnregistered)
	require.Equal(t, reflect.TypeFor[gauge](), regErr.Type)

	_, err = CategoryOf[complex128](r)
	require.ErrorIs(t, err, ErrUnregistered)

	_, err = Resolve[float64](NewRegistry(WithoutDefaults()))
	require.ErrorIs(t, err, ErrUnregistered)
}

type celsius float64

func TestRegister_ExternalType(t *testing.T) {
	r := NewRegistry()

	err := Register(r, Linear, func(c celsius, stream *jsoniter.Stream) error {
		stream.WriteFloat64(float64(c) + 273.15)
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, "273.15", encode(t, r, celsius(0)))

	// the underlying float64 keeps its own strategy
	require.Equal(t, "0", encode(t, r, float64(0)))
}

func TestRegister_Rejects(t *testing.T) {
	r := NewRegistry()

	err := Register(r, Categorical, Text[string]())
	require.ErrorIs(t, err, ErrDuplicate)

	err = Register(r, Categorical, func(TimeOfDay, *jsoniter.Stream) error { return nil })
	require.ErrorIs(t, err, ErrAmbiguous)

	err = Register[celsius](r, Linear, nil)
	require.ErrorIs(t, err, ErrNilStrategy)

	err = Register(r, Category(42), Float[celsius]())
	require.ErrorIs(t, err, ErrUnknownCategory)

	require.Panics(t, func() {
		MustRegister(r, Linear, Signed[int]())
	})
}

func TestResolve_Capability(t *testing.T) {
	r := NewRegistry()

	category, err := CategoryOf[TimeOfDay](r)
	require.NoError(t, err)
	require.Equal(t, Categorical, category)

	require.Equal(t, `"13:05:09"`, encode(t, r, TimeOfDay{Hour: 13, Minute: 5, Second: 9}))
	require.Equal(t, `"07:00:00"`, encode(t, r, ClockOf(time.Date(2020, 1, 1, 7, 0, 0, 0, time.UTC))))
	require.ErrorIs(t, encodeErr(t, r, TimeOfDay{Hour: 25}), ErrOutOfRange)
	require.ErrorIs(t, encodeErr(t, r, TimeOfDay{Minute: 60}), ErrOutOfRange)
}

type level struct{ n int }

func (l *level) AxisCategory() Category { return Logarithmic }

func (l *level) WriteAxisValue(stream *jsoniter.Stream, _ TimePolicy) error {
	stream.WriteInt(l.n)
	return nil
}

func TestResolve_PointerCapability(t *testing.T) {
	r := NewRegistry()

	category, err := CategoryOf[*level](r)
	require.NoError(t, err)
	require.Equal(t, Logarithmic, category)

	require.Equal(t, "10", encode(t, r, &level{n: 10}))
	require.ErrorIs(t, encodeErr[*level](t, r, nil), ErrInvalid)
}

func TestTypedValue_Zero(t *testing.T) {
	var value TypedValue[int]

	_, err := value.MarshalJSON()
	require.ErrorIs(t, err, ErrUnbound)
}

func TestTypedValue_StandardLibraryMarshal(t *testing.T) {
	r := NewRegistry()
	binding := MustResolve[string](r)

	data, err := json.Marshal(map[string]any{"values": binding.WrapAll("a", "b")})
	require.NoError(t, err)
	require.JSONEq(t, `{"values":["a","b"]}`, string(data))

	wrapped := binding.Wrap("kept")
	require.Equal(t, "kept", wrapped.Value())
	require.Equal(t, Categorical, wrapped.Category())
}

func TestFormatError_Message(t *testing.T) {
	err := &FormatError{Type: reflect.TypeFor[time.Month](), Value: time.Month(13), Err: ErrOutOfRange}
	assert.Contains(t, err.Error(), "time.Month")
	assert.True(t, errors.Is(err, ErrOutOfRange))
}
