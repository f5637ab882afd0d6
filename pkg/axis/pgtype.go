package axis

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func init() {
	addDefaults(registerPgtype)
}

// registerPgtype adds the PostgreSQL date and time types decoded by pgx.
func registerPgtype(r *Registry) {
	MustRegisterTime(r, func(d pgtype.Date) (time.Time, error) {
		return pgInstant(d.Time, d.InfinityModifier, d.Valid)
	})
	MustRegisterTime(r, func(ts pgtype.Timestamp) (time.Time, error) {
		return pgInstant(ts.Time, ts.InfinityModifier, ts.Valid)
	})
	MustRegisterTime(r, func(ts pgtype.Timestamptz) (time.Time, error) {
		return pgInstant(ts.Time, ts.InfinityModifier, ts.Valid)
	})

	MustRegister(r, Categorical, Clock(func(t pgtype.Time) (time.Duration, error) {
		if !t.Valid {
			return 0, ErrInvalid
		}
		return time.Duration(t.Microseconds) * time.Microsecond, nil
	}))
}

func pgInstant(t time.Time, modifier pgtype.InfinityModifier, valid bool) (time.Time, error) {
	if !valid {
		return time.Time{}, ErrInvalid
	}

	if modifier != pgtype.Finite {
		return time.Time{}, fmt.Errorf("%w: %v has no instant", ErrOutOfRange, modifier)
	}

	return t, nil
}
