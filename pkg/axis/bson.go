package axis

import (
	"time"

	"github.com/cristalhq/bson/bsonproto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	addDefaults(registerBSON)
}

// registerBSON adds the BSON date and timestamp types of the official mongo
// driver and of cristalhq/bson.
func registerBSON(r *Registry) {
	MustRegisterTime(r, func(dt primitive.DateTime) (time.Time, error) {
		return dt.Time().UTC(), nil
	})

	// timestamps carry seconds in T; the increment I only orders events
	// within one second
	MustRegisterTime(r, func(ts primitive.Timestamp) (time.Time, error) {
		return time.Unix(int64(ts.T), 0).UTC(), nil
	})

	MustRegisterTime(r, func(ts bsonproto.Timestamp) (time.Time, error) {
		return time.Unix(int64(uint64(ts)>>32), 0).UTC(), nil
	})
}
