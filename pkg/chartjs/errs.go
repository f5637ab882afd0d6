package chartjs

import "errors"

// ErrRegistry is returned when a series was built against a different axis
// registry than the config, so its values could be written another way.
var ErrRegistry = errors.New("series uses a different axis registry")
