package dataset

import "errors"

// ErrDataUnavailable is returned when the dataset cannot be fetched and no
// previously loaded snapshot exists.
var ErrDataUnavailable = errors.New("dataset unavailable")
