package layoutopt

import "errors"

// ErrLanguageDataNotFound is returned when an Engine is asked to build from
// language data that could not be located on disk.
var ErrLanguageDataNotFound = errors.New("language data not found")

// ErrUnknownBigramType is returned by BigramPercent when asked for a
// selector outside the names listed on BigramPercent.
var ErrUnknownBigramType = errors.New("unknown bigram type")
