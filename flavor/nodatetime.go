package flavor

import (
	"errors"

	"github.com/reproto/reproto/ir"
)

// ErrNoDatetime is returned by NoDatetimeTranslator.TranslateDatetime,
// matching spec.md §6's default_datetime_type() contract: a back end that
// returns None there must fail translation the moment a source file
// actually uses a datetime field, rather than silently downgrading it to
// string.
var ErrNoDatetime = errors.New("missing implementation for datetime")

// NoDatetimeTranslator wraps another FlavorTranslator for a back end with
// no concrete datetime representation.
type NoDatetimeTranslator struct {
	FlavorTranslator
}

func (NoDatetimeTranslator) TranslateDatetime() (ir.Type, error) {
	return nil, ErrNoDatetime
}
