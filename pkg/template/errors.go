package template

import "errors"

// ErrLookupFailed indicates a transport or storage failure during template
// resolution. Callers treat it the same as an absent template.
var ErrLookupFailed = errors.New("template lookup failed")
