package callable

import (
	"github.com/on-the-ground/call_able_go/callable/internal/optable"
)

// ErrEmptyCall reports an invocation of an empty wrapper.
//
// Failing-policy wrappers (the E types) return it from Invoke and stay
// fully usable afterwards. Non-failing wrappers panic with this same
// value: their signature promised the caller no failure path exists, so
// invoking one while empty is a contract violation, and the fault is
// guaranteed rather than left unspecified.
var ErrEmptyCall = optable.ErrEmptyCall
