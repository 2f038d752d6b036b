package service

import "errors"

// ErrStorage marks failures of the plan store itself, as opposed to a bad
// request or an unknown plan.
var ErrStorage = errors.New("plan storage failure")
