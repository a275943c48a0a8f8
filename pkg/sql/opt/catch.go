// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package opt

import (
	"runtime"

	"github.com/cockroachdb/errors"
)

// CatchPlannerError catches any runtime panics from planner functions and
// returns them as errors. This allows the planner to propagate errors
// internally as panics without adding error checks everywhere. This is only
// possible because the planner code does not update shared state and does not
// manipulate locks.
//
// Usage:
//
//	defer func() { err = opt.CatchPlannerError(recover()) }()
func CatchPlannerError(r interface{}) error {
	if r == nil {
		return nil
	}
	err, ok := r.(error)
	if !ok {
		// Not an error object. For serious internal errors e.g. in the
		// scheduler, bad goroutine state, allocator problem etc, the go runtime
		// throws a string which does not implement error. So in this case we
		// suspect we are not able to recover, and must crash.
		panic(r)
	}
	if errors.HasInterface(err, (*runtime.Error)(nil)) {
		// Convert runtime errors to assertion failures, which include stacks.
		return errors.HandleAsAssertionFailure(err)
	}
	return err
}
