// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/cockroachdb/logtags"
	kitlog "github.com/go-kit/log"
	"github.com/stretchr/testify/require"
)

func TestFacadeRouting(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(kitlog.NewLogfmtLogger(&buf))
	defer SetLogger(nil)

	ctx := context.Background()
	Infof(ctx, "estimated %d rows", 5)
	require.Contains(t, buf.String(), "estimated 5 rows")

	buf.Reset()
	ctx = logtags.AddTag(ctx, "opt", nil)
	Warningf(ctx, "no statistics for %s", "events")
	out := buf.String()
	require.Contains(t, out, "opt")
	require.Contains(t, out, "no statistics for events")
}

func TestVerbosityGate(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(kitlog.NewLogfmtLogger(&buf))
	defer SetLogger(nil)
	defer SetVerbosity(0)

	ctx := context.Background()
	SetVerbosity(0)
	require.False(t, V(2))
	VEventf(ctx, 2, "hidden")
	require.Empty(t, buf.String())

	SetVerbosity(2)
	require.True(t, V(2))
	VEventf(ctx, 2, "visible")
	require.Contains(t, buf.String(), "visible")
}
