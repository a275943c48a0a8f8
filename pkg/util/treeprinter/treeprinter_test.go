// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package treeprinter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTreePrinter(t *testing.T) {
	tp := New()
	root := tp.Child("root")
	root.Child("child-1")
	root.Child("child-2").Child("grandchild\ngrandchild-more-info")
	root.Child("child-3")

	expected := `root
 ├── child-1
 ├── child-2
 │    └── grandchild
 │        grandchild-more-info
 └── child-3
`
	require.Equal(t, expected, tp.String())
}

func TestTreePrinterSingleChain(t *testing.T) {
	tp := New()
	n := tp.Child("a")
	n = n.Childf("b %d", 1)
	n.Child("c")

	expected := `a
 └── b 1
      └── c
`
	require.Equal(t, expected, tp.String())
}
