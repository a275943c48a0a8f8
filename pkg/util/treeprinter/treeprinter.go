// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package treeprinter

import (
	"bytes"
	"fmt"
	"strings"
)

// Node is a handle associated with a specific node in a tree. See below for
// sample usage.
type Node struct {
	root *treeNode
	n    *treeNode
}

type treeNode struct {
	lines    []string
	children []*treeNode
}

// New creates a tree printer and returns a sentinel node reference which
// should be used to add the root. Sample usage:
//
//	tp := treeprinter.New()
//	root := tp.Child("root")
//	root.Child("child-1")
//	root.Child("child-2").Child("grandchild\ngrandchild-more-info")
//	root.Child("child-3")
//
//	fmt.Print(tp.String())
//
// Output:
//
//	root
//	 ├── child-1
//	 ├── child-2
//	 │    └── grandchild
//	 │        grandchild-more-info
//	 └── child-3
//
// The tree is rendered lazily when String is called, so nodes can be added in
// any depth-first order.
func New() Node {
	n := &treeNode{}
	return Node{root: n, n: n}
}

// Child adds a node as a child of the given node. Multi-line strings are
// supported with appropriate indentation.
func (n Node) Child(text string) Node {
	if strings.ContainsRune(text, '\n') {
		splitLines := strings.Split(text, "\n")
		node := n.Childf("%s", splitLines[0])
		for _, l := range splitLines[1:] {
			node.AddLine(l)
		}
		return node
	}
	return n.Childf("%s", text)
}

// Childf adds a node as a child of the given node.
func (n Node) Childf(format string, args ...interface{}) Node {
	child := &treeNode{lines: []string{fmt.Sprintf(format, args...)}}
	n.n.children = append(n.n.children, child)
	return Node{root: n.root, n: child}
}

// AddLine adds a new line to a node without an edge.
func (n Node) AddLine(text string) {
	n.n.lines = append(n.n.lines, text)
}

func (n Node) String() string {
	var buf bytes.Buffer
	// The sentinel's children are top-level trees, rendered without edges.
	for _, top := range n.root.children {
		for _, l := range top.lines {
			writeLine(&buf, l)
		}
		for i, c := range top.children {
			renderNode(&buf, c, " ", i == len(top.children)-1)
		}
	}
	return buf.String()
}

func renderNode(buf *bytes.Buffer, n *treeNode, prefix string, isLast bool) {
	edge := "├── "
	if isLast {
		edge = "└── "
	}
	writeLine(buf, prefix+edge+n.lines[0])
	for _, l := range n.lines[1:] {
		writeLine(buf, prefix+"    "+l)
	}
	childPrefix := prefix + "│    "
	if isLast {
		childPrefix = prefix + "     "
	}
	for i, c := range n.children {
		renderNode(buf, c, childPrefix, i == len(n.children)-1)
	}
}

func writeLine(buf *bytes.Buffer, line string) {
	buf.WriteString(strings.TrimRight(line, " "))
	buf.WriteByte('\n')
}
