package workspace

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// TreeNode is one entry in the rendered file tree. File is empty for
// directories and holds the relative path for leaves.
type TreeNode struct {
	Name     string
	Children []*TreeNode
	File     string
}

// BuildTree folds relative file paths into a directory tree, files
// sorted before subdirectories and both alphabetically.
func BuildTree(paths []string) *TreeNode {
	root := &TreeNode{Name: "."}

	for _, p := range paths {
		parts := strings.Split(filepath.ToSlash(p), "/")
		cur := root
		for i, part := range parts {
			if i == len(parts)-1 {
				cur.Children = append(cur.Children, &TreeNode{Name: part, File: p})
				break
			}
			var next *TreeNode
			for _, ch := range cur.Children {
				if ch.Name == part && ch.File == "" {
					next = ch
					break
				}
			}
			if next == nil {
				next = &TreeNode{Name: part}
				cur.Children = append(cur.Children, next)
			}
			cur = next
		}
	}

	sortTree(root)
	return root
}

func sortTree(node *TreeNode) {
	sort.Slice(node.Children, func(i, j int) bool {
		ci, cj := node.Children[i], node.Children[j]
		fileI := ci.File != ""
		fileJ := cj.File != ""
		if fileI != fileJ {
			return fileI
		}
		return ci.Name < cj.Name
	})
	for _, ch := range node.Children {
		sortTree(ch)
	}
}

// PrintTree writes the tree with box-drawing connectors.
func PrintTree(w io.Writer, node *TreeNode, prefix string, last bool) {
	if node.Name != "." {
		conn := "├─ "
		if last {
			conn = "└─ "
		}
		fmt.Fprintln(w, prefix+conn+node.Name)
	}

	childPrefix := prefix
	if node.Name != "." {
		if last {
			childPrefix += "   "
		} else {
			childPrefix += "│  "
		}
	}

	for i, ch := range node.Children {
		PrintTree(w, ch, childPrefix, i == len(node.Children)-1)
	}
}
