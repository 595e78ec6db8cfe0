package cli

import (
	"fmt"
	"strings"

	models "docshelf/internal/domain/models/docsystem"
)

// treeLine is one line of a rendered tree.
type treeLine struct {
	Name     string
	IsFolder bool
	Depth    int
	IsLast   bool   // last child of its parent
	Metadata string // pre-rendered, e.g. "(2.1 MB)"
}

// TreeOptions controls what RenderTree prints.
type TreeOptions struct {
	Files bool // include files under each folder
	IDs   bool // append record ids
}

// RenderTree draws a folder tree with box-drawing characters:
//
//	/ (root)
//	├── Notes/
//	├── Papers/
//	│   └── ML/
//	│       └── attention.pdf (2.1 MB)
//	└── loose.pdf
func RenderTree(tree *models.TreeNode, opts TreeOptions) string {
	lines := []treeLine{{Name: "/ (root)"}}
	if tree != nil {
		lines = appendChildren(lines, tree.Folders, tree.Files, 1, opts)
	}
	return renderLines(lines)
}

func appendChildren(lines []treeLine, folders []*models.FolderTreeNode, files []models.File, depth int, opts TreeOptions) []treeLine {
	if !opts.Files {
		files = nil
	}
	total := len(folders) + len(files)

	for i, node := range folders {
		line := treeLine{
			Name:     node.Folder.Name,
			IsFolder: true,
			Depth:    depth,
			IsLast:   i == total-1,
		}
		if opts.IDs {
			line.Metadata = fmt.Sprintf("#%d", node.Folder.ID)
		}
		lines = append(lines, line)
		lines = appendChildren(lines, node.Folders, node.Files, depth+1, opts)
	}

	for i, f := range files {
		meta := ""
		if f.Size > 0 {
			meta = "(" + formatSize(f.Size) + ")"
		}
		if opts.IDs {
			meta = strings.TrimSpace(fmt.Sprintf("#%d %s", f.ID, meta))
		}
		lines = append(lines, treeLine{
			Name:     f.Name,
			Depth:    depth,
			IsLast:   len(folders)+i == total-1,
			Metadata: meta,
		})
	}
	return lines
}

func renderLines(lines []treeLine) string {
	var result strings.Builder

	// depths that still have siblings below
	continuations := make(map[int]bool)

	for i, line := range lines {
		result.WriteString(buildPrefix(line.Depth, line.IsLast, continuations))
		result.WriteString(line.Name)

		if line.IsFolder && !strings.HasSuffix(line.Name, "/") {
			result.WriteString("/")
		}
		if line.Metadata != "" {
			result.WriteString(" " + line.Metadata)
		}
		if i < len(lines)-1 {
			result.WriteString("\n")
		}

		if line.IsLast {
			delete(continuations, line.Depth)
		} else {
			continuations[line.Depth] = true
		}
	}

	return result.String()
}

func buildPrefix(depth int, isLast bool, continuations map[int]bool) string {
	if depth == 0 {
		return ""
	}

	var prefix strings.Builder
	for d := 1; d < depth; d++ {
		if continuations[d] {
			prefix.WriteString("│   ")
		} else {
			prefix.WriteString("    ")
		}
	}

	if isLast {
		prefix.WriteString("└── ")
	} else {
		prefix.WriteString("├── ")
	}
	return prefix.String()
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
