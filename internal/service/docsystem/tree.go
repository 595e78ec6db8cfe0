package docsystem

import (
	"sort"

	models "docshelf/internal/domain/models/docsystem"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TreeBuilder turns flat folder and file records into a sorted forest.
// It is a pure function of its input; malformed parent references degrade
// to root placement instead of failing.
type TreeBuilder struct {
	tag language.Tag
}

// NewTreeBuilder creates a builder that orders siblings using the collation
// rules of tag.
func NewTreeBuilder(tag language.Tag) *TreeBuilder {
	return &TreeBuilder{tag: tag}
}

// Build builds the folder hierarchy and attaches files as leaves.
func (b *TreeBuilder) Build(folders []models.Folder, files []models.File) *models.TreeNode {
	roots, byID := b.placeFolders(folders)

	rootFiles := make([]models.File, 0)
	for _, file := range files {
		if file.FolderID != nil {
			if parent, exists := byID[*file.FolderID]; exists {
				parent.Files = append(parent.Files, file)
				continue
			}
		}
		// nil or unknown folder: the file is shown at root
		rootFiles = append(rootFiles, file)
	}

	col := collate.New(b.tag)
	b.sortFolders(col, roots)
	b.sortFiles(col, rootFiles)

	return &models.TreeNode{
		Folders: roots,
		Files:   rootFiles,
	}
}

// BuildFolders builds the folder hierarchy only.
func (b *TreeBuilder) BuildFolders(folders []models.Folder) []*models.FolderTreeNode {
	roots, _ := b.placeFolders(folders)
	b.sortFolders(collate.New(b.tag), roots)
	return roots
}

// placeFolders creates one node per record and links every node exactly once.
// A node is a root when its parent is nil, absent from the input, or when the
// node sits on a parent-pointer cycle.
func (b *TreeBuilder) placeFolders(folders []models.Folder) ([]*models.FolderTreeNode, map[int64]*models.FolderTreeNode) {
	// First pass: create all folder nodes (first record wins on duplicate ids)
	byID := make(map[int64]*models.FolderTreeNode, len(folders))
	order := make([]int64, 0, len(folders))
	for _, folder := range folders {
		if _, dup := byID[folder.ID]; dup {
			continue
		}
		byID[folder.ID] = &models.FolderTreeNode{
			Folder:  folder,
			Folders: []*models.FolderTreeNode{},
			Files:   []models.File{},
		}
		order = append(order, folder.ID)
	}

	onCycle := cycleMembers(byID, order)

	// Second pass: nest folders by connecting children to parents
	roots := make([]*models.FolderTreeNode, 0)
	for _, id := range order {
		node := byID[id]
		parentID := node.Folder.ParentID
		if parentID == nil || onCycle[id] {
			roots = append(roots, node)
			continue
		}
		parent, exists := byID[*parentID]
		if !exists {
			roots = append(roots, node)
			continue
		}
		parent.Folders = append(parent.Folders, node)
	}

	return roots, byID
}

// cycleMembers finds the ids lying on a parent-pointer cycle. Each record has
// at most one parent, so every walk either ends at a root or enters exactly one
// cycle; each id is walked at most once.
func cycleMembers(byID map[int64]*models.FolderTreeNode, order []int64) map[int64]bool {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[int64]int, len(order))
	members := make(map[int64]bool)

	for _, start := range order {
		if state[start] != unvisited {
			continue
		}

		var stack []int64
		id := start
		for {
			if state[id] == inProgress {
				// the stack suffix starting at id is a cycle
				for i := len(stack) - 1; i >= 0; i-- {
					members[stack[i]] = true
					if stack[i] == id {
						break
					}
				}
				break
			}
			if state[id] == done {
				break
			}
			state[id] = inProgress
			stack = append(stack, id)

			parentID := byID[id].Folder.ParentID
			if parentID == nil {
				break
			}
			if _, exists := byID[*parentID]; !exists {
				break
			}
			id = *parentID
		}

		for _, visited := range stack {
			state[visited] = done
		}
	}

	return members
}

func (b *TreeBuilder) sortFolders(col *collate.Collator, nodes []*models.FolderTreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if c := col.CompareString(nodes[i].Folder.Name, nodes[j].Folder.Name); c != 0 {
			return c < 0
		}
		return nodes[i].Folder.ID < nodes[j].Folder.ID
	})
	for _, node := range nodes {
		b.sortFolders(col, node.Folders)
		b.sortFiles(col, node.Files)
	}
}

func (b *TreeBuilder) sortFiles(col *collate.Collator, files []models.File) {
	sort.SliceStable(files, func(i, j int) bool {
		if c := col.CompareString(files[i].Name, files[j].Name); c != 0 {
			return c < 0
		}
		return files[i].ID < files[j].ID
	})
}

// FindFolderNode returns the node for id, or nil when the tree has no such folder.
func FindFolderNode(roots []*models.FolderTreeNode, id int64) *models.FolderTreeNode {
	for _, node := range roots {
		if node.Folder.ID == id {
			return node
		}
		if found := FindFolderNode(node.Folders, id); found != nil {
			return found
		}
	}
	return nil
}

// FindFolderChain returns the ids from a root down to id (inclusive), following
// the constructed tree rather than raw parent pointers. Nil when id is absent.
func FindFolderChain(roots []*models.FolderTreeNode, id int64) []int64 {
	for _, node := range roots {
		if node.Folder.ID == id {
			return []int64{node.Folder.ID}
		}
		if chain := FindFolderChain(node.Folders, id); chain != nil {
			return append([]int64{node.Folder.ID}, chain...)
		}
	}
	return nil
}

// CountFolders returns the number of folder nodes in the forest.
func CountFolders(roots []*models.FolderTreeNode) int {
	n := 0
	for _, node := range roots {
		n += 1 + CountFolders(node.Folders)
	}
	return n
}

// TreeRow is one visible line of a rendered folder tree.
type TreeRow struct {
	Node     *models.FolderTreeNode
	Depth    int
	Expanded bool
	IsLast   bool // last child of its parent
}

// Flatten walks the forest depth-first and returns the rows a view would show:
// children of a folder are included only when isExpanded reports it open.
func Flatten(roots []*models.FolderTreeNode, isExpanded func(id int64) bool) []TreeRow {
	var rows []TreeRow
	var walk func(nodes []*models.FolderTreeNode, depth int)
	walk = func(nodes []*models.FolderTreeNode, depth int) {
		for i, node := range nodes {
			expanded := isExpanded(node.Folder.ID)
			rows = append(rows, TreeRow{
				Node:     node,
				Depth:    depth,
				Expanded: expanded,
				IsLast:   i == len(nodes)-1,
			})
			if expanded {
				walk(node.Folders, depth+1)
			}
		}
	}
	walk(roots, 0)
	return rows
}
