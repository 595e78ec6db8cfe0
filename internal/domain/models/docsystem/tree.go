package docsystem

// TreeNode is the root of a folder tree: the root-level folders and files.
type TreeNode struct {
	Folders []*FolderTreeNode `json:"folders"`
	Files   []File            `json:"files"`
}

// FolderTreeNode is a folder with its direct children.
// Nodes belong to one build and are never mutated after it.
type FolderTreeNode struct {
	Folder  Folder            `json:"folder"`
	Folders []*FolderTreeNode `json:"folders"` // Pointers for proper nesting
	Files   []File            `json:"files"`
}

// ID is a shorthand for n.Folder.ID.
func (n *FolderTreeNode) ID() int64 {
	return n.Folder.ID
}

// HasChildren reports whether the folder has child folders.
func (n *FolderTreeNode) HasChildren() bool {
	return len(n.Folders) > 0
}
