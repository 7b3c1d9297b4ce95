package domain

import "time"

// LearningCategory is a node in the catalog tree (adjacency list,
// arbitrary depth).
type LearningCategory struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ParentID  *uint  `json:"parent_id,omitempty"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryNode is a category with its resolved children, as returned by
// the tree endpoint.
type CategoryNode struct {
	LearningCategory
	Children []*CategoryNode `json:"children"`
}

// BuildCategoryTree assembles the forest from a flat adjacency list.
// Nodes whose parent is missing from the input are treated as roots, so a
// partial listing still yields a usable tree. Sibling order follows the
// input order.
func BuildCategoryTree(categories []LearningCategory) []*CategoryNode {
	nodes := make(map[uint]*CategoryNode, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &CategoryNode{LearningCategory: c, Children: []*CategoryNode{}}
	}

	var roots []*CategoryNode
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}

// LearningMaterial is a catalog item: either an external link or an
// uploaded file, attached to one category.
type LearningMaterial struct {
	ID          uint      `json:"id"`
	CategoryID  uint      `json:"category_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url,omitempty"`
	FilePath    string    `json:"file_path,omitempty"`
	UploadedBy  uint      `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
