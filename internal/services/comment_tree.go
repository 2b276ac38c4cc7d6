package services

import "github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"

// CommentNode is a comment with its direct replies in creation order.
type CommentNode struct {
	Comment models.Comment
	Replies []*CommentNode
}

// BuildCommentTree nests a flat, createdAt-ascending list of comments by
// parent id. A comment whose parent is absent from the input becomes a root.
// A parent must precede its reply in the input, which keeps the result a
// forest even for self or circular references.
func BuildCommentTree(comments []models.Comment) []*CommentNode {
	type entry struct {
		node *CommentNode
		pos  int
	}
	index := make(map[uint]entry, len(comments))
	ordered := make([]*CommentNode, 0, len(comments))
	for i, c := range comments {
		n := &CommentNode{Comment: c, Replies: []*CommentNode{}}
		if _, dup := index[c.ID]; !dup {
			index[c.ID] = entry{node: n, pos: i}
		}
		ordered = append(ordered, n)
	}

	roots := make([]*CommentNode, 0)
	for i, n := range ordered {
		if pid := n.Comment.ParentCommentID; pid != nil {
			if parent, ok := index[*pid]; ok && parent.pos < i {
				parent.node.Replies = append(parent.node.Replies, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}

// CountNodes returns the number of comments in the trees rooted at roots.
func CountNodes(roots []*CommentNode) int {
	total := 0
	for _, n := range roots {
		total += 1 + CountNodes(n.Replies)
	}
	return total
}
