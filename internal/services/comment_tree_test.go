package services

import (
	"math/rand"
	"testing"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"
)

func ptr(v uint) *uint { return &v }

func TestBuildCommentTree_Scenario(t *testing.T) {
	comments := []models.Comment{
		{ID: 1},
		{ID: 2, ParentCommentID: ptr(1)},
		{ID: 3, ParentCommentID: ptr(99)},
	}

	roots := BuildCommentTree(comments)

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].Comment.ID != 1 || roots[1].Comment.ID != 3 {
		t.Errorf("unexpected root order: %d, %d", roots[0].Comment.ID, roots[1].Comment.ID)
	}
	if len(roots[0].Replies) != 1 || roots[0].Replies[0].Comment.ID != 2 {
		t.Fatalf("comment 2 should reply to 1, got %+v", roots[0].Replies)
	}
	if len(roots[0].Replies[0].Replies) != 0 || len(roots[1].Replies) != 0 {
		t.Error("leaf nodes should have empty replies")
	}
	if roots[1].Replies == nil {
		t.Error("replies should be an empty list, not nil")
	}
}

func TestBuildCommentTree_Empty(t *testing.T) {
	roots := BuildCommentTree(nil)
	if roots == nil || len(roots) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", roots)
	}
}

func TestBuildCommentTree_NestedOrder(t *testing.T) {
	comments := []models.Comment{
		{ID: 10},
		{ID: 11, ParentCommentID: ptr(10)},
		{ID: 12, ParentCommentID: ptr(11)},
		{ID: 13, ParentCommentID: ptr(10)},
		{ID: 14},
	}

	roots := BuildCommentTree(comments)

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	replies := roots[0].Replies
	if len(replies) != 2 || replies[0].Comment.ID != 11 || replies[1].Comment.ID != 13 {
		t.Fatalf("replies of 10 should be [11 13] in creation order")
	}
	if len(replies[0].Replies) != 1 || replies[0].Replies[0].Comment.ID != 12 {
		t.Error("12 should be nested under 11")
	}
}

func TestBuildCommentTree_SelfAndCircularReferences(t *testing.T) {
	comments := []models.Comment{
		{ID: 1, ParentCommentID: ptr(1)},
		{ID: 2, ParentCommentID: ptr(3)},
		{ID: 3, ParentCommentID: ptr(2)},
	}

	roots := BuildCommentTree(comments)

	if got := CountNodes(roots); got != len(comments) {
		t.Errorf("expected %d nodes, got %d", len(comments), got)
	}
}

func TestBuildCommentTree_ParentAfterReplyBecomesRoot(t *testing.T) {
	comments := []models.Comment{
		{ID: 5, ParentCommentID: ptr(6)},
		{ID: 6},
	}

	roots := BuildCommentTree(comments)

	if len(roots) != 2 || roots[0].Comment.ID != 5 || roots[1].Comment.ID != 6 {
		t.Fatalf("both comments should be roots in input order, got %d roots", len(roots))
	}
	if len(roots[1].Replies) != 0 {
		t.Error("a reply listed before its parent should not be attached")
	}
}

func TestBuildCommentTree_PreservesEveryComment(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		n := rng.Intn(40)
		comments := make([]models.Comment, 0, n)
		missing := map[uint]bool{}
		for i := 1; i <= n; i++ {
			c := models.Comment{ID: uint(i)}
			switch rng.Intn(3) {
			case 1:
				c.ParentCommentID = ptr(uint(rng.Intn(i) + 1))
			case 2:
				orphan := uint(1000 + i)
				c.ParentCommentID = &orphan
				missing[c.ID] = true
			}
			comments = append(comments, c)
		}

		roots := BuildCommentTree(comments)

		if got := CountNodes(roots); got != n {
			t.Fatalf("round %d: expected %d nodes, got %d", round, n, got)
		}
		rootIDs := map[uint]bool{}
		for _, r := range roots {
			rootIDs[r.Comment.ID] = true
		}
		for id := range missing {
			if !rootIDs[id] {
				t.Fatalf("round %d: orphan %d should be a root", round, id)
			}
		}
	}
}
