package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parentOf(id uint) *uint {
	return &id
}

func TestBuildCategoryTree_Nesting(t *testing.T) {
	categories := []LearningCategory{
		{ID: 1, Name: "Musik"},
		{ID: 2, Name: "Gitar", ParentID: parentOf(1)},
		{ID: 3, Name: "Vokal", ParentID: parentOf(1)},
		{ID: 4, Name: "Gitar Klasik", ParentID: parentOf(2)},
		{ID: 5, Name: "Olahraga"},
	}

	roots := BuildCategoryTree(categories)

	require.Len(t, roots, 2)
	assert.Equal(t, "Musik", roots[0].Name)
	assert.Equal(t, "Olahraga", roots[1].Name)

	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "Gitar", roots[0].Children[0].Name)
	assert.Equal(t, "Vokal", roots[0].Children[1].Name)

	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "Gitar Klasik", roots[0].Children[0].Children[0].Name)

	assert.Empty(t, roots[1].Children)
}

func TestBuildCategoryTree_MissingParentBecomesRoot(t *testing.T) {
	categories := []LearningCategory{
		{ID: 7, Name: "Yatim", ParentID: parentOf(99)},
	}

	roots := BuildCategoryTree(categories)

	require.Len(t, roots, 1)
	assert.Equal(t, "Yatim", roots[0].Name)
}

func TestBuildCategoryTree_Empty(t *testing.T) {
	assert.Empty(t, BuildCategoryTree(nil))
}
