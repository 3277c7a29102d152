package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

func TestLinkHierarchy(t *testing.T) {
	rootID, childID := "root", "child"
	root := &entity.Category{ID: rootID, Slug: "resto-bar"}
	bebidas := &entity.Category{ID: childID, Slug: "bebestibles", ParentID: &rootID}
	pizzas := &entity.Category{ID: "pizzas", Slug: "pizzas", ParentID: &rootID}
	cervezas := &entity.Category{ID: "cervezas", Slug: "cervezas", ParentID: &childID}
	ghost := "no-existe"
	huerfana := &entity.Category{ID: "huerfana", Slug: "huerfana", ParentID: &ghost}

	entity.LinkHierarchy([]*entity.Category{root, bebidas, pizzas, cervezas, huerfana})

	assert.Nil(t, root.Parent)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "bebestibles", root.Children[0].Slug)
	assert.Equal(t, "pizzas", root.Children[1].Slug)
	assert.Same(t, bebidas, cervezas.Parent)
	assert.Same(t, root, bebidas.Parent)
	assert.Nil(t, huerfana.Parent, "padre fuera de la lista")
}
