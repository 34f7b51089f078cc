package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignments(t *testing.T) {
	var a Assignments
	assert.Empty(t, a.SQL())

	a.Set("name", "Lectures")
	a.Set("slug", "lectures")
	where := a.Placeholder(42)

	assert.Equal(t, "name = $1, slug = $2", a.SQL())
	assert.Equal(t, "$3", where)
	assert.Equal(t, []interface{}{"Lectures", "lectures", 42}, a.Args())
}
