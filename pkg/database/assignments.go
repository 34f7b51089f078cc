package database

import (
	"fmt"
	"strings"
)

// Assignments collects the "column = $n" pairs of a dynamic UPDATE.
// Column names must be constants, never user input.
type Assignments struct {
	sets []string
	args []interface{}
}

func (a *Assignments) Set(column string, value interface{}) {
	a.args = append(a.args, value)
	a.sets = append(a.sets, fmt.Sprintf("%s = $%d", column, len(a.args)))
}

// SQL is the SET list, e.g. "name = $1, slug = $2".
func (a *Assignments) SQL() string {
	return strings.Join(a.sets, ", ")
}

// Placeholder reserves the next parameter for value and returns "$n".
func (a *Assignments) Placeholder(value interface{}) string {
	a.args = append(a.args, value)
	return fmt.Sprintf("$%d", len(a.args))
}

func (a *Assignments) Args() []interface{} {
	return a.args
}
