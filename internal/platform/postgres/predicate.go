package postgres

import (
	"fmt"
	"strings"

	"github.com/dmuriuki/taskforge-api/internal/store"
)

// buildTaskPredicate translates a TaskFilter into a SQL WHERE clause and its
// positional arguments. Set filter fields are combined with AND; an empty
// filter yields an empty clause matching all tasks. Placeholders are
// numbered starting at firstArg so the clause can follow earlier arguments
// in the enclosing query.
func buildTaskPredicate(filter store.TaskFilter, firstArg int) (string, []any) {
	var conds []string
	var args []any

	next := firstArg
	if filter.Title != nil {
		conds = append(conds, fmt.Sprintf("title = $%d", next))
		args = append(args, *filter.Title)
		next++
	}
	if filter.DueDate != nil {
		conds = append(conds, fmt.Sprintf("due_date = $%d", next))
		args = append(args, *filter.DueDate)
		next++
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}
