package services

import (
	"fmt"
	"strings"
	"time"
)

// TaskFilter is a conjunction of optional exact-match predicates plus
// an optional deadline range with independent bounds.
type TaskFilter struct {
	Status       string
	Priority     string
	Assignee     string
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time
}

// conditions appends the filter's predicates to conds/args as
// parameterized SQL over the tasks alias "t", continuing the
// placeholder numbering from the existing args.
func (f TaskFilter) conditions(conds []string, args []any) ([]string, []any) {
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("t.status = $%d", len(args)))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		conds = append(conds, fmt.Sprintf("t.priority = $%d", len(args)))
	}
	if f.Assignee != "" {
		args = append(args, f.Assignee)
		conds = append(conds, fmt.Sprintf("t.assignee = $%d", len(args)))
	}
	if f.DeadlineFrom != nil {
		args = append(args, *f.DeadlineFrom)
		conds = append(conds, fmt.Sprintf("t.deadline >= $%d", len(args)))
	}
	if f.DeadlineTo != nil {
		args = append(args, *f.DeadlineTo)
		conds = append(conds, fmt.Sprintf("t.deadline <= $%d", len(args)))
	}
	return conds, args
}

// whereClause joins conditions into a WHERE clause, empty when there
// are no conditions.
func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conds, " AND ")
}
