package store

import (
	"strings"

	"github.com/platefulapp/plateful-server/internal/errors"
)

// Field is a single assignment in a partial update, in caller order.
type Field struct {
	Name  string
	Value any
}

// BuildUpdate renders an ordered field list into a SET clause and matching
// argument slice. The columns map is a strict allow-list from exported field
// name to column name; a field outside it rejects the whole update with a
// BadRequest rather than being silently skipped. An empty field list is also
// a BadRequest.
func BuildUpdate(fields []Field, columns map[string]string) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, errors.BadRequest("no fields to update")
	}

	assignments := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		column, ok := columns[f.Name]
		if !ok {
			return "", nil, errors.BadRequestf("field %q cannot be updated", f.Name)
		}
		assignments = append(assignments, column+" = ?")
		args = append(args, f.Value)
	}

	return strings.Join(assignments, ", "), args, nil
}
