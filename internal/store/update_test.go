package store

import (
	"testing"

	"github.com/platefulapp/plateful-server/internal/errors"
)

func TestBuildUpdate(t *testing.T) {
	columns := map[string]string{
		"firstName": "first_name",
		"lastName":  "last_name",
		"avatar":    "avatar_url",
	}

	clause, args, err := BuildUpdate([]Field{
		{Name: "firstName", Value: "Julia"},
		{Name: "avatar", Value: "https://example.com/a.png"},
	}, columns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "first_name = ?, avatar_url = ?"; clause != want {
		t.Errorf("clause = %q, want %q", clause, want)
	}
	if len(args) != 2 || args[0] != "Julia" || args[1] != "https://example.com/a.png" {
		t.Errorf("args = %v", args)
	}
}

func TestBuildUpdatePreservesOrder(t *testing.T) {
	columns := map[string]string{
		"a": "col_a",
		"b": "col_b",
		"c": "col_c",
	}

	clause, args, err := BuildUpdate([]Field{
		{Name: "c", Value: 3},
		{Name: "a", Value: 1},
		{Name: "b", Value: 2},
	}, columns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "col_c = ?, col_a = ?, col_b = ?"; clause != want {
		t.Errorf("clause = %q, want %q", clause, want)
	}
	if args[0] != 3 || args[1] != 1 || args[2] != 2 {
		t.Errorf("args out of order: %v", args)
	}
}

func TestBuildUpdateRejectsUnknownField(t *testing.T) {
	columns := map[string]string{"firstName": "first_name"}

	_, _, err := BuildUpdate([]Field{
		{Name: "firstName", Value: "A"},
		{Name: "age", Value: 32},
	}, columns)
	if !errors.Is(err, errors.ErrBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestBuildUpdateRejectsEmpty(t *testing.T) {
	_, _, err := BuildUpdate(nil, map[string]string{"a": "a"})
	if !errors.Is(err, errors.ErrBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}
