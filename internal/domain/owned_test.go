package domain

import (
	"testing"
	"time"

	"github.com/platefulapp/plateful-server/internal/errors"
)

func TestRequireOwner(t *testing.T) {
	recipe := &Recipe{ID: 10, AuthorID: 1}
	shelf := &Shelf{ID: 20, UserID: 2}
	community := &Community{ID: 30, AdminID: 3}

	tests := []struct {
		name        string
		principalID int64
		resource    Owned
		wantErr     bool
	}{
		{"recipe author", 1, recipe, false},
		{"recipe non-author", 2, recipe, true},
		{"shelf owner", 2, shelf, false},
		{"shelf non-owner", 1, shelf, true},
		{"community admin", 3, community, false},
		{"community non-admin", 1, community, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireOwner(tt.principalID, tt.resource)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrForbidden) {
					t.Fatalf("expected forbidden, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected nil, got %v", err)
			}
		})
	}
}

func TestLifecycleState(t *testing.T) {
	r := &Recipe{ID: 1, AuthorID: 1}
	if r.State() != StateActive {
		t.Errorf("expected active, got %v", r.State())
	}

	now := time.Now()
	r.DeletedAt = &now
	if r.State() != StateSoftDeleted {
		t.Errorf("expected soft_deleted, got %v", r.State())
	}

	s := &Shelf{ID: 1, UserID: 1}
	if s.State() != StateActive {
		t.Errorf("expected active, got %v", s.State())
	}
	s.DeletedAt = &now
	if s.State() != StateSoftDeleted {
		t.Errorf("expected soft_deleted, got %v", s.State())
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateActive:      "active",
		StateSoftDeleted: "soft_deleted",
		StateRemoved:     "removed",
		State(99):        "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
