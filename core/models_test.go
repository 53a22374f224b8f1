package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestEntity_Tuple(t *testing.T) {
	tests := []struct {
		name   string
		entity Entity
		want   string
	}{
		{
			name: "basic entity",
			entity: Entity{
				Canonical: "jane doe",
				Type:      "person",
			},
			want: "(person,jane doe)",
		},
		{
			name: "entity with spaces in type",
			entity: Entity{
				Canonical: "department of justice",
				Type:      "org",
			},
			want: "(org,department of justice)",
		},
		{
			name: "empty entity",
			entity: Entity{
				Canonical: "",
				Type:      "",
			},
			want: "(,)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.entity.Tuple()
			if got != tt.want {
				t.Errorf("Entity.Tuple() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntity_TupleIdentity(t *testing.T) {
	// Two entities with the same (canonical, type) pair must hash to the
	// same ID regardless of surface name or aliases.
	a := Entity{Name: "Jane Doe", Canonical: "jane doe", Type: "person"}
	b := Entity{Name: "JANE DOE", Canonical: "jane doe", Type: "person", Aliases: []string{"J. Doe"}}

	if IDFromContent(a.Tuple()) != IDFromContent(b.Tuple()) {
		t.Errorf("entities with equal (canonical, type) produced different IDs")
	}

	c := Entity{Canonical: "jane doe", Type: "org"}
	if IDFromContent(a.Tuple()) == IDFromContent(c.Tuple()) {
		t.Errorf("entities with different types produced the same ID")
	}
}
