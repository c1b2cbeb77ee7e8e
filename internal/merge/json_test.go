package merge

import (
	"errors"
	"testing"
)

func TestMergeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing string
		incoming string
		want     string
	}{
		{
			name:     "new file is canonicalized",
			existing: "",
			incoming: `{"b":1,"a":{"y":true,"x":"<&>"}}`,
			want:     "{\n  \"a\": {\n    \"x\": \"<&>\",\n    \"y\": true\n  },\n  \"b\": 1\n}\n",
		},
		{
			name:     "objects merge recursively",
			existing: `{"dependencies":{"hono":"^4.6.0"}}`,
			incoming: `{"dependencies":{"drizzle-orm":"^0.38.0"}}`,
			want:     "{\n  \"dependencies\": {\n    \"drizzle-orm\": \"^0.38.0\",\n    \"hono\": \"^4.6.0\"\n  }\n}\n",
		},
		{
			name:     "arrays union in first-seen order",
			existing: `{"workspaces":["apps/*","packages/*"]}`,
			incoming: `{"workspaces":["packages/*","tools/*"]}`,
			want:     "{\n  \"workspaces\": [\n    \"apps/*\",\n    \"packages/*\",\n    \"tools/*\"\n  ]\n}\n",
		},
		{
			name:     "equal scalars are accepted",
			existing: `{"private":true,"version":1.0}`,
			incoming: `{"private":true}`,
			want:     "{\n  \"private\": true,\n  \"version\": 1.0\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var existing []byte
			if tt.existing != "" {
				existing = []byte(tt.existing)
			}
			got, err := mergeJSON("package.json", existing, []byte(tt.incoming))
			if err != nil {
				t.Fatalf("mergeJSON() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("mergeJSON() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestMergeJSON_Conflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		existing    string
		incoming    string
		wantPointer string
	}{
		{"different scalars", `{"scripts":{"dev":"bun run src/index.ts"}}`, `{"scripts":{"dev":"node dist/index.js"}}`, "/scripts/dev"},
		{"object vs scalar", `{"main":{"a":1}}`, `{"main":"index.js"}`, "/main"},
		{"array vs object", `{"files":["dist"]}`, `{"files":{"x":1}}`, "/files"},
		{"root kind mismatch", `[]`, `{}`, "/"},
		{"escaped key", `{"a/b":1}`, `{"a/b":2}`, "/a~1b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := mergeJSON("package.json", []byte(tt.existing), []byte(tt.incoming))
			var ce *MergeConflictError
			if !errors.As(err, &ce) {
				t.Fatalf("error = %v, want *MergeConflictError", err)
			}
			if ce.Pointer != tt.wantPointer {
				t.Errorf("Pointer = %q, want %q", ce.Pointer, tt.wantPointer)
			}
			if ce.Path != "package.json" {
				t.Errorf("Path = %q", ce.Path)
			}
			if !errors.Is(err, ErrMergeConflict) {
				t.Error("expected errors.Is(err, ErrMergeConflict)")
			}
		})
	}
}

func TestMergeJSON_Invalid(t *testing.T) {
	t.Parallel()

	_, err := mergeJSON("a.json", []byte(`{"a":`), []byte(`{}`))
	if !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("error = %v, want ErrInvalidJSON", err)
	}
	_, err = mergeJSON("a.json", nil, []byte(`{} {}`))
	if !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("trailing data error = %v, want ErrInvalidJSON", err)
	}
}
