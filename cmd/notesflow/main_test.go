package main

import (
	"reflect"
	"testing"
)

func TestRewriteShareTokenArgs(t *testing.T) {
	t.Parallel()

	const token = "a1b2c3d4e5f6a7b8c9d0"

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"notesflow"},
			want: []string{"notesflow"},
		},
		{
			name: "token as first token",
			in:   []string{"notesflow", token},
			want: []string{"notesflow", "share", "show", token},
		},
		{
			name: "token after value flag",
			in:   []string{"notesflow", "--api-url", "http://localhost:8080", token},
			want: []string{"notesflow", "--api-url", "http://localhost:8080", "share", "show", token},
		},
		{
			name: "token after equals flag",
			in:   []string{"notesflow", "--api-url=http://localhost:8080", token},
			want: []string{"notesflow", "--api-url=http://localhost:8080", "share", "show", token},
		},
		{
			name: "token after bool flag",
			in:   []string{"notesflow", "--pretty", token},
			want: []string{"notesflow", "--pretty", "share", "show", token},
		},
		{
			name: "token after double dash",
			in:   []string{"notesflow", "--pretty", "--", token},
			want: []string{"notesflow", "--pretty", "--", "share", "show", token},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"notesflow", "notes", "list"},
			want: []string{"notesflow", "notes", "list"},
		},
		{
			name: "short word not rewritten",
			in:   []string{"notesflow", "wat"},
			want: []string{"notesflow", "wat"},
		},
		{
			name: "long subcommand name not rewritten",
			in:   []string{"notesflow", "completion"},
			want: []string{"notesflow", "completion"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteShareTokenArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteShareTokenArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
