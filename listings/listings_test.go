package listings

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want []string
	}{
		{"comma string", "Plumbing, repairs , PLUMBING", []string{"plumbing", "repairs"}},
		{"string slice", []string{"Painting", "painting", "walls"}, []string{"painting", "walls"}},
		{"json list", []any{"Garden", " garden ", 42}, []string{"garden"}},
		{"empty string", "", []string{}},
		{"absent", nil, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeTags(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("normalizeTags(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
