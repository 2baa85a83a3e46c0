package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Shirt came back torn", "Shirt came back torn"},
		{"script", `<script>alert(1)</script>Missing sock`, "Missing sock"},
		{"markup", `<b>Stain</b> on <a href="x">collar</a>`, "Stain on collar"},
		{"ampersand", "Tom & Jerry's shirt", "Tom & Jerry's shirt"},
		{"whitespace", "  12 Baker Street  ", "12 Baker Street"},
		{"only markup", "<img src=x onerror=alert(1)>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}
