package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewrite(t *testing.T) {
	r := NewRewriter("https://cdn.swingradar.com/", "/uploads/")

	tests := []struct {
		name, in, want string
	}{
		{"upload path", "/uploads/events/e1.jpg", "https://cdn.swingradar.com/uploads/events/e1.jpg"},
		{"absolute url untouched", "https://elsewhere.com/pic.jpg", "https://elsewhere.com/pic.jpg"},
		{"other relative path untouched", "/static/logo.png", "/static/logo.png"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Rewrite(tt.in))
		})
	}
}

func TestRewrite_NoBaseURLIsPassthrough(t *testing.T) {
	r := NewRewriter("", "/uploads/")
	assert.Equal(t, "/uploads/e1.jpg", r.Rewrite("/uploads/e1.jpg"))
}
