package minio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_ListPrefixPreservesSeparator(t *testing.T) {
	tests := []struct {
		name   string
		root   string
		prefix string
		want   string
	}{
		{"zoom directory", "tiles", "1/", "tiles/1/"},
		{"root with trailing slash", "tiles/", "1/", "tiles/1/"},
		{"no root", "", "1/", "1/"},
		{"empty prefix", "tiles", "", "tiles/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Store{prefix: tt.root}
			assert.Equal(t, tt.want, s.listPrefix(tt.prefix))
		})
	}
}
