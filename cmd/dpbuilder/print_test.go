package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 500, "500 B"},
		{"exactly 1KB", 1024, "1.0 KB"},
		{"1.5KB", 1536, "1.5 KB"},
		{"exactly 1MB", 1024 * 1024, "1.0 MB"},
		{"typical demo archive", 4 * 1024 * 1024, "4.0 MB"},
		{"1GB", 1073741824, "1.0 GB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSize(tt.bytes); got != tt.want {
				t.Errorf("formatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestProgressLine(t *testing.T) {
	tests := []struct {
		name    string
		written int64
		total   int64
		want    string
	}{
		{"start", 0, 2048, "  0% of 2.0 KB"},
		{"halfway", 1024, 2048, " 50% of 2.0 KB"},
		{"complete", 2048, 2048, "100% of 2.0 KB"},
		{"overrun clamps", 4096, 2048, "100% of 2.0 KB"},
		{"unknown total", 1536, -1, "1.5 KB downloaded"},
		{"no content length", 512, 0, "512 B downloaded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, progressLine(tt.written, tt.total))
		})
	}
}
