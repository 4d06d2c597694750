package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitWildcard(t *testing.T) {
	tests := []struct {
		pattern  string
		literal  string
		wildcard bool
	}{
		{"dir/file.vcf.gz", "dir/file.vcf.gz", false},
		{"dir/*.vcf.gz", "dir/", true},
		{"*", "", true},
		{"dir/S*.vcf*", "dir/S", true},
		{"", "", false},
	}

	for _, tt := range tests {
		literal, wildcard := splitWildcard(tt.pattern)
		assert.Equal(t, tt.literal, literal, "pattern %q", tt.pattern)
		assert.Equal(t, tt.wildcard, wildcard, "pattern %q", tt.pattern)
	}
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern   string
		candidate string
		want      bool
	}{
		{"vcfs/*.vcf.gz", "vcfs/S1.vcf.gz", true},
		{"vcfs/*.vcf.gz", "vcfs/S1.vcf.gz.tbi", false},
		{"vcfs/*.vcf.gz", "vcfs/nested/S1.vcf.gz", false}, // * never crosses /
		{"vcfs/*", "vcfs/S1.vcf.gz", true},
		{"vcfs/S1*", "vcfs/S1.vcf.gz", true},
		{"vcfs/S1*", "vcfs/S2.vcf.gz", false},
		{"*/S1.vcf.gz", "vcfs/S1.vcf.gz", true},
		{"vcfs/S?.vcf.gz", "vcfs/S1.vcf.gz", false}, // ? is literal
		{"vcfs/S*1*.gz", "vcfs/Sample1.vcf.gz", true},
		{"exact/path.json", "exact/path.json", true},
		{"exact/path.json", "exact/other.json", false},
	}

	for _, tt := range tests {
		got := matchPattern(tt.pattern, tt.candidate)
		assert.Equal(t, tt.want, got, "matchPattern(%q, %q)", tt.pattern, tt.candidate)
	}
}

func TestDirectChild(t *testing.T) {
	tests := []struct {
		prefix string
		name   string
		want   bool
	}{
		{"vcfs", "vcfs/S1.vcf.gz", true},
		{"vcfs", "vcfs/nested/S1.vcf.gz", false},
		{"vcfs", "vcfs", true},
		{"vcfs", "other/S1.vcf.gz", false},
		{"", "S1.vcf.gz", true},
		{"", "vcfs/S1.vcf.gz", false},
	}

	for _, tt := range tests {
		got := directChild(tt.prefix, tt.name)
		assert.Equal(t, tt.want, got, "directChild(%q, %q)", tt.prefix, tt.name)
	}
}
