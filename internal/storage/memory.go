package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryBucket is an in-memory Bucket for tests. Objects are keyed by their
// full path (including scheme prefix) and listed in lexicographic order, so
// behavior is deterministic.
type MemoryBucket struct {
	mu      sync.Mutex
	objects map[string]string
	reads   map[string]int
}

// NewMemoryBucket creates an empty in-memory bucket.
func NewMemoryBucket() *MemoryBucket {
	return &MemoryBucket{
		objects: make(map[string]string),
		reads:   make(map[string]int),
	}
}

// Put stores content at the given full path, replacing any previous value.
func (m *MemoryBucket) Put(path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path] = content
}

// ReadCount returns how many times Read was called for path.
func (m *MemoryBucket) ReadCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads[path]
}

// Read returns the stored content, or an error wrapping
// liribatch.ErrPathNotFound for unknown paths.
func (m *MemoryBucket) Read(ctx context.Context, path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads[path]++
	content, ok := m.objects[path]
	if !ok {
		return "", notFoundError(path)
	}
	return content, nil
}

// List expands path with the same semantics as the cloud backends: exact
// object, * wildcard pattern, or directory prefix listing direct children.
func (m *MemoryBucket) List(ctx context.Context, path string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var paths []string
	if _, wildcard := splitWildcard(path); wildcard {
		for key := range m.objects {
			if matchPattern(path, key) {
				paths = append(paths, key)
			}
		}
		sort.Strings(paths)
		return paths, nil
	}

	if _, ok := m.objects[path]; ok {
		return []string{path}, nil
	}

	prefix := strings.TrimSuffix(path, "/") + "/"
	for key := range m.objects {
		rel := strings.TrimPrefix(key, prefix)
		if rel == key {
			continue
		}
		if !strings.Contains(rel, "/") {
			paths = append(paths, key)
		}
	}
	sort.Strings(paths)
	return paths, nil
}
