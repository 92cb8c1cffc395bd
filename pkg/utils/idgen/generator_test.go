package idgen

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUnique(t *testing.T) {
	g := NewSimpleGenerator()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := g.Generate()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	g := NewSimpleGenerator()
	id := g.GenerateWithPrefix("session")
	assert.True(t, strings.HasPrefix(id, "session_"))
}

func TestGenerateConcurrent(t *testing.T) {
	g := NewSimpleGenerator()
	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := g.Generate()
				mu.Lock()
				assert.False(t, seen[id])
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}

func TestDefaultHelpers(t *testing.T) {
	assert.True(t, strings.HasPrefix(SessionID(), "session_"))
	assert.True(t, strings.HasPrefix(JobID(), "job_"))
}
