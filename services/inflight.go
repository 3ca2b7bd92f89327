package services

import (
	"fmt"
	"sync"
)

// InflightGuard serializes operations per session: the chat panel and the
// upload form each allow one outstanding request at a time. Acquire returns
// false while a prior holder has not released the same key.
type InflightGuard struct {
	mu     sync.Mutex
	active map[string]bool
}

func NewInflightGuard() *InflightGuard {
	return &InflightGuard{active: make(map[string]bool)}
}

func InflightKey(sessionID uint, operation string) string {
	return fmt.Sprintf("%d:%s", sessionID, operation)
}

func (g *InflightGuard) Acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active[key] {
		return false
	}
	g.active[key] = true
	return true
}

func (g *InflightGuard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}
