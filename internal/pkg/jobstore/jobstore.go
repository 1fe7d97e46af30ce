package jobstore

import (
	"sync"

	"github.com/qs3c/respvision_go_server/internal/model"
)

// Store 进程内分析状态表。每个 key 只由其后台协程写入，
// 读取方拿到的都是快照拷贝。
type Store struct {
	mu      sync.RWMutex
	entries map[string]*model.Analysis
}

func New() *Store {
	return &Store{
		entries: make(map[string]*model.Analysis),
	}
}

// Put 写入任务状态快照
func (s *Store) Put(analysis *model.Analysis) {
	snapshot := analysis.Clone()
	s.mu.Lock()
	s.entries[snapshot.ID] = snapshot
	s.mu.Unlock()
}

// Get 按 ID 读取快照
func (s *Store) Get(id string) (*model.Analysis, bool) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return entry.Clone(), true
}

// Delete 移除任务状态
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
}

// Len 当前条目数，健康检查用
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
