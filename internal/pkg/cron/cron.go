package cron

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Service 定时清理过期的截图与报告文件
type Service struct {
	screenshotsDir string
	reportsDir     string
	expireHours    int
	stopChan       chan struct{}
}

func NewService(screenshotsDir, reportsDir string, expireHours int) *Service {
	return &Service{
		screenshotsDir: screenshotsDir,
		reportsDir:     reportsDir,
		expireHours:    expireHours,
		stopChan:       make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runCleanup()
	log.Println("Cron service started (artifact cleanup)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runCleanup 每小时执行一次全量清理
func (s *Service) runCleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanupAll()
		}
	}
}

// cleanupAll 执行所有清理任务
func (s *Service) cleanupAll() {
	expireHours := s.expireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	expireDuration := time.Duration(expireHours) * time.Hour

	c1 := s.cleanupDir(s.screenshotsDir, ".png", expireDuration)
	c2 := s.cleanupDir(s.reportsDir, ".html", expireDuration)

	if c1+c2 > 0 {
		log.Printf("Cleanup summary: screenshots=%d, reports=%d", c1, c2)
	}
}

// cleanupDir 删除目录下超过保留期的指定后缀文件
func (s *Service) cleanupDir(dir, suffix string, expireDuration time.Duration) int {
	if dir == "" {
		return 0
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Cleanup: failed to read dir %s: %v", dir, err)
		}
		return 0
	}

	cleaned := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if time.Since(info.ModTime()) > expireDuration {
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				log.Printf("Cleanup: failed to remove %s: %v", path, err)
			} else {
				cleaned++
			}
		}
	}
	return cleaned
}

// RunNow 立即执行一次清理（用于手动触发）
func (s *Service) RunNow() {
	log.Println("Manual artifact cleanup triggered...")
	s.cleanupAll()
}
