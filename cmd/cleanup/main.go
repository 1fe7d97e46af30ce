package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/qs3c/respvision_go_server/config"
)

var (
	dryRun       = flag.Bool("dry-run", true, "Dry run mode, don't actually delete files")
	expireHours  = flag.Int("expire", 72, "Hours to keep screenshots and reports")
	cleanShots   = flag.Bool("clean-screenshots", true, "Clean expired screenshots")
	cleanReports = flag.Bool("clean-reports", true, "Clean expired reports")
)

func main() {
	flag.Parse()

	log.Println("🧹 Starting cleanup task...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	deletedSize := int64(0)
	deletedFiles := 0

	// 1. 清理过期截图
	if *cleanShots {
		log.Printf("\n📸 Cleaning expired screenshots (older than %d hours)...", *expireHours)
		size, count := cleanExpiredArtifacts(cfg.Storage.ScreenshotsDir, ".png", *expireHours, *dryRun)
		deletedSize += size
		deletedFiles += count
	}

	// 2. 清理过期报告
	if *cleanReports {
		log.Printf("\n📄 Cleaning expired reports (older than %d hours)...", *expireHours)
		size, count := cleanExpiredArtifacts(cfg.Storage.ReportsDir, ".html", *expireHours, *dryRun)
		deletedSize += size
		deletedFiles += count
	}

	// 3. 统计当前占用
	log.Println("\n📈 Scanning current disk usage...")
	totalSize, totalFiles := scanDir(cfg.Storage.ScreenshotsDir)
	s2, f2 := scanDir(cfg.Storage.ReportsDir)
	totalSize += s2
	totalFiles += f2

	// 输出统计
	log.Println("\n" + strings.Repeat("=", 60))
	log.Println("📊 Cleanup Summary")
	log.Println(strings.Repeat("=", 60))
	log.Printf("Total files: %d", totalFiles)
	log.Printf("Total size: %s", formatSize(totalSize))
	log.Printf("Deleted files: %d", deletedFiles)
	log.Printf("Freed space: %s", formatSize(deletedSize))
	if *dryRun {
		log.Println("\n⚠️  DRY RUN MODE - No files were actually deleted")
		log.Println("   Run with -dry-run=false to actually delete files")
	} else {
		log.Println("\n✅ Cleanup completed!")
	}
	log.Println(strings.Repeat("=", 60))
}

// cleanExpiredArtifacts 清理目录下过期的指定后缀文件
func cleanExpiredArtifacts(dir, suffix string, expireHours int, dryRun bool) (int64, int) {
	expireTime := time.Now().Add(-time.Duration(expireHours) * time.Hour)
	var totalSize int64
	var count int

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Failed to read dir %s: %v", dir, err)
		return 0, 0
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(expireTime) {
			totalSize += info.Size()

			log.Printf("  - %s (%.2f KB, %s old)",
				entry.Name(),
				float64(info.Size())/1024,
				time.Since(info.ModTime()).Round(time.Hour))

			if !dryRun {
				if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
					log.Printf("    ❌ Failed to delete: %v", err)
				} else {
					count++
				}
			} else {
				count++
			}
		}
	}

	log.Printf("Found %d expired files (total: %s)", count, formatSize(totalSize))
	return totalSize, count
}

// scanDir 统计目录占用
func scanDir(dir string) (int64, int) {
	var size int64
	var files int
	filepath.Walk(dir, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			size += info.Size()
			files++
		}
		return nil
	})
	return size, files
}

// formatSize 格式化文件大小
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
