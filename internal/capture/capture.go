package capture

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"github.com/qs3c/respvision_go_server/config"
	"github.com/qs3c/respvision_go_server/internal/model"
)

// Capturer 截图阶段：对每个设备档位打开独立浏览器上下文抓取页面
type Capturer struct {
	screenshotsDir string
	navTimeout     time.Duration
	settleDelay    time.Duration
}

func New(cfg *config.CaptureConfig, screenshotsDir string) *Capturer {
	navTimeout := time.Duration(cfg.NavTimeoutSec) * time.Second
	if navTimeout <= 0 {
		navTimeout = 30 * time.Second
	}
	settleDelay := time.Duration(cfg.SettleDelaySec) * time.Second

	return &Capturer{
		screenshotsDir: screenshotsDir,
		navTimeout:     navTimeout,
		settleDelay:    settleDelay,
	}
}

// Warmup 启动并关闭一次浏览器，验证运行环境可用
func (c *Capturer) Warmup(ctx context.Context) error {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	warmupCtx, cancel := context.WithTimeout(browserCtx, c.navTimeout)
	defer cancel()

	return chromedp.Run(warmupCtx)
}

// Capture 按设备配置表逐档抓取视口截图和整页截图。
// 单个档位失败跳过不影响其余档位；浏览器无法启动时返回错误，由上层降级处理。
func (c *Capturer) Capture(ctx context.Context, pageURL, analysisID string) ([]model.Screenshot, error) {
	if err := os.MkdirAll(c.screenshotsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create screenshots dir: %w", err)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	// 先确认浏览器能启动，启动失败视为整个阶段失败
	startCtx, cancelStart := context.WithTimeout(browserCtx, c.navTimeout)
	err := chromedp.Run(startCtx)
	cancelStart()
	if err != nil {
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	var screenshots []model.Screenshot

	for _, device := range Devices() {
		shot, err := c.captureDevice(browserCtx, pageURL, analysisID, device)
		if err != nil {
			log.Printf("Analysis %s: error capturing %s screenshot: %v", analysisID, device.Name, err)
			continue
		}
		screenshots = append(screenshots, *shot)
	}

	log.Printf("Analysis %s: captured %d screenshots", analysisID, len(screenshots))
	return screenshots, nil
}

func (c *Capturer) captureDevice(browserCtx context.Context, pageURL, analysisID string, device Device) (*model.Screenshot, error) {
	// 每个档位独立标签页，互不污染视口状态
	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()

	runCtx, cancel := context.WithTimeout(tabCtx, c.navTimeout+c.settleDelay)
	defer cancel()

	filename, fullPageFilename := c.filenames(analysisID, device.Name, time.Now())

	var viewportBuf, fullPageBuf []byte
	err := chromedp.Run(runCtx,
		emulation.SetUserAgentOverride(device.UserAgent),
		chromedp.EmulateViewport(device.Width, device.Height, chromedp.EmulateScale(device.ScaleFactor)),
		chromedp.Navigate(pageURL),
		// 等待延迟渲染内容
		chromedp.Sleep(c.settleDelay),
		chromedp.CaptureScreenshot(&viewportBuf),
		chromedp.FullScreenshot(&fullPageBuf, 100),
	)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(filepath.Join(c.screenshotsDir, filename), viewportBuf, 0644); err != nil {
		return nil, fmt.Errorf("failed to write screenshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.screenshotsDir, fullPageFilename), fullPageBuf, 0644); err != nil {
		return nil, fmt.Errorf("failed to write full page screenshot: %w", err)
	}

	return &model.Screenshot{
		ID:          uuid.NewString(),
		Device:      device.Name,
		Resolution:  device.Resolution(),
		URL:         "/screenshots/" + filename,
		FullPageURL: "/screenshots/" + fullPageFilename,
		CreatedAt:   time.Now(),
	}, nil
}

// filenames 生成带任务 ID、档位名和时间戳的文件名，避免冲突
func (c *Capturer) filenames(analysisID, deviceName string, ts time.Time) (string, string) {
	stamp := ts.Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s_%s.png", analysisID, deviceName, stamp)
	fullPageFilename := fmt.Sprintf("%s_%s_full_%s.png", analysisID, deviceName, stamp)
	return filename, fullPageFilename
}
