package capture

import "fmt"

// Device 截图设备档位
type Device struct {
	Name        string
	Width       int64
	Height      int64
	ScaleFactor float64
	UserAgent   string
}

// Resolution 返回 "宽x高" 形式的分辨率串
func (d Device) Resolution() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Devices 固定的设备配置表
func Devices() []Device {
	return []Device{
		{
			Name:        "mobile",
			Width:       375,
			Height:      667,
			ScaleFactor: 2,
			UserAgent:   "Mozilla/5.0 (iPhone; CPU iPhone OS 14_0 like Mac OS X) AppleWebKit/605.1.15",
		},
		{
			Name:        "tablet",
			Width:       768,
			Height:      1024,
			ScaleFactor: 2,
			UserAgent:   "Mozilla/5.0 (iPad; CPU OS 14_0 like Mac OS X) AppleWebKit/605.1.15",
		},
		{
			Name:        "desktop",
			Width:       1920,
			Height:      1080,
			ScaleFactor: 1,
			UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		},
		{
			Name:        "4k",
			Width:       3840,
			Height:      2160,
			ScaleFactor: 1,
			UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		},
	}
}
