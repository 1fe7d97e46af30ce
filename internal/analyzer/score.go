package analyzer

import "github.com/qs3c/respvision_go_server/internal/model"

// CalculateScores 按问题严重程度扣分计算总分与各设备分：
// 总分从 100 起扣，critical 扣 15 分、warning 扣 8 分、info 扣 3 分；
// 设备分在总分基础上对设备名完全匹配的 critical 问题每个再扣 10 分，
// 标记为 all 的问题只影响总分。
func CalculateScores(issues []model.Issue) model.Score {
	overall := 100
	for _, issue := range issues {
		switch issue.Type {
		case model.IssueCritical:
			overall -= 15
		case model.IssueWarning:
			overall -= 8
		case model.IssueInfo:
			overall -= 3
		}
	}
	if overall < 0 {
		overall = 0
	}

	score := model.Score{
		Overall: overall,
		Mobile:  overall,
		Tablet:  overall,
		Desktop: overall,
	}

	criticalOn := func(device string) int {
		n := 0
		for _, issue := range issues {
			if issue.Type != model.IssueCritical {
				continue
			}
			if issue.Device == device {
				n++
			}
		}
		return n
	}

	score.Mobile = clampScore(overall - 10*criticalOn(model.DeviceMobile))
	score.Tablet = clampScore(overall - 10*criticalOn(model.DeviceTablet))
	score.Desktop = clampScore(overall - 10*criticalOn(model.DeviceDesktop))

	return score
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
