package report

// reportTemplate 自包含的报告页面，样式内联，便于离线查看或上传 OSS
const reportTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>响应式分析报告 - {{.URL}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            margin: 0;
            padding: 20px;
            background-color: #f5f5f5;
        }
        .container {
            max-width: 1200px;
            margin: 0 auto;
            background: white;
            border-radius: 8px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
            overflow: hidden;
        }
        .header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 30px;
            text-align: center;
        }
        .header h1 {
            margin: 0;
            font-size: 2.5rem;
            font-weight: 300;
        }
        .header p {
            margin: 10px 0 0 0;
            opacity: 0.9;
        }
        .content {
            padding: 30px;
        }
        .section {
            margin-bottom: 40px;
        }
        .section h2 {
            color: #333;
            border-bottom: 2px solid #667eea;
            padding-bottom: 10px;
            margin-bottom: 20px;
        }
        .stats {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }
        .stat-card {
            background: #f8f9fa;
            padding: 20px;
            border-radius: 8px;
            text-align: center;
            border-left: 4px solid #667eea;
        }
        .stat-number {
            font-size: 2rem;
            font-weight: bold;
            color: #667eea;
        }
        .stat-label {
            color: #666;
            margin-top: 5px;
        }
        .issue {
            background: #fff;
            border: 1px solid #e0e0e0;
            border-radius: 8px;
            padding: 20px;
            margin-bottom: 15px;
            border-left: 4px solid #ff6b6b;
        }
        .issue.warning {
            border-left-color: #ffa726;
        }
        .issue.info {
            border-left-color: #42a5f5;
        }
        .issue h3 {
            margin: 0 0 10px 0;
            color: #333;
        }
        .issue p {
            margin: 5px 0;
            color: #666;
        }
        .code-example {
            background: #f8f9fa;
            border: 1px solid #e0e0e0;
            border-radius: 4px;
            padding: 15px;
            font-family: 'Courier New', monospace;
            font-size: 14px;
            overflow-x: auto;
            margin: 10px 0;
            white-space: pre-wrap;
        }
        .screenshot-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(300px, 1fr));
            gap: 20px;
            margin-top: 20px;
        }
        .screenshot {
            text-align: center;
        }
        .screenshot img {
            max-width: 100%;
            height: auto;
            border: 1px solid #e0e0e0;
            border-radius: 4px;
        }
        .screenshot-caption {
            margin-top: 10px;
            color: #666;
            font-weight: 500;
        }
        .summary {
            white-space: pre-line;
        }
        .footer {
            background: #f8f9fa;
            padding: 20px;
            text-align: center;
            color: #666;
            border-top: 1px solid #e0e0e0;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>响应式分析报告</h1>
            <p>生成时间 {{.GeneratedAt}}</p>
        </div>

        <div class="content">
            <div class="section">
                <h2>统计概览</h2>
                <div class="stats">
                    <div class="stat-card">
                        <div class="stat-number">{{.TotalIssues}}</div>
                        <div class="stat-label">问题总数</div>
                    </div>
                    <div class="stat-card">
                        <div class="stat-number">{{.CriticalIssues}}</div>
                        <div class="stat-label">严重</div>
                    </div>
                    <div class="stat-card">
                        <div class="stat-number">{{.WarningIssues}}</div>
                        <div class="stat-label">警告</div>
                    </div>
                    <div class="stat-card">
                        <div class="stat-number">{{.ScreenshotCount}}</div>
                        <div class="stat-label">截图</div>
                    </div>
                </div>
            </div>

            <div class="section">
                <h2>摘要</h2>
                <p class="summary">{{.Summary}}</p>
            </div>

            <div class="section">
                <h2>页面截图</h2>
                <div class="screenshot-grid">
                    {{- range .Screenshots}}
                    <div class="screenshot">
                        <img src="{{.URL}}" alt="{{.Caption}}">
                        <div class="screenshot-caption">{{.Caption}}</div>
                    </div>
                    {{- end}}
                </div>
            </div>

            <div class="section">
                <h2>发现的问题</h2>
                {{- range .Issues}}
                <div class="issue {{.CSSClass}}">
                    <h3>{{.Title}}</h3>
                    <p><strong>设备：</strong>{{.Device}}</p>
                    <p><strong>级别：</strong>{{.Type}}</p>
                    <p><strong>描述：</strong>{{.Description}}</p>
                    {{- if .Element}}
                    <p><strong>元素：</strong><code>{{.Element}}</code></p>
                    {{- end}}
                    {{- if .Suggestion}}
                    <p><strong>建议：</strong>{{.Suggestion}}</p>
                    {{- end}}
                </div>
                {{- end}}
            </div>

            <div class="section">
                <h2>整改建议</h2>
                {{- range .Recommendations}}
                <div class="issue info">
                    <h3>{{.Title}}</h3>
                    <p><strong>分类：</strong>{{.Category}}</p>
                    <p><strong>优先级：</strong>{{.Priority}}</p>
                    <p><strong>描述：</strong>{{.Description}}</p>
                    {{- if .CodeExample}}
                    <div class="code-example">{{.CodeExample}}</div>
                    {{- end}}
                    {{- if .Before}}
                    <p><strong>之前：</strong>{{.Before}}</p>
                    {{- end}}
                    {{- if .After}}
                    <p><strong>之后：</strong>{{.After}}</p>
                    {{- end}}
                    {{- if .Documentation}}
                    <p><strong>文档：</strong><a href="{{.Documentation}}" target="_blank">查看文档</a></p>
                    {{- end}}
                </div>
                {{- end}}
            </div>
        </div>

        <div class="footer">
            <p>本报告由响应式测试系统自动生成</p>
            <p>更多信息请参考 Web 标准官方文档。</p>
        </div>
    </div>
</body>
</html>
`
