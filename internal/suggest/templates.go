package suggest

import "github.com/qs3c/respvision_go_server/internal/model"

// template 单个问题类别的整改建议模板
type template struct {
	keywords      []string
	category      string
	codeExample   string
	before        string
	after         string
	documentation string
}

// templates 按顺序匹配，命中第一个即停；顺序即优先级
var templates = []template{
	{
		keywords:      []string{"viewport"},
		category:      model.CategoryHTML,
		codeExample:   `<meta name="viewport" content="width=device-width, initial-scale=1.0">`,
		before:        "页面没有 viewport meta 标签",
		after:         `<meta name="viewport" content="width=device-width, initial-scale=1.0">`,
		documentation: "https://developer.mozilla.org/en-US/docs/Web/HTML/Viewport_meta_tag",
	},
	{
		keywords: []string{"media query", "breakpoint"},
		category: model.CategoryCSS,
		codeExample: `/* Mobile first approach */
.container {
  width: 100%;
  padding: 1rem;
}

/* Tablet */
@media (min-width: 768px) {
  .container {
    max-width: 750px;
    margin: 0 auto;
  }
}

/* Desktop */
@media (min-width: 1024px) {
  .container {
    max-width: 1200px;
  }
}`,
		before:        "样式没有任何 media query",
		after:         "带响应式断点的样式",
		documentation: "https://developer.mozilla.org/en-US/docs/Web/CSS/Media_Queries/Using_media_queries",
	},
	{
		keywords: []string{"text", "font"},
		category: model.CategoryCSS,
		codeExample: `/* Responsive font sizes */
body {
  font-size: 16px;
}

@media (max-width: 768px) {
  body {
    font-size: 14px;
  }

  h1 { font-size: 1.5rem; }
  h2 { font-size: 1.25rem; }
  p { font-size: 1rem; }
}`,
		before:        "固定且过小的字号",
		after:         "相对且自适应的字号",
		documentation: "https://developer.mozilla.org/en-US/docs/Web/CSS/font-size",
	},
	{
		keywords: []string{"width"},
		category: model.CategoryCSS,
		codeExample: `/* Relative vs fixed units */
/* Avoid */
.container {
  width: 1024px;
}

/* Prefer */
.container {
  width: 100%;
  max-width: 1024px;
  padding: 0 1rem;
}`,
		before:        "固定像素宽度",
		after:         "相对宽度加 max-width",
		documentation: "https://developer.mozilla.org/en-US/docs/Web/CSS/width",
	},
	{
		keywords: []string{"touch", "button"},
		category: model.CategoryCSS,
		codeExample: `/* Adequate touch targets */
.button {
  min-width: 44px;
  min-height: 44px;
  padding: 12px 24px;
  font-size: 16px; /* Prevents zoom on iOS */
}`,
		before:        "过小的按钮（小于 44px）",
		after:         "满足最小触控面积的按钮",
		documentation: "https://developer.mozilla.org/en-US/docs/Web/CSS/touch-action",
	},
	{
		keywords: []string{"image"},
		category: model.CategoryCSS,
		codeExample: `/* Responsive images */
img {
  max-width: 100%;
  height: auto;
  display: block;
}

.responsive-image {
  width: 100%;
  height: auto;
  object-fit: cover;
}`,
		before:        "固定宽度的图片",
		after:         "max-width: 100% 的响应式图片",
		documentation: "https://developer.mozilla.org/en-US/docs/Web/CSS/object-fit",
	},
	{
		keywords: []string{"scroll"},
		category: model.CategoryCSS,
		codeExample: `/* Prevent horizontal scroll */
html, body {
  max-width: 100%;
  overflow-x: hidden;
}

* {
  box-sizing: border-box;
}`,
		before:        "意外的水平滚动",
		after:         "无水平滚动的布局",
		documentation: "https://developer.mozilla.org/en-US/docs/Web/CSS/overflow",
	},
}

// genericTemplate 未命中任何关键词时的兜底模板
var genericTemplate = template{
	category: model.CategoryCSS,
	codeExample: `/* Generic fix */
.element {
  /* Add responsive styles here */
}`,
}
