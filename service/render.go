package service

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ContentRenderer 把评论原文渲染为可以安全输出的 HTML
type ContentRenderer interface {
	Render(content string) string
}

type markdownRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewMarkdownRenderer 使用 GFM 渲染 Markdown，再用 UGC 策略清洗。
// 评论区不允许图片以外的嵌入内容，外链统一加 nofollow。
func NewMarkdownRenderer() ContentRenderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowImages()
	policy.RequireNoFollowOnLinks(true)
	policy.RequireNoReferrerOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &markdownRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
				html.WithXHTML(),
			),
		),
		policy: policy,
	}
}

func (r *markdownRenderer) Render(content string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		// 渲染失败时退回到转义后的原文
		return r.policy.Sanitize(content)
	}
	return string(r.policy.SanitizeBytes(buf.Bytes()))
}
