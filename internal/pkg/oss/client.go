package oss

import (
	"bytes"
	"fmt"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"github.com/qs3c/respvision_go_server/config"
)

type Client struct {
	client     *oss.Client
	bucket     *oss.Bucket
	bucketName string
	cdnDomain  string
}

func NewClient(cfg *config.OSSConfig) (*Client, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %w", err)
	}

	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &Client{
		client:     client,
		bucket:     bucket,
		bucketName: cfg.BucketName,
		cdnDomain:  cfg.CDNDomain,
	}, nil
}

// UploadReport 上传渲染好的 HTML 报告
func (c *Client) UploadReport(analysisID string, html []byte) (string, error) {
	objectKey := fmt.Sprintf("reports/%s/%d.html", analysisID, time.Now().Unix())

	err := c.bucket.PutObject(objectKey, bytes.NewReader(html), oss.ContentType("text/html; charset=utf-8"))
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	return c.GetURL(objectKey), nil
}

// UploadScreenshot 上传截图文件
func (c *Client) UploadScreenshot(analysisID, filename string, data []byte) (string, error) {
	objectKey := fmt.Sprintf("screenshots/%s/%s", analysisID, filename)

	err := c.bucket.PutObject(objectKey, bytes.NewReader(data), oss.ContentType("image/png"))
	if err != nil {
		return "", fmt.Errorf("failed to upload screenshot: %w", err)
	}

	return c.GetURL(objectKey), nil
}

// Delete 删除文件
func (c *Client) Delete(objectKey string) error {
	err := c.bucket.DeleteObject(objectKey)
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// GetURL 获取文件访问 URL
func (c *Client) GetURL(objectKey string) string {
	if c.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", c.cdnDomain, objectKey)
	}
	return fmt.Sprintf("https://%s.%s/%s", c.bucketName, c.client.Config.Endpoint, objectKey)
}
