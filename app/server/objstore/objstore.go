// Package objstore 封装 MinIO 对象存储客户端，题目配图等上传文件都放在这里
package objstore

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"exam-prep-admin/app/server/config"
)

type Client struct {
	mc     *minio.Client
	bucket string
}

func New(cfg *config.Config) (*Client, error) {
	mc, err := minio.New(cfg.ObjectStorage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ObjectStorage.AccessKey, cfg.ObjectStorage.SecretKey, ""),
		Secure: cfg.ObjectStorage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &Client{mc: mc, bucket: cfg.ObjectStorage.Bucket}, nil
}

// EnsureBucket 确保 bucket 存在，启动时调用一次
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := c.mc.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

func (c *Client) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := c.mc.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}
