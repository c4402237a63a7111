package minio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MatchServer/config"
	"MatchServer/pkg/util"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var global *MinIOClient

// MinIOClient 封装 minio 客户端与桶配置。
// 聊天媒体走预签名直传：服务端只发 URL，不经手文件字节。
type MinIOClient struct {
	client *minio.Client
	cfg    config.MinIOConfig
}

// Client 返回全局客户端（未初始化时为 nil）。
func Client() *MinIOClient {
	return global
}

// ReplaceGlobal 设置全局客户端。
func ReplaceGlobal(c *MinIOClient) {
	global = c
}

// Build 根据配置构建客户端并确保桶存在。
func Build(cfg config.MinIOConfig) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Location}); err != nil {
			return nil, fmt.Errorf("make bucket: %w", err)
		}
	}

	return &MinIOClient{client: client, cfg: cfg}, nil
}

// PresignResult 预签名结果。
type PresignResult struct {
	ObjectName string        // 对象名（客户端上传完成后回传给消息接口）
	UploadURL  string        // 预签名 PUT 地址
	PublicURL  string        // 上传完成后的访问地址
	ExpiresIn  time.Duration // 上传地址有效期
}

// PresignUpload 为一次媒体上传生成预签名 PUT URL。
// contentType 不在白名单内时拒绝。
func (c *MinIOClient) PresignUpload(ctx context.Context, userUUID, fileName, contentType string) (*PresignResult, error) {
	if !c.isAllowedType(contentType) {
		return nil, fmt.Errorf("content type %q not allowed", contentType)
	}

	objectName := c.generateObjectName(userUUID, fileName)
	uploadURL, err := c.client.PresignedPutObject(ctx, c.cfg.BucketName, objectName, c.cfg.PresignExpires)
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	return &PresignResult{
		ObjectName: objectName,
		UploadURL:  uploadURL.String(),
		PublicURL:  c.publicURL(objectName),
		ExpiresIn:  c.cfg.PresignExpires,
	}, nil
}

// MaxFileSize 返回允许的最大文件字节数（客户端预检用）。
func (c *MinIOClient) MaxFileSize() int64 {
	return c.cfg.MaxFileSize
}

// generateObjectName 生成对象名: media/{user_uuid}/{yyyymm}/{uuid}.{ext}
// 按用户和月份分目录，便于后续生命周期清理。
func (c *MinIOClient) generateObjectName(userUUID, fileName string) string {
	ext := ""
	if idx := strings.LastIndex(fileName, "."); idx != -1 {
		ext = strings.ToLower(fileName[idx:])
	}
	return fmt.Sprintf("media/%s/%s/%s%s", userUUID, time.Now().Format("200601"), util.NewUUID(), ext)
}

func (c *MinIOClient) publicURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.BucketName, objectName)
}

func (c *MinIOClient) isAllowedType(contentType string) bool {
	if len(c.cfg.AllowedTypes) == 0 {
		return true
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	for _, allowed := range c.cfg.AllowedTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
