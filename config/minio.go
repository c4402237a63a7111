package config

import "time"

// MinIOConfig MinIO 对象存储配置（聊天媒体文件）。
type MinIOConfig struct {
	Endpoint        string `json:"endpoint" yaml:"endpoint"`               // MinIO 服务地址，如: localhost:9000
	AccessKeyID     string `json:"accessKeyId" yaml:"accessKeyId"`         // Access Key
	SecretAccessKey string `json:"secretAccessKey" yaml:"secretAccessKey"` // Secret Key
	UseSSL          bool   `json:"useSSL" yaml:"useSSL"`                   // 是否使用 HTTPS

	BucketName string `json:"bucketName" yaml:"bucketName"` // 默认存储桶名称
	Location   string `json:"location" yaml:"location"`     // Bucket 区域

	MaxFileSize    int64         `json:"maxFileSize" yaml:"maxFileSize"`       // 最大文件大小（字节）
	AllowedTypes   []string      `json:"allowedTypes" yaml:"allowedTypes"`     // 允许的文件类型
	PresignExpires time.Duration `json:"presignExpires" yaml:"presignExpires"` // 预签名 URL 有效期

	BaseURL string `json:"baseUrl" yaml:"baseUrl"` // 外部访问的基础 URL
}

// DefaultMinIOConfig 返回本地开发的默认配置。
func DefaultMinIOConfig() MinIOConfig {
	return MinIOConfig{
		Endpoint:        "minio:9000",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
		UseSSL:          false,

		BucketName: "matchserver",
		Location:   "us-east-1",

		MaxFileSize:    10 * 1024 * 1024, // 10MB
		AllowedTypes:   []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"},
		PresignExpires: 15 * time.Minute,

		BaseURL: "http://localhost:9000",
	}
}
