package dependencies

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Xushengqwer/go-common/core"
	"github.com/tencentyun/cos-go-sdk-v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/config"
)

// ObjectStorage 评论配图的对象存储。
// - PutObject 返回对象的公开访问地址，objectKey 由调用方生成。
type ObjectStorage interface {
	PutObject(ctx context.Context, objectKey string, body io.Reader, size int64, contentType string) (string, error)
	RemoveObject(ctx context.Context, objectKey string) error
}

type cosStorage struct {
	client     *cos.Client
	publicBase *url.URL
	logger     *core.ZapLogger
}

// InitCOS 初始化腾讯云 COS 客户端。出站请求经过 otelhttp 包装。
func InitCOS(cfg *config.COSConfig, logger *core.ZapLogger) (ObjectStorage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("COS 配置不能为nil")
	}
	missing := make([]string, 0)
	for name, v := range map[string]string{
		"secret_id":   cfg.SecretID,
		"secret_key":  cfg.SecretKey,
		"bucket_name": cfg.BucketName,
		"app_id":      cfg.AppID,
		"region":      cfg.Region,
	} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		logger.Error("COS 配置不完整", zap.Strings("missing", missing))
		return nil, fmt.Errorf("COS 配置不完整，缺少: %s", strings.Join(missing, ", "))
	}

	bucketURL, err := url.Parse(fmt.Sprintf("https://%s-%s.cos.%s.myqcloud.com", cfg.BucketName, cfg.AppID, cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("解析 COS 存储桶地址失败: %w", err)
	}

	// 配置了 CDN / 自定义域名时用它拼接公开地址，否则直接使用存储桶域名
	publicBase := bucketURL
	if cfg.BaseURL != "" {
		publicBase, err = url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("解析 COS BaseURL '%s' 失败: %w", cfg.BaseURL, err)
		}
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: bucketURL}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	})

	logger.Info("评论配图存储(COS)已就绪",
		zap.String("bucket", cfg.BucketName),
		zap.String("region", cfg.Region),
		zap.String("publicBase", publicBase.String()))
	return &cosStorage{client: client, publicBase: publicBase, logger: logger}, nil
}

// ObjectURL 把对象键拼到公开访问地址上
func ObjectURL(base *url.URL, objectKey string) string {
	u := *base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(objectKey, "/")
	return u.String()
}

func (s *cosStorage) PutObject(ctx context.Context, objectKey string, body io.Reader, size int64, contentType string) (string, error) {
	resp, err := s.client.Object.Put(ctx, objectKey, body, &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType:   contentType,
			ContentLength: size,
		},
	})
	if err != nil {
		s.logger.Error("上传评论配图失败", zap.String("objectKey", objectKey), zap.Error(err))
		return "", fmt.Errorf("上传对象 '%s' 失败: %w", objectKey, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", unexpectedStatus("上传", objectKey, resp.Response)
	}

	publicURL := ObjectURL(s.publicBase, objectKey)
	s.logger.Info("评论配图已上传", zap.String("objectKey", objectKey), zap.Int64("size", size), zap.String("url", publicURL))
	return publicURL, nil
}

func (s *cosStorage) RemoveObject(ctx context.Context, objectKey string) error {
	resp, err := s.client.Object.Delete(ctx, objectKey)
	if err != nil {
		s.logger.Error("删除评论配图失败", zap.String("objectKey", objectKey), zap.Error(err))
		return fmt.Errorf("删除对象 '%s' 失败: %w", objectKey, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return unexpectedStatus("删除", objectKey, resp.Response)
	}
	s.logger.Info("评论配图已删除", zap.String("objectKey", objectKey))
	return nil
}

func unexpectedStatus(action, objectKey string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return fmt.Errorf("COS %s对象 '%s' 返回状态码 %d: %s", action, objectKey, resp.StatusCode, string(body))
}
