package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/dependencies"
	"github.com/Xushengqwer/comment_service/models/vo"
	"github.com/Xushengqwer/comment_service/myErrors"
)

// ErrStorageUnavailable 未配置对象存储时上传不可用
var ErrStorageUnavailable = errors.New("对象存储未配置")

// 允许的图片类型及其扩展名
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadService 管理员回复中使用的配图上传
type UploadService interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader) (*vo.UploadImageVO, error)
	DeleteImage(ctx context.Context, objectKey string) error
}

type uploadService struct {
	storage dependencies.ObjectStorage
	logger  *core.ZapLogger
	now     func() time.Time
}

// NewUploadService storage 为 nil 时所有操作返回 ErrStorageUnavailable
func NewUploadService(storage dependencies.ObjectStorage, logger *core.ZapLogger) UploadService {
	return &uploadService{storage: storage, logger: logger, now: time.Now}
}

// imageObjectKey 生成 comment-images/yyyy/mm/uuid.ext
func (s *uploadService) imageObjectKey(ext string) string {
	return path.Join(constant.COSObjectKeyPrefixCommentImages, s.now().Format("2006/01"), uuid.NewString()+ext)
}

func (s *uploadService) UploadImage(ctx context.Context, file *multipart.FileHeader) (*vo.UploadImageVO, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	if file == nil {
		return nil, myErrors.NewValidationError("file", "缺少上传文件")
	}
	if file.Size <= 0 {
		return nil, myErrors.NewValidationError("file", "文件为空")
	}
	if file.Size > constant.MaxUploadImageSize {
		return nil, myErrors.NewValidationError("file", fmt.Sprintf("文件大小不能超过 %d MiB", constant.MaxUploadImageSize>>20))
	}

	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("打开上传文件 %s 失败: %w", file.Filename, err)
	}
	defer f.Close()

	// 以文件内容嗅探类型，不信任客户端声明的 Content-Type
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("读取上传文件失败: %w", err)
	}
	contentType := http.DetectContentType(head[:n])
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, myErrors.NewValidationError("file", "只支持 jpeg / png / gif / webp 图片")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("重置上传文件读取位置失败: %w", err)
	}

	objectKey := s.imageObjectKey(ext)
	url, err := s.storage.PutObject(ctx, objectKey, f, file.Size, contentType)
	if err != nil {
		return nil, fmt.Errorf("上传评论配图失败: %w", err)
	}
	s.logger.Info("管理员上传评论配图", zap.String("filename", file.Filename), zap.String("objectKey", objectKey))
	return &vo.UploadImageVO{URL: url, ObjectKey: objectKey}, nil
}

func (s *uploadService) DeleteImage(ctx context.Context, objectKey string) error {
	if s.storage == nil {
		return ErrStorageUnavailable
	}
	objectKey = strings.TrimPrefix(objectKey, "/")
	if !strings.HasPrefix(objectKey, constant.COSObjectKeyPrefixCommentImages+"/") || strings.Contains(objectKey, "..") {
		return myErrors.NewValidationError("object_key", "只能删除评论配图")
	}
	if err := s.storage.RemoveObject(ctx, objectKey); err != nil {
		return fmt.Errorf("删除评论配图失败: %w", err)
	}
	return nil
}
