package dto

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Xushengqwer/comment_service/myErrors"
)

// emailPattern 只做基本形状校验：本地部分@域名，且域名中包含点。
// 注册为 binding 标签 comment_email。
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@.]+(\.[^\s@.]+)+$`)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// 错误中的字段名使用 json 名称，与请求体保持一致
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("comment_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("注册 comment_email 校验失败: %v", err))
	}
}

// validateStruct 用 gin 的 binding 引擎校验，并把第一个失败字段转换为 *myErrors.ValidationError
func validateStruct(obj any) error {
	err := binding.Validator.ValidateStruct(obj)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return myErrors.NewValidationError("", err.Error())
	}
	fe := fieldErrs[0]
	return myErrors.NewValidationError(fe.Field(), fieldMessage(fe))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "不能为空"
	case "max":
		if fe.Field() == "content" {
			return fmt.Sprintf("内容不能超过 %s 个字符", fe.Param())
		}
		return "长度超出限制"
	case "comment_email":
		return "邮箱格式不正确"
	case "http_url":
		return "必须是 http 或 https 地址"
	case "gt":
		return "无效的 ID"
	case "oneof":
		return "取值只能是 " + strings.ReplaceAll(fe.Param(), " ", " / ")
	default:
		return "校验未通过 (" + fe.Tag() + ")"
	}
}
