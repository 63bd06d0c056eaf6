package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/constants"
	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/config"
)

// RoleAdmin 管理员角色
const RoleAdmin = "admin"

// AdminClaims 管理员令牌的声明，由外部认证服务以 HS256 签发
type AdminClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IssueAdminToken 签发管理员令牌，供种子数据与测试使用
func IssueAdminToken(cfg config.AuthConfig, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &AdminClaims{
		UserID: userID,
		Role:   RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    cfg.Issuer,
			Subject:   userID,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
}

// ParseAdminToken 校验签名、有效期以及（配置了的话）签发方
func ParseAdminToken(cfg config.AuthConfig, tokenString string) (*AdminClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// AdminAuthMiddleware 校验 Authorization: Bearer <token>，要求 role=admin。
// - 缺少或无效的令牌返回 401，角色不符返回 403。
// - 通过后把管理员 ID 写入 constants.UserIDKey。
func AdminAuthMiddleware(cfg config.AuthConfig, logger *core.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "缺少 Authorization 请求头")
			c.Abort()
			return
		}
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "Authorization 格式应为 Bearer <token>")
			c.Abort()
			return
		}

		claims, err := ParseAdminToken(cfg, tokenString)
		if err != nil {
			logger.Warn("管理员令牌校验失败", zap.Error(err), zap.String("path", c.FullPath()))
			response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "令牌无效或已过期")
			c.Abort()
			return
		}
		if claims.Role != RoleAdmin {
			logger.Warn("非管理员访问管理接口", zap.String("userID", claims.UserID), zap.String("role", claims.Role))
			response.RespondError(c, http.StatusForbidden, response.ErrCodeClientUnauthorized, "需要管理员权限")
			c.Abort()
			return
		}

		c.Set(string(constants.UserIDKey), claims.UserID)
		c.Next()
	}
}
