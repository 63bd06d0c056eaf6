package router

import (
	"net/http"
	"time"

	"github.com/Xushengqwer/go-common/core"
	commonMiddleware "github.com/Xushengqwer/go-common/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	otelgin "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	appConfig "github.com/Xushengqwer/comment_service/config"
	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/controller"
	"github.com/Xushengqwer/comment_service/middleware"
)

// Controllers 需要注册到路由上的全部控制器
type Controllers struct {
	Comment      *controller.CommentController
	CommentAdmin *controller.CommentAdminController
	SettingAdmin *controller.SettingAdminController
	UploadAdmin  *controller.UploadAdminController
}

// corsMiddleware 未配置来源时允许任意来源（不携带凭证）
func corsMiddleware(cfg appConfig.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}
	return cors.New(corsCfg)
}

// SetupRouter 仅负责配置 Gin 引擎、中间件和路由注册。
func SetupRouter(logger *core.ZapLogger, cfg *appConfig.CommentConfig, ctrls Controllers) *gin.Engine {
	router := gin.New()

	// 1. OTel 最先，后续中间件都能拿到追踪上下文
	router.Use(otelgin.Middleware(constant.ServiceName))
	// 2. panic 恢复
	router.Use(commonMiddleware.ErrorHandlingMiddleware(logger))
	// 3. 访问日志
	if baseLogger := logger.Logger(); baseLogger != nil {
		router.Use(commonMiddleware.RequestLoggerMiddleware(baseLogger))
	}
	// 4. 跨域
	router.Use(corsMiddleware(cfg.CORSConfig))

	// 5. 超时控制。websocket 长连接不能套用请求超时，所以只挂在普通 API 分组上
	requestTimeout := time.Duration(cfg.ServerConfig.RequestTimeout) * time.Second
	timeout := commonMiddleware.RequestTimeoutMiddleware(logger, requestTimeout)

	v1 := router.Group("/api/v1/comment")

	public := v1.Group("")
	ctrls.Comment.RegisterRoutes(public, timeout)

	admin := v1.Group("/admin", timeout, middleware.AdminAuthMiddleware(cfg.AuthConfig, logger))
	ctrls.CommentAdmin.RegisterRoutes(admin)
	ctrls.SettingAdmin.RegisterRoutes(admin)
	ctrls.UploadAdmin.RegisterRoutes(admin)
	logger.Info("所有控制器路由已注册到 /api/v1/comment 分组")

	// 访问 /swagger/index.html
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}
