package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oleksandr5440/QC-Management/internal/config"
	"github.com/oleksandr5440/QC-Management/internal/middleware"
	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"github.com/oleksandr5440/QC-Management/internal/qc/handler"
	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
	"github.com/oleksandr5440/QC-Management/internal/qc/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting qc-management service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Panel{},
		&entity.PanelPhoto{},
		&entity.FrameCavityAttribute{},
		&entity.FrameCavityValue{},
		&entity.ProductPart{},
		&entity.CoatingColor{},
		&entity.ProductColor{},
		&entity.LookupType{},
		&entity.Lookup{},
		&entity.Warehouse{},
		&entity.PartType{},
		&entity.PartSubtype{},
		&entity.InventorySnapshot{},
		&entity.PartShipment{},
		&entity.Container{},
		&entity.Product{},
		&entity.ProductShipment{},
		&entity.QCReport{},
		&entity.ReportImage{},
		&entity.QCSession{},
		&entity.QCAttributeDef{},
		&entity.QCAttributeValue{},
	); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// 初始化Redis
	rdb := initRedis(cfg.Redis)

	// 组装各层
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg)
	handlers := handler.NewHandlers(services, repos)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// 注册路由
	registerRoutes(router, handlers, cfg)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	api := r.Group("/api")

	// 认证（无需登录）
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/token", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	// 需要登录的接口
	authed := api.Group("", middleware.JWTAuth(cfg.JWT.Secret))
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.GET("/auth/me", h.Auth.Me)
		authed.PUT("/auth/me", h.Auth.UpdateMe)

		// 面板质检
		panels := authed.Group("/qc-cw-panel-data")
		{
			panels.GET("", h.Panel.List)
			panels.POST("", h.Panel.Create)
			panels.GET("/fl/:flID", h.Panel.ListByFloor)
			panels.GET("/:id", h.Panel.Get)
			panels.PUT("/:id", h.Panel.Update)
			panels.DELETE("/:id", h.Panel.Delete)
		}

		// 框架腔体属性与取值
		authed.GET("/frame-cavities-attributes", h.FrameCavity.ListAttributes)
		authed.POST("/frame-cavities-attributes", h.FrameCavity.CreateAttribute)
		authed.PUT("/frame-cavities-attributes/:id", h.FrameCavity.UpdateAttribute)
		authed.DELETE("/frame-cavities-attributes/:id", h.FrameCavity.DeleteAttribute)
		authed.GET("/frame-cavities-values/panel/:panelID", h.FrameCavity.ListValuesByPanel)

		// 模具档案
		authed.GET("/product-parts", h.ProductPart.List)
		authed.POST("/product-parts", h.ProductPart.Create)
		authed.GET("/product-parts/:id", h.ProductPart.Get)
		authed.GET("/product-parts/:id/image", h.ProductPart.GetImage)
		authed.PUT("/product-parts/:id", h.ProductPart.Update)
		authed.DELETE("/product-parts/:id", h.ProductPart.Delete)

		// 喷涂颜色
		authed.GET("/coating-colors", h.CoatingColor.List)
		authed.POST("/coating-colors", h.CoatingColor.Create)
		authed.PUT("/coating-colors/:id", h.CoatingColor.Update)
		authed.DELETE("/coating-colors/:id", h.CoatingColor.Delete)

		// 枚举选项
		authed.GET("/lookup-types", h.Lookup.ListTypes)
		authed.GET("/lookup-types/:id", h.Lookup.GetType)

		// 库存查询
		authed.GET("/warehouses", h.Inventory.ListWarehouses)
		authed.GET("/part-types", h.Inventory.ListPartTypes)
		authed.GET("/part-subtypes", h.Inventory.ListPartSubtypes)
		authed.GET("/inventory-snapshots", h.Inventory.ListSnapshots)
		authed.GET("/part-shipments", h.Inventory.ListPartShipments)

		// 成品
		authed.GET("/products", h.Product.List)
		authed.GET("/products/:id", h.Product.Get)
		authed.POST("/products", h.Product.Create)

		// 打胶批次报告
		reports := authed.Group("/qc-reports")
		{
			reports.GET("", h.QCReport.List)
			reports.POST("", h.QCReport.Create)
			reports.GET("/:id", h.QCReport.Get)
			reports.PUT("/:id", h.QCReport.Update)
			reports.DELETE("/:id", h.QCReport.Delete)
		}

		// 成品质检会话
		sessions := authed.Group("/qc/sessions")
		{
			sessions.GET("", h.QCSession.List)
			sessions.GET("/:id", h.QCSession.Get)
			sessions.POST("", h.QCSession.Create)
		}

		// 用户管理（管理员）
		admin := authed.Group("/users", middleware.RequireRoles(entity.RoleAdmin))
		{
			admin.GET("", h.Auth.ListUsers)
			admin.PUT("/:id", h.Auth.UpdateUser)
		}
	}
}
