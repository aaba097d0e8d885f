// main.go

package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"blinkfast-backend/internal/config"
	"blinkfast-backend/internal/store"
	"blinkfast-backend/internal/suggest"
)

type Server struct {
	cfg       *config.Config
	store     *store.Store
	suggester *suggest.Client
	jwtSecret []byte
}

func NewServer(cfg *config.Config) *Server {
	return &Server{
		cfg:       cfg,
		store:     store.New(),
		suggester: suggest.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Endpoint),
		jwtSecret: []byte(cfg.JWTSecret),
	}
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	initLogger(cfg)
	defer zap.L().Sync()

	s := NewServer(cfg)
	if err := s.store.Bus().Subscribe(store.TopicOrderPlaced, func(o *store.Order) {
		zap.S().Infof("delivery partner assigned for %s (%d items, ₹%d)", o.ID, len(o.Items), o.Total)
	}); err != nil {
		zap.S().Warn("order-placed subscription failed:", err)
	}

	r := s.Router()
	zap.S().Infof("listening on %s", cfg.Listen)
	if err := r.Run(cfg.Listen); err != nil {
		zap.S().Fatal(err)
	}
}

// Router builds the gin engine with CORS and all routes.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Auth
	r.POST("/api/register", s.register)
	r.POST("/api/login", s.login)

	// Catalog
	r.GET("/api/products", s.listProducts)
	r.GET("/api/categories", s.listCategories)

	auth := r.Group("/api", s.AuthMiddleware)
	{
		auth.POST("/logout", s.logout)

		// Session
		auth.GET("/session", s.getSession)
		auth.PUT("/session/view", s.changeView)

		// Cart
		auth.GET("/cart", s.getCart)
		auth.POST("/cart", s.addToCart)
		auth.DELETE("/cart/:productId", s.removeFromCart)

		// Checkout
		auth.POST("/checkout/start", s.startCheckout)
		auth.POST("/checkout/address", s.checkoutAddress)
		auth.POST("/checkout/payment", s.checkoutPayment)
		auth.POST("/checkout/submit", s.checkoutSubmit)
		auth.POST("/checkout/exit", s.checkoutExit)

		// Orders
		auth.GET("/orders", s.getOrders)
		auth.GET("/orders/:orderId", s.getOrder)

		// Admin
		admin := auth.Group("/admin", s.RequireAdmin)
		{
			admin.GET("/orders", s.adminOrders)
			admin.GET("/stats", s.adminStats)
			admin.PUT("/orders/:orderId/status", s.adminOrderStatus)
		}
	}

	return r
}

// initLogger wires zap as the global logger, optionally teeing a
// rotated file next to the console output.
func initLogger(cfg *config.Config) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		fileLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(fileLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}
	zap.ReplaceGlobals(logger)
}
