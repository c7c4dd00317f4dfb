package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	cartapp "github.com/sportify/backend/application/cart"
	discountapp "github.com/sportify/backend/application/discount"
	orderapp "github.com/sportify/backend/application/order"
	productapp "github.com/sportify/backend/application/product"
	settingsapp "github.com/sportify/backend/application/settings"
	stockapp "github.com/sportify/backend/application/stock"
	userapp "github.com/sportify/backend/application/user"
	"github.com/sportify/backend/cmd/config"
	redisclient "github.com/sportify/backend/cmd/redis"
	_ "github.com/sportify/backend/docs"
	cartRepo "github.com/sportify/backend/repository/cart"
	discountRepo "github.com/sportify/backend/repository/discount"
	orderRepo "github.com/sportify/backend/repository/order"
	productRepo "github.com/sportify/backend/repository/product"
	redisRepo "github.com/sportify/backend/repository/redis"
	settingsRepo "github.com/sportify/backend/repository/settings"
	stockRepo "github.com/sportify/backend/repository/stock"
	txRepo "github.com/sportify/backend/repository/tx"
	userRepo "github.com/sportify/backend/repository/user"
	"github.com/sportify/backend/thirdparty/rabbitmq"
	"github.com/sportify/backend/transport"
	"github.com/sportify/backend/utils/logger"
	"go.uber.org/zap"
)

// @title SPORTIFY API
// @version 1.0
// @description Sportify e-commerce API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Connect to RabbitMQ. The publisher carries order expiration and
	// low-stock alerts; the consumer feeds them back through the internal API.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
	}
	defer func() {
		_ = publisher.Close()
	}()

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.Internal.APIURL, cfg.Internal.APIKey)
	if err != nil {
		logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
	}
	defer func() {
		_ = consumer.Close()
	}()

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	go func() {
		if err := consumer.Start(consumerCtx); err != nil {
			logger.Error("consumer stopped", zap.Error(err))
		}
	}()

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	RedisRepo := redisRepo.NewRepository()
	ProductRepo := productRepo.NewProductRepository(db)
	StockRepo := stockRepo.NewStockRepository(db)
	CartRepo := cartRepo.NewCartRepository(db)
	DiscountRepo := discountRepo.NewDiscountRepository(db)
	SettingsRepo := settingsRepo.NewSettingsRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo)
	ProductApp := productapp.NewProductApp(ProductRepo)
	StockApp := stockapp.NewStockApp(TxRepo, StockRepo, ProductRepo, publisher)
	CartApp := cartapp.NewCartApp(CartRepo, ProductRepo, DiscountRepo, SettingsRepo)
	DiscountApp := discountapp.NewDiscountApp(DiscountRepo)
	SettingsApp := settingsapp.NewSettingsApp(SettingsRepo)
	OrderApp := orderapp.NewOrderApp(cfg, TxRepo, OrderRepo, CartRepo, StockRepo, ProductRepo, DiscountRepo, SettingsRepo, publisher)

	httpTransport := transport.NewTransport(cfg.Internal.APIKey, &transport.RestHandler{
		UserApp:     UserApp,
		ProductApp:  ProductApp,
		CartApp:     CartApp,
		OrderApp:    OrderApp,
		StockApp:    StockApp,
		DiscountApp: DiscountApp,
		SettingsApp: SettingsApp,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
