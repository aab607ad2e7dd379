package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bpmutter/tappdin-backend/internal/config"
	"github.com/bpmutter/tappdin-backend/internal/model"
	mysqlClient "github.com/bpmutter/tappdin-backend/internal/platform/mysql"
	rabbitmqClient "github.com/bpmutter/tappdin-backend/internal/platform/rabbitmq"
	redisClient "github.com/bpmutter/tappdin-backend/internal/platform/redis"
	"github.com/bpmutter/tappdin-backend/internal/repository"
	"github.com/bpmutter/tappdin-backend/internal/worker"
)

type App struct {
	Config        *config.Config
	MySQL         *gorm.DB
	Redis         *redis.Client
	MQConn        *amqp.Connection
	CheckinWorker *worker.CheckinPersistWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(
		&model.User{},
		&model.Brewery{},
		&model.BeerType{},
		&model.Beer{},
		&model.Checkin{},
		&model.List{},
		&model.LikedBrewery{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	checkinRepo := repository.NewCheckinRepository(mysqlDB)
	checkinWorker := worker.NewCheckinPersistWorker(mqConn, checkinRepo, cfg.RabbitMQ.CheckinPersistQueue)
	if err := checkinWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start checkin worker failed: %w", err)
	}

	return &App{
		Config:        cfg,
		MySQL:         mysqlDB,
		Redis:         redisCli,
		MQConn:        mqConn,
		CheckinWorker: checkinWorker,
		StartedAt:     time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.CheckinWorker != nil {
		a.CheckinWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
