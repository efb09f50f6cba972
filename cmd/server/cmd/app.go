package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/auth"
	"github.com/Frenky19/QRkot-spreadsheets/internal/cache"
	"github.com/Frenky19/QRkot-spreadsheets/internal/config"
	"github.com/Frenky19/QRkot-spreadsheets/internal/database"
	"github.com/Frenky19/QRkot-spreadsheets/internal/event"
	"github.com/Frenky19/QRkot-spreadsheets/internal/lock"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logic"
	"github.com/Frenky19/QRkot-spreadsheets/internal/report"
	"github.com/Frenky19/QRkot-spreadsheets/internal/repository"
	"github.com/Frenky19/QRkot-spreadsheets/internal/router"
	"github.com/Frenky19/QRkot-spreadsheets/internal/sheets"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// app 进程内共享的依赖
type app struct {
	db         *gorm.DB
	rdb        *redis.Client
	dispatcher *event.Dispatcher

	projects  *logic.ProjectLogic
	donations *logic.DonationLogic
	users     *logic.UserLogic
	reports   *logic.ReportLogic
	audit     *logic.AuditLogic
}

// newApp 按配置组装存储、锁、缓存、事件与业务逻辑
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	// 初始化数据库
	db, err := repository.Init(cfg.Database)
	if err != nil {
		return nil, err
	}
	a := &app{db: db}
	store := repository.NewGormStore(db)

	var (
		locker lock.Locker = lock.NewLocalLock()
		c      cache.Cache = cache.NewMemoryCache(cfg.Report.TTL(), time.Minute)
	)
	if cfg.Redis.Enabled {
		rdb, err := database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			a.close()
			return nil, err
		}
		a.rdb = rdb
		locker = lock.NewRedisLock(rdb)
		c = cache.NewRedisCache(rdb)
	}

	var publisher event.Publisher = event.LogPublisher{}
	if cfg.Kafka.Enabled {
		publisher = event.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Info("Publishing events to kafka topic %s", cfg.Kafka.Topic)
	}
	a.dispatcher, err = event.NewDispatcher(publisher, cfg.Pool.Size)
	if err != nil {
		a.close()
		return nil, err
	}

	var exporter report.Exporter
	if cfg.Google.Enabled {
		client, err := sheets.New(ctx, cfg.Google)
		if err != nil {
			// 导出不可用不影响捐款主流程
			logger.Error("Google Sheets export disabled: %v", err)
		} else {
			exporter = client
		}
	}

	funder := logic.NewFunder(store, locker, a.dispatcher, c, time.Now)
	a.projects = logic.NewProjectLogic(store, funder)
	a.donations = logic.NewDonationLogic(store, funder)
	a.users = logic.NewUserLogic(store, auth.NewTokenIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL()))
	a.reports = logic.NewReportLogic(store, locker, c, exporter, a.dispatcher, cfg.Report.TTL())
	a.audit = logic.NewAuditLogic(store)

	return a, nil
}

func (a *app) routerDeps() router.Deps {
	return router.Deps{
		Projects:  a.projects,
		Donations: a.donations,
		Users:     a.users,
		Reports:   a.reports,
	}
}

// close 按创建的逆序释放资源
func (a *app) close() {
	if a.dispatcher != nil {
		if err := a.dispatcher.Close(); err != nil {
			logger.Error("Failed to close event dispatcher: %v", err)
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			logger.Error("Failed to close redis: %v", err)
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func requireApp(ctx context.Context) (*app, error) {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return a, nil
}
