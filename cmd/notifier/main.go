package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/channel-notifier/internal/api/handlers/notification"
	"github.com/aliskhannn/channel-notifier/internal/api/router"
	"github.com/aliskhannn/channel-notifier/internal/api/server"
	"github.com/aliskhannn/channel-notifier/internal/channel"
	"github.com/aliskhannn/channel-notifier/internal/config"
	"github.com/aliskhannn/channel-notifier/internal/lock"
	"github.com/aliskhannn/channel-notifier/internal/metrics"
	"github.com/aliskhannn/channel-notifier/internal/model"
	notifmsg "github.com/aliskhannn/channel-notifier/internal/rabbitmq/handlers/notification"
	"github.com/aliskhannn/channel-notifier/internal/rabbitmq/queue"
	attemptrepo "github.com/aliskhannn/channel-notifier/internal/repository/attempt"
	notifrepo "github.com/aliskhannn/channel-notifier/internal/repository/notification"
	profilerepo "github.com/aliskhannn/channel-notifier/internal/repository/profile"
	"github.com/aliskhannn/channel-notifier/internal/service/dispatch"
	notifsvc "github.com/aliskhannn/channel-notifier/internal/service/notification"
	"github.com/aliskhannn/channel-notifier/internal/transport"
	emailtransport "github.com/aliskhannn/channel-notifier/internal/transport/email"
	smstransport "github.com/aliskhannn/channel-notifier/internal/transport/sms"
	telegramtransport "github.com/aliskhannn/channel-notifier/internal/transport/telegram"
	"github.com/aliskhannn/channel-notifier/internal/worker"
	"github.com/aliskhannn/channel-notifier/pkg/email"
	"github.com/aliskhannn/channel-notifier/pkg/sms"
	"github.com/aliskhannn/channel-notifier/pkg/telegram"
)

const lockPrefix = "notifier:dispatch:"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open channel")
	}

	q, err := queue.NewNotificationQueue(ch, cfg.RabbitMQ)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create notification queue")
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	notifications := notifrepo.NewRepository(db)
	profiles := profilerepo.NewRepository(db)
	attempts := attemptrepo.NewRepository(db)

	dbNum, err := strconv.Atoi(cfg.Redis.Database)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse redis database")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, dbNum)
	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	registry, err := newRegistry(cfg, val)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to configure delivery channels")
	}

	dispatchMetrics := metrics.NewDispatch(prometheus.DefaultRegisterer)
	locker := lock.NewLocker(rdb, lockPrefix, cfg.Dispatch.LockTTL)

	service := notifsvc.NewService(notifications, attempts, q, rdb)
	dispatcher := dispatch.NewDispatcher(
		notifications, service, profiles, attempts, locker, registry, dispatchMetrics, cfg.Retry,
	)

	notifHandler := notification.NewHandler(service, val, cfg)
	messageHandler := notifmsg.NewHandler(dispatcher, q, cfg.Dispatch.JobTimeout, cfg.Dispatch.MaxRedeliveries)

	notifier := worker.NewNotifier(q, messageHandler, service)

	workersDone := make(chan struct{})
	go func() {
		notifier.Run(ctx, cfg.Retry, cfg.Workers.Count)
		close(workersDone)
	}()

	r := router.New(notifHandler, promhttp.Handler())
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	select {
	case <-workersDone:
	case <-time.After(cfg.Dispatch.JobTimeout):
		zlog.Logger.Warn().Msg("workers did not stop in time")
	}

	var closeErr *multierror.Error

	if err := db.Master.Close(); err != nil {
		closeErr = multierror.Append(closeErr, fmt.Errorf("close master DB: %w", err))
	}

	for i, s := range db.Slaves {
		if err := s.Close(); err != nil {
			closeErr = multierror.Append(closeErr, fmt.Errorf("close slave DB %d: %w", i, err))
		}
	}

	if err := rdb.Close(); err != nil {
		closeErr = multierror.Append(closeErr, fmt.Errorf("close redis: %w", err))
	}

	if err := ch.Close(); err != nil {
		closeErr = multierror.Append(closeErr, fmt.Errorf("close RabbitMQ channel: %w", err))
	}

	if err := conn.Close(); err != nil {
		closeErr = multierror.Append(closeErr, fmt.Errorf("close RabbitMQ connection: %w", err))
	}

	if err := closeErr.ErrorOrNil(); err != nil {
		zlog.Logger.Error().Err(err).Msg("shutdown finished with errors")
		return
	}

	zlog.Logger.Info().Msg("shutdown complete")
}

// newRegistry builds the provider clients and maps every channel to its transport.
// A channel without provider credentials gets a disabled transport, so its
// attempts fail with "not configured" and dispatch falls back.
func newRegistry(cfg *config.Config, val *validator.Validate) (*channel.Registry, error) {
	host, portStr, err := net.SplitHostPort(cfg.Email.EndpointURL)
	if err != nil {
		return nil, fmt.Errorf("email endpoint_url: %w", err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("email endpoint_url port: %w", err)
	}

	emailClient := email.NewClient(
		host,
		port,
		cfg.Email.Username,
		cfg.Email.APIKey,
		cfg.Email.SenderID,
		cfg.Email.Timeout(),
	)

	transports := map[model.Channel]channel.Transport{
		model.ChannelEmail:    emailtransport.NewTransport(emailClient, val, cfg.Email.Timeout()),
		model.ChannelSMS:      transport.NewDisabled(model.ChannelSMS.String()),
		model.ChannelTelegram: transport.NewDisabled(model.ChannelTelegram.String()),
	}

	if cfg.SMS.APIKey == "" {
		zlog.Logger.Warn().Msg("sms api_key is empty, sms channel disabled")
	} else {
		keyID, keySecret, err := config.SplitAPIKey(cfg.SMS.APIKey)
		if err != nil {
			return nil, fmt.Errorf("sms api_key: %w", err)
		}

		smsClient, err := sms.NewClient(sms.Config{
			Endpoint:        cfg.SMS.EndpointURL,
			RegionID:        cfg.SMS.RegionID,
			AccessKeyID:     keyID,
			AccessKeySecret: keySecret,
			SignName:        cfg.SMS.SenderID,
			TemplateCode:    cfg.SMS.TemplateCode,
			Timeout:         cfg.SMS.Timeout(),
		})
		if err != nil {
			return nil, fmt.Errorf("sms client: %w", err)
		}

		transports[model.ChannelSMS] = smstransport.NewTransport(smsClient, val, cfg.SMS.Timeout())
	}

	if cfg.Telegram.APIKey == "" {
		zlog.Logger.Warn().Msg("telegram api_key is empty, telegram channel disabled")
	} else {
		telegramClient, err := telegram.NewClient(cfg.Telegram.APIKey, cfg.Telegram.EndpointURL, cfg.Telegram.Timeout())
		if err != nil {
			return nil, fmt.Errorf("telegram client: %w", err)
		}

		transports[model.ChannelTelegram] = telegramtransport.NewTransport(
			telegramClient, cfg.Telegram.RateLimit, cfg.Telegram.Timeout(),
		)
	}

	return channel.NewRegistry(transports)
}
