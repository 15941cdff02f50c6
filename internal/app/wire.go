//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"time"

	notifyGateway "dispatch/internal/gateway/kafka/notify"
	courier_get "dispatch/internal/handlers/rest/courier_get"
	courier_location_put "dispatch/internal/handlers/rest/courier_location_put"
	courier_online_put "dispatch/internal/handlers/rest/courier_online_put"
	courier_post "dispatch/internal/handlers/rest/courier_post"
	dispatch_get "dispatch/internal/handlers/rest/dispatch_get"
	dispatch_post "dispatch/internal/handlers/rest/dispatch_post"
	offer_respond_post "dispatch/internal/handlers/rest/offer_respond_post"
	"dispatch/internal/handlers/tasks/offer_sweeper"
	"dispatch/internal/pkg/config"

	courierRepo "dispatch/internal/repository/courier"
	dispatchRepo "dispatch/internal/repository/dispatchrequest"
	offerRepo "dispatch/internal/repository/offer"
	dispatchService "dispatch/internal/service/dispatch"
	presenceService "dispatch/internal/service/presence"

	"dispatch/pkg/background"
	"dispatch/pkg/logger"
	"dispatch/pkg/querier"
	"dispatch/pkg/tx"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	SweepInterval time.Duration
)

type Application struct {
	ServicePresence   ServicePresence
	ServiceDispatch   ServiceDispatch
	BackgroundWorkers *background.Worker
}

type ServicePresence interface {
	courier_get.Service
	courier_post.Service
	courier_online_put.Service
	courier_location_put.Service
}

type ServiceDispatch interface {
	dispatch_post.Service
	dispatch_get.Service
	offer_respond_post.Service
}

// InitializeApplication wires the HTTP service (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideSweepInterval,
		provideDispatchConfig,

		provideCourierRepository,
		provideOfferRepository,
		provideDispatchRepository,

		provideServicePresence,
		provideNotifyGateway,
		provideServiceDispatch,

		provideOfferSweeperTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServicePresence), new(*presenceService.Presence)),
		wire.Bind(new(ServiceDispatch), new(*dispatchService.Dispatch)),

		wire.Bind(new(presenceService.Repository), new(*courierRepo.Repository)),
		wire.Bind(new(dispatchService.RequestRepository), new(*dispatchRepo.Repository)),
		wire.Bind(new(dispatchService.OfferRepository), new(*offerRepo.Repository)),
		wire.Bind(new(dispatchService.PresenceService), new(*presenceService.Presence)),
		wire.Bind(new(dispatchService.Notifier), new(*notifyGateway.NotifyGateway)),

		wire.Bind(new(dispatchService.TxManager), new(*tx.Manager)),

		wire.Bind(new(offer_sweeper.Service), new(*dispatchService.Dispatch)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	DispatchService *dispatchService.Dispatch
}

// InitializeKafkaWorkerApp wires the Kafka worker (cmd/worker-order-events)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideDispatchConfig,

		provideCourierRepository,
		provideOfferRepository,
		provideDispatchRepository,

		provideServicePresence,
		provideNotifyGateway,
		provideServiceDispatch,

		wire.Bind(new(presenceService.Repository), new(*courierRepo.Repository)),
		wire.Bind(new(dispatchService.RequestRepository), new(*dispatchRepo.Repository)),
		wire.Bind(new(dispatchService.OfferRepository), new(*offerRepo.Repository)),
		wire.Bind(new(dispatchService.PresenceService), new(*presenceService.Presence)),
		wire.Bind(new(dispatchService.Notifier), new(*notifyGateway.NotifyGateway)),

		wire.Bind(new(dispatchService.TxManager), new(*tx.Manager)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideCourierRepository(querier *querier.Querier) *courierRepo.Repository {
	return courierRepo.New(querier)
}

func provideOfferRepository(querier *querier.Querier) *offerRepo.Repository {
	return offerRepo.New(querier)
}

func provideDispatchRepository(querier *querier.Querier) *dispatchRepo.Repository {
	return dispatchRepo.New(querier)
}

func provideServicePresence(repository presenceService.Repository) *presenceService.Presence {
	return presenceService.New(repository)
}

func provideNotifyGateway(producer sarama.SyncProducer) *notifyGateway.NotifyGateway {
	return notifyGateway.New(producer)
}

func provideDispatchConfig(cfg *config.Config) dispatchService.Config {
	return dispatchService.Config{
		OfferTTL:              cfg.Dispatch.OfferTTL,
		MaxRounds:             cfg.Dispatch.MaxRounds,
		RequireExplicitAccept: cfg.Dispatch.RequireExplicitAccept,
	}
}

func provideServiceDispatch(
	requests dispatchService.RequestRepository,
	offers dispatchService.OfferRepository,
	presence dispatchService.PresenceService,
	notifier dispatchService.Notifier,
	txManager dispatchService.TxManager,
	log logger.Logger,
	serviceCfg dispatchService.Config,
) *dispatchService.Dispatch {
	return dispatchService.New(
		requests,
		offers,
		presence,
		notifier,
		txManager,
		log,
		serviceCfg,
	)
}

func provideSweepInterval(cfg *config.Config) SweepInterval {
	return SweepInterval(cfg.Tasks.OfferSweepInterval)
}

func provideOfferSweeperTask(
	log logger.Logger,
	dispatchSvc offer_sweeper.Service,
	interval SweepInterval,
) *offer_sweeper.OfferSweeper {
	return offer_sweeper.NewOfferSweeper(log, dispatchSvc, time.Duration(interval))
}

func provideTaskList(
	offerSweeperTask *offer_sweeper.OfferSweeper,
) []background.Task {
	return []background.Task{
		offerSweeperTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
