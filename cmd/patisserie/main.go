package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"patisserie/config"
	"patisserie/internal/delivery"
	"patisserie/internal/delivery/http"
	"patisserie/internal/delivery/http/middleware"
	"patisserie/internal/delivery/http/router/handler"
	"patisserie/internal/domain/repository"
	"patisserie/internal/domain/service"
	"patisserie/internal/infra/auth"
	"patisserie/internal/infra/gateway"
	logs "patisserie/internal/infra/log"
	"patisserie/internal/infra/mailer"
	"patisserie/internal/infra/persistence/postgres"
	"patisserie/internal/infra/storage"
	"patisserie/internal/usecase"
	"patisserie/internal/usecase/impl"

	"go.uber.org/fx"
)

// tokenCleanupInterval drives the periodic purge of expired reset tokens.
const tokenCleanupInterval = time.Hour

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
			startTokenCleanup,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewRoleRepository,
			postgres.NewPaymentRepository,
			postgres.NewProductRepository,
			postgres.NewPasswordResetTokenRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			gateway.NewHTTPGateway,
			mailer.NewGomailMailer,
			storage.NewBlobImageStore,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewProductService,
			impl.NewMailService,
			newPaymentService,
			newPasswordResetService,
		),
	)
}

// newPaymentService threads the operations mailbox address from config.
func newPaymentService(
	paymentRepo repository.PaymentRepository,
	paymentGateway service.PaymentGateway,
	mailSvc service.Mailer,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.PaymentUsecase {
	return impl.NewPaymentService(paymentRepo, paymentGateway, mailSvc, cfg.Mail.OrderNotification, logger)
}

// newPasswordResetService threads the reset-link base URL from config.
func newPasswordResetService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	hasher service.PasswordHasher,
	mailSvc service.Mailer,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.PasswordResetUsecase {
	return impl.NewPasswordResetService(txManager, userRepo, tokenRepo, hasher, mailSvc, cfg.Mail.FrontendURL, logger)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAccountHandler,
			handler.NewPaymentHandler,
			handler.NewProductHandler,
			handler.NewPasswordResetHandler,
			handler.NewEmailHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}

type tokenCleanupParams struct {
	fx.In
	fx.Lifecycle

	ResetUsecase usecase.PasswordResetUsecase
	Logger       *slog.Logger
}

// startTokenCleanup purges expired password reset tokens on a fixed
// interval for the lifetime of the process.
func startTokenCleanup(params tokenCleanupParams) {
	cleanupCtx, cancel := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				ticker := time.NewTicker(tokenCleanupInterval)
				defer ticker.Stop()

				for {
					select {
					case <-cleanupCtx.Done():
						return
					case <-ticker.C:
						if _, err := params.ResetUsecase.CleanExpiredTokens(cleanupCtx); err != nil {
							params.Logger.Error("Reset token cleanup failed", slog.Any("error", err))
						}
					}
				}
			}()

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()

			return nil
		},
	})
}
