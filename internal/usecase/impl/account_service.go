// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// loginRedirectURL is the post-login landing page returned to clients.
const loginRedirectURL = "/dashboard"

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	tokenSvc    service.TokenService
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		tokenSvc:    params.TokenService,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup orchestrates the complete account registration process.
func (srv *accountService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("email", input.Email))

	var registered *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.NewAccountRepository()

		// Reject duplicate emails up front for a clean error. A concurrent
		// signup that slips past this check hits the unique constraint on
		// accounts.email and surfaces as a creation failure, not EMAIL_TAKEN.
		_, err := accountRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrEmailTaken
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to find account by email")
		}

		hashedPassword, hashErr := srv.hasher.Hash(input.Password)
		if hashErr != nil {
			srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", hashErr))

			return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during signup")
		}

		newAccount := &entity.Account{
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hashedPassword,
		}

		if err := accountRepo.Create(ctx, newAccount); err != nil {
			return errors.Wrap(err, "failed to create account during signup")
		}

		registered = newAccount

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute signup transaction")
	}

	srv.publishActivity(ctx, &service.ActivityEvent{
		EventType: service.EventAccountRegistered,
		AccountID: registered.ID.String(),
	})

	srv.log(ctx).Debug("Signup completed", slog.Any("accountID", registered.ID))

	return &usecase.SignupOutput{Account: registered}, nil
}

// Login verifies the credentials and issues a session token.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		if errors.Is(err, repository.ErrAccountNotFound) {
			// Unknown email and wrong password collapse into the same error
			// so the response never reveals whether the email is registered.
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	// Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenSvc.Issue(account.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, domainerrors.ErrTokenSignFailed.WrapMessage("failed to issue session token")
	}

	srv.log(ctx).Debug("Account logged in successfully", slog.Any("accountID", account.ID))

	return &usecase.LoginOutput{
		Token:       token,
		Account:     account,
		RedirectURL: loginRedirectURL,
	}, nil
}

// GetProfile retrieves the account behind the authenticated session.
func (srv *accountService) GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by ID")
	}

	return account, nil
}

// publishActivity forwards an activity event best-effort. Publishing failures
// are logged and never fail the originating request.
func (srv *accountService) publishActivity(ctx context.Context, event *service.ActivityEvent) {
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	event.OccurredAt = time.Now().UTC()

	if err := srv.publisher.PublishActivityEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish activity event",
			slog.String("event_type", event.EventType),
			slog.Any("error", err),
		)
	}
}
