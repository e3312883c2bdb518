package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"bounties-api/internal/authz"
	"bounties-api/internal/domain"
	"bounties-api/internal/metrics"
	"bounties-api/internal/repository"
	"bounties-api/internal/service/listcache"
)

type Service interface {
	ListUnviewed(ctx context.Context, address string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Transaction], error)
	Create(ctx context.Context, address string, caller authz.Caller, input domain.CreateTransactionInput) (*domain.Transaction, error)
	MarkViewed(ctx context.Context, id int64, caller authz.Caller) error
	MarkAllViewed(ctx context.Context, address string, caller authz.Caller) (int64, error)
}

type service struct {
	txRepo   repository.TransactionRepository
	userRepo repository.UserRepository
	cache    *listcache.Cache
	validate *validator.Validate
	metrics  metrics.Recorder
}

func NewService(txRepo repository.TransactionRepository, userRepo repository.UserRepository, cache *listcache.Cache, validate *validator.Validate, recorder metrics.Recorder) Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if validate == nil {
		validate = validator.New()
	}
	return &service{
		txRepo:   txRepo,
		userRepo: userRepo,
		cache:    cache,
		validate: validate,
		metrics:  recorder,
	}
}

func cachePrefix(address string) string {
	return fmt.Sprintf("transactions:%s:", address)
}

func (s *service) ListUnviewed(ctx context.Context, address string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Transaction], error) {
	address, err := domain.NormalizeIdentity(address)
	if err != nil {
		return domain.PaginatedResponse[domain.Transaction]{}, err
	}
	params.Validate()

	cacheKey := s.cache.Key(ctx, cachePrefix(address), params.Key())
	var result domain.PaginatedResponse[domain.Transaction]
	if s.cache.Get(ctx, cacheKey, &result) {
		return result, nil
	}

	transactions, total, err := s.txRepo.List(ctx, domain.TransactionFilter{OwnerAddress: address, Viewed: false}, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Transaction]{}, err
	}

	result = domain.NewPaginatedResponse(transactions, params.Page, params.PageSize, total)
	s.cache.Set(ctx, cacheKey, result)

	return result, nil
}

func (s *service) Create(ctx context.Context, address string, caller authz.Caller, input domain.CreateTransactionInput) (*domain.Transaction, error) {
	address, err := domain.NormalizeIdentity(address)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(authz.CreateTransaction, caller, address, false); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByPublicAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		UserID:       user.ID,
		TxHash:       input.TxHash,
		Data:         input.Data,
		OwnerAddress: address,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	// the row is stored; a stale page only lacks it until the TTL
	if err := s.invalidate(ctx, address); err != nil {
		slog.WarnContext(ctx, "transaction created without cache invalidation", slog.String("error", err.Error()))
	}
	return tx, nil
}

func (s *service) MarkViewed(ctx context.Context, id int64, caller authz.Caller) error {
	if err := authz.Authorize(authz.MarkTransactionViewed, caller, "", true); err != nil {
		return err
	}

	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.Check(authz.ObjectOwner, caller, tx.OwnerAddress); err != nil {
		return err
	}

	if err := s.txRepo.MarkViewed(ctx, id); err != nil {
		return fmt.Errorf("failed to mark transaction %d viewed: %w", id, err)
	}

	if err := s.invalidate(ctx, tx.OwnerAddress); err != nil {
		return err
	}
	s.metrics.MarkedViewed("transaction", "single", 1)
	return nil
}

func (s *service) MarkAllViewed(ctx context.Context, address string, caller authz.Caller) (int64, error) {
	address, err := domain.NormalizeIdentity(address)
	if err != nil {
		return 0, err
	}

	if err := authz.Authorize(authz.MarkAllTransactionsViewed, caller, address, false); err != nil {
		return 0, err
	}

	rows, err := s.txRepo.MarkAllViewed(ctx, address)
	if err != nil {
		return 0, fmt.Errorf("failed to mark transactions viewed: %w", err)
	}

	if err := s.invalidate(ctx, address); err != nil {
		return 0, err
	}
	s.metrics.MarkedViewed("transaction", "all", rows)
	return rows, nil
}

func (s *service) invalidate(ctx context.Context, address string) error {
	if err := s.cache.Invalidate(ctx, cachePrefix(address)); err != nil {
		return fmt.Errorf("failed to invalidate transaction cache for %s: %w", address, err)
	}
	return nil
}
