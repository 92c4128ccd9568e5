package postgres

import (
	"context"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{
		db: db,
	}
}

// Upsert inserts the cart line, or accumulates its quantity when the
// (account, item) pair already exists. The ON CONFLICT clause makes this a
// single atomic statement, so concurrent adds for the same pair never lose
// an increment.
func (repo *cartRepository) Upsert(ctx context.Context, line *entity.CartLine) error {
	lineM := fromCartLineDomain(line)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "account_id"}, {Name: "item_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart_lines.quantity + excluded.quantity"),
				"updated_at": gorm.Expr("now()"),
			}),
		}).
		Create(lineM).Error
	if err != nil {
		// Convert PostgreSQL errors to domain errors
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrItemNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidQuantity
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert cart line")
	}

	return nil
}

// ListByAccount retrieves the account's cart lines joined with their catalog
// items, oldest line first.
func (repo *cartRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.CartEntry, error) {
	var lineModels []*model.CartLineModel

	if err := repo.db.WithContext(ctx).
		Preload("Item").
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&lineModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list cart lines by account")
	}

	entries := make([]*entity.CartEntry, 0, len(lineModels))
	for _, lineM := range lineModels {
		entries = append(entries, &entity.CartEntry{
			Item:     toItemDomain(lineM.Item),
			Quantity: lineM.Quantity,
		})
	}

	return entries, nil
}

// Delete removes the cart line for the (account, item) pair.
// Removing an absent line is a no-op, not an error.
func (repo *cartRepository) Delete(ctx context.Context, accountID, itemID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("account_id = ? AND item_id = ?", accountID, itemID).
		Delete(&model.CartLineModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete cart line")
	}

	return nil
}

// --- Mapper Functions ---

// fromCartLineDomain converts a domain CartLine entity to a GORM CartLineModel.
func fromCartLineDomain(data *entity.CartLine) *model.CartLineModel {
	if data == nil {
		return nil
	}

	return &model.CartLineModel{
		AccountID: data.AccountID,
		ItemID:    data.ItemID,
		Quantity:  data.Quantity,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
