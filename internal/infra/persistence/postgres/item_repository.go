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
)

// itemRepository implements the repository.ItemRepository interface.
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository is the constructor for itemRepository.
func NewItemRepository(db *gorm.DB) repository.ItemRepository {
	return &itemRepository{
		db: db,
	}
}

// FindByID retrieves a single item by its unique ID.
func (repo *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var itemM model.ItemModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item by ID")
	}

	return toItemDomain(&itemM), nil
}

// List retrieves all catalog items ordered by creation time.
func (repo *itemRepository) List(ctx context.Context) ([]*entity.Item, error) {
	var itemModels []*model.ItemModel

	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}

	items := make([]*entity.Item, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toItemDomain(itemM))
	}

	return items, nil
}

// Create persists a new item to the storage.
func (repo *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	itemM := fromItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required item information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create item")
	}

	// Update the entity with generated values
	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// Update modifies an existing item in the storage.
func (repo *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"name":        item.Name,
			"description": item.Description,
			"price":       item.Price,
			"quantity":    item.Quantity,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrItemNotFound
	}

	return nil
}

// Delete removes an item from the storage.
func (repo *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ItemModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrItemNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toItemDomain converts a GORM ItemModel to a domain Item entity.
func toItemDomain(data *model.ItemModel) *entity.Item {
	if data == nil {
		return nil
	}

	return &entity.Item{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Quantity:    data.Quantity,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromItemDomain converts a domain Item entity to a GORM ItemModel.
func fromItemDomain(data *entity.Item) *model.ItemModel {
	if data == nil {
		return nil
	}

	return &model.ItemModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Quantity:    data.Quantity,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
