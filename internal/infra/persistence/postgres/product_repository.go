package postgres

import (
	"context"
	"strings"
	"time"

	"pawparadise/internal/domain/entity"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/domain/repository"
	"pawparadise/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var productSortClauses = map[repository.ProductSort]string{
	repository.ProductSortNameAsc:   "name ASC, id ASC",
	repository.ProductSortNameDesc:  "name DESC, id ASC",
	repository.ProductSortPriceAsc:  "price ASC, id ASC",
	repository.ProductSortPriceDesc: "price DESC, id ASC",
	repository.ProductSortRating:    "rating DESC, id ASC",
	repository.ProductSortNewest:    "created_at DESC, id ASC",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&productM).Error; err != nil {
		return nil, productLookupError(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

func (repo *productRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&productM).Error
	if err != nil {
		return nil, productLookupError(err, "failed to lock product")
	}

	return toProductDomain(&productM), nil
}

// FindByIDOrSlug checks the primary key only when the value can be one.
func (repo *productRepository) FindByIDOrSlug(ctx context.Context, idOrSlug string) (*entity.Product, error) {
	query := repo.db.WithContext(ctx)
	if id, err := uuid.Parse(idOrSlug); err == nil {
		query = query.Where("id = ? OR slug = ?", id, idOrSlug)
	} else {
		query = query.Where("slug = ?", idOrSlug)
	}

	var productM model.ProductModel
	if err := query.First(&productM).Error; err != nil {
		return nil, productLookupError(err, "failed to find product by id or slug")
	}

	return toProductDomain(&productM), nil
}

func (repo *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return []*entity.Product{}, nil
	}

	var models []*model.ProductModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products by ids")
	}

	return toProductsDomain(models), nil
}

func (repo *productRepository) SKUTaken(ctx context.Context, sku string, excludeID *uuid.UUID) (bool, error) {
	return repo.exists(ctx, "sku = ?", sku, excludeID)
}

func (repo *productRepository) SlugTaken(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	return repo.exists(ctx, "slug = ?", slug, excludeID)
}

func (repo *productRepository) exists(ctx context.Context, cond string, value string, excludeID *uuid.UUID) (bool, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{}).Where(cond, value)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check product uniqueness")
	}

	return count > 0, nil
}

// List applies filter twice, once for the total and once for the page, so both see the same predicate.
func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int64, error) {
	var total int64
	if err := repo.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	orderBy, ok := productSortClauses[filter.Sort]
	if !ok {
		orderBy = productSortClauses[repository.ProductSortNewest]
	}

	var models []*model.ProductModel
	err := repo.filtered(ctx, filter).
		Order(orderBy).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}

	return toProductsDomain(models), total, nil
}

func (repo *productRepository) filtered(ctx context.Context, filter repository.ProductFilter) *gorm.DB {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		query = query.Where("(name ILIKE ? OR brand ILIKE ? OR description ILIKE ?)", pattern, pattern, pattern)
	}
	if len(filter.Categories) > 0 {
		categories := make([]string, 0, len(filter.Categories))
		for _, c := range filter.Categories {
			categories = append(categories, string(c))
		}
		query = query.Where("category IN ?", categories)
	}
	if filter.PetType != "" {
		query = query.Where("(pet_type = ? OR pet_type = ?)", string(filter.PetType), string(entity.PetTypeAll))
	}
	if filter.Brand != "" {
		query = query.Where("brand = ?", filter.Brand)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Featured {
		query = query.Where("featured = ?", true)
	}

	return query
}

func (repo *productRepository) ListRelated(ctx context.Context, product *entity.Product, limit int) ([]*entity.Product, error) {
	var models []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("id <> ?", product.ID).
		Where("(category = ? OR pet_type = ?)", string(product.Category), string(product.PetType)).
		Order("rating DESC, id ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list related products")
	}

	return toProductsDomain(models), nil
}

func (repo *productRepository) ListFeatured(ctx context.Context, limit int) ([]*entity.Product, error) {
	var models []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("created_at DESC, id ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list featured products")
	}

	return toProductsDomain(models), nil
}

func (repo *productRepository) ListInventory(ctx context.Context) ([]*entity.InventoryItem, error) {
	var models []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Select("id", "name", "sku", "category", "brand", "price", "stock_count", "in_stock").
		Order("name ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list inventory")
	}

	items := make([]*entity.InventoryItem, 0, len(models))
	for _, m := range models {
		items = append(items, &entity.InventoryItem{
			ID:         m.ID,
			Name:       m.Name,
			SKU:        m.SKU,
			Category:   entity.Category(m.Category),
			Brand:      m.Brand,
			Price:      m.Price,
			StockCount: m.StockCount,
			InStock:    m.InStock,
		})
	}

	return items, nil
}

func (repo *productRepository) Brands(ctx context.Context) ([]string, error) {
	brands := []string{}
	err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Distinct("brand").
		Order("brand ASC").
		Pluck("brand", &brands).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list brands")
	}

	return brands, nil
}

func (repo *productRepository) Categories(ctx context.Context) ([]entity.Category, error) {
	var values []string
	err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &values).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]entity.Category, 0, len(values))
	for _, v := range values {
		categories = append(categories, entity.Category(v))
	}

	return categories, nil
}

func (repo *productRepository) PriceRange(ctx context.Context) (*entity.PriceRange, error) {
	var row struct {
		MinPrice decimal.NullDecimal
		MaxPrice decimal.NullDecimal
	}
	err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Select("MIN(price) AS min_price, MAX(price) AS max_price").
		Scan(&row).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute price range")
	}
	if !row.MinPrice.Valid || !row.MaxPrice.Valid {
		return nil, nil
	}

	return &entity.PriceRange{Min: row.MinPrice.Decimal, Max: row.MaxPrice.Decimal}, nil
}

func (repo *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.ProductModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count products")
	}

	return count, nil
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.InStock = product.StockCount > 0

	productM := fromProductDomain(product)
	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		return productWriteError(err, "failed to create product")
	}

	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update writes every admin-editable column. Derived rating fields and the
// creation time are left to their own write paths.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	product.InStock = product.StockCount > 0
	productM := fromProductDomain(product)
	productM.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{ID: product.ID}).
		Select("*").
		Omit("id", "created_at", "rating", "review_count").
		Updates(productM)
	if result.Error != nil {
		return productWriteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	product.UpdatedAt = productM.UpdatedAt

	return nil
}

func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrProductInUse
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// DecrementStock relies on PostgreSQL evaluating every SET expression against
// the pre-update row, so in_stock is derived from the same stock_count the
// WHERE clause checked.
func (repo *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND stock_count >= ?", id, quantity).
		Updates(map[string]any{
			"stock_count": gorm.Expr("stock_count - ?", quantity),
			"in_stock":    gorm.Expr("stock_count - ? > 0", quantity),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return repository.ErrInsufficientStock
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to decrement stock")
	}
	if result.RowsAffected == 0 {
		return repository.ErrInsufficientStock
	}

	return nil
}

func (repo *productRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64, reviewCount int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rating":       rating,
			"review_count": reviewCount,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product rating")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func productLookupError(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrProductNotFound
	}

	return errors.Wrap(err, message)
}

// productWriteError maps unique index violations to the field that caused them.
func productWriteError(err error, message string) error {
	if isUniqueConstraintViolation(err) {
		constraint := violatedConstraint(err)
		switch {
		case strings.Contains(constraint, "sku"):
			return domainerrors.ErrDuplicateSKU
		case strings.Contains(constraint, "slug"):
			return domainerrors.ErrDuplicateSlug
		default:
			return domainerrors.ErrConflict
		}
	}
	if isCheckConstraintViolation(err) || isNotNullConstraintViolation(err) {
		return domainerrors.ErrValidationFailed.WithDetails(message)
	}

	return domainerrors.NewDatabaseExecuteError(err, message)
}
