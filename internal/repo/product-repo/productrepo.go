package productrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/minimall/mallcore/internal/domain"
	"github.com/minimall/mallcore/internal/pg"
	"go.uber.org/zap"
)

// Repository covers the slice of the catalog the order flow needs: stock and
// sales counters, SKU stock, and the originating cart rows. Catalog
// management itself lives elsewhere.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Image, &p.Price, &p.Stock, &p.Sales, &p.Sellable)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan product", zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	query := `
        SELECT id, name, image, price, stock, sales, sellable
        FROM products
        WHERE id = $1
    `
	return r.scanProduct(r.db.QueryRow(ctx, query, productID))
}

func (r *Repository) GetProductForUpdate(ctx context.Context, productID int) (*domain.Product, error) {
	query := `
        SELECT id, name, image, price, stock, sales, sellable
        FROM products
        WHERE id = $1
        FOR UPDATE
    `
	return r.scanProduct(r.db.QueryRow(ctx, query, productID))
}

func (r *Repository) GetSKUForUpdate(ctx context.Context, skuID int) (*domain.ProductSKU, error) {
	query := `
        SELECT id, product_id, spec_values, price, stock
        FROM product_skus
        WHERE id = $1
        FOR UPDATE
    `
	var sku domain.ProductSKU
	err := r.db.QueryRow(ctx, query, skuID).Scan(&sku.ID, &sku.ProductID, &sku.SpecValues, &sku.Price, &sku.Stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan sku", zap.Error(err))
		return nil, err
	}
	return &sku, nil
}

// AdjustStock shifts stock by qtyDelta and sales by the opposite amount on
// the product row, and mirrors the stock shift on the SKU row when one is
// given. Order creation passes a negative delta; cancellation reverses it
// with a positive one.
func (r *Repository) AdjustStock(ctx context.Context, productID int, skuID *int, qtyDelta int) error {
	query := `
        UPDATE products
        SET stock = stock + $2, sales = sales - $2
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, productID, qtyDelta); err != nil {
		zap.L().Error("can't adjust product stock", zap.Error(err))
		return err
	}

	if skuID != nil {
		skuQuery := `
            UPDATE product_skus
            SET stock = stock + $2
            WHERE id = $1
        `
		if _, err := r.db.Exec(ctx, skuQuery, *skuID, qtyDelta); err != nil {
			zap.L().Error("can't adjust sku stock", zap.Error(err))
			return err
		}
	}
	return nil
}

func (r *Repository) GetSelectedCartItems(ctx context.Context, userID int) ([]domain.CartItem, error) {
	query := `
        SELECT id, user_id, product_id, sku_id, quantity, selected
        FROM cart_items
        WHERE user_id = $1 AND selected = TRUE
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get cart items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.SKUID, &item.Quantity, &item.Selected); err != nil {
			zap.L().Error("can't scan cart item", zap.Error(err))
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) DeleteCartItems(ctx context.Context, userID int, ids []int) error {
	query := `
        DELETE FROM cart_items
        WHERE user_id = $1 AND id = ANY($2)
    `
	if _, err := r.db.Exec(ctx, query, userID, ids); err != nil {
		zap.L().Error("can't delete cart items", zap.Error(err))
		return err
	}
	return nil
}
