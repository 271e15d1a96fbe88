package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
	"github.com/jhoicas/farmasync-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, price, stock, supplier_id, image_url, created_at, updated_at`

// Tablas de productos. El agente y el microservicio de inventario pueden compartir base de datos
// sin compartir registros: cada uno es dueño de su tabla.
const (
	TableProducts          = "products"
	TableInventoryProducts = "inventory_products"
)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q     Querier
	table string
}

// NewProductRepository construye el adaptador sobre table. Pasar pool o tx (Querier).
func NewProductRepository(q Querier, table string) *ProductRepo {
	return &ProductRepo{q: q, table: table}
}

// sql sustituye {t} por el nombre de la tabla. table nunca proviene de entrada de usuario.
func (r *ProductRepo) sql(query string) string {
	return strings.ReplaceAll(query, "{t}", r.table)
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, r.sql(`
		INSERT INTO {t} (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`),
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.SupplierID, p.ImageURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, r.sql(`SELECT `+productColumns+` FROM {t} WHERE id = $1`), id))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByName coincidencia exacta sin distinguir mayúsculas. Si hubiera varios, el más antiguo.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, r.sql(`
		SELECT `+productColumns+` FROM {t}
		WHERE lower(name) = lower($1)
		ORDER BY created_at
		LIMIT 1
		FOR UPDATE`), name))
	if err != nil {
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return p, nil
}

// SearchByName coincidencia parcial sin distinguir mayúsculas.
func (r *ProductRepo) SearchByName(ctx context.Context, fragment string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, r.sql(`
		SELECT `+productColumns+` FROM {t}
		WHERE name ILIKE $1
		ORDER BY name`), containsPattern(fragment))
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return collectProducts(rows)
}

// List lista productos con paginación, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, r.sql(`
		SELECT `+productColumns+` FROM {t}
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collectProducts(rows)
}

// Update reemplaza los campos editables. No falla si el producto no existe.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, r.sql(`
		UPDATE {t}
		SET name = $2, description = $3, price = $4, stock = $5, supplier_id = $6, image_url = $7, updated_at = $8
		WHERE id = $1`),
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.SupplierID, p.ImageURL, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// AdjustStock suma delta en una sola sentencia; la condición impide que el stock quede negativo.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, r.sql(`
		UPDATE {t} SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING `+productColumns), id, delta))
	if err != nil {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	if p != nil {
		return p, nil
	}
	// sin fila: o no existe o el stock no alcanza
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	return nil, domain.ErrInsufficientStock
}

// Delete elimina un producto por ID. Devuelve false si no existía.
func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, r.sql(`DELETE FROM {t} WHERE id = $1`), id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// scanProduct devuelve (nil, nil) si no hay fila.
func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.SupplierID, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.SupplierID, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
