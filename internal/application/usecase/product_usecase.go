package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmasync-api/internal/application/dto"
	"github.com/jhoicas/farmasync-api/internal/application/ports"
	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
	"github.com/jhoicas/farmasync-api/internal/domain/repository"
)

// ProductUseCase casos de uso del microservicio de inventario: CRUD y aritmética de stock.
// Todo cambio de stock deja una línea en el kárdex dentro de la misma transacción.
type ProductUseCase struct {
	repo      repository.ProductRepository
	movements repository.StockMovementRepository
	tx        ports.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, movements repository.StockMovementRepository, tx ports.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, movements: movements, tx: tx}
}

// Create crea un producto. Si ya existe uno con el mismo nombre suma el stock recibido
// y devuelve created=false.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, bool, error) {
	if err := validateProduct(in); err != nil {
		return nil, false, err
	}
	name := strings.TrimSpace(in.Name)
	var (
		out     *entity.Product
		created bool
	)
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, movements repository.StockMovementRepository) error {
		existing, err := products.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			if in.Stock == 0 {
				out = existing
				return nil
			}
			out, err = products.AdjustStock(ctx, existing.ID, in.Stock)
			if err != nil || out == nil {
				return err
			}
			return record(ctx, movements, out, entity.MovementTypeIn, in.Stock)
		}
		now := time.Now()
		p := &entity.Product{
			ID:          uuid.New().String(),
			Name:        name,
			Description: in.Description,
			Price:       in.Price,
			Stock:       in.Stock,
			SupplierID:  in.SupplierID,
			ImageURL:    in.ImageURL,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := products.Create(ctx, p); err != nil {
			return err
		}
		out, created = p, true
		return record(ctx, movements, p, entity.MovementTypeInitial, p.Stock)
	})
	if err != nil {
		return nil, false, err
	}
	return dto.NewProductResponse(out), created, nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}

// Get devuelve la entidad, para generadores de documentos.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	return uc.repo.GetByID(ctx, id)
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: toProductResponses(list),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Search busca por coincidencia parcial del nombre, sin distinguir mayúsculas.
func (uc *ProductUseCase) Search(ctx context.Context, name string) ([]dto.ProductResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "name es requerido")
	}
	list, err := uc.repo.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Update reemplaza los datos de un producto. (nil, nil) si no existe.
// Un cambio de stock queda en el kárdex como ajuste.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	var out *entity.Product
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, movements repository.StockMovementRepository) error {
		p, err := products.GetByID(ctx, id)
		if err != nil || p == nil {
			return err
		}
		delta := in.Stock - p.Stock
		p.Name = strings.TrimSpace(in.Name)
		p.Description = in.Description
		p.Price = in.Price
		p.Stock = in.Stock
		p.SupplierID = in.SupplierID
		p.ImageURL = in.ImageURL
		p.UpdatedAt = time.Now()
		if err := products.Update(ctx, p); err != nil {
			return err
		}
		out = p
		if delta == 0 {
			return nil
		}
		return record(ctx, movements, p, entity.MovementTypeAdjust, delta)
	})
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(out), nil
}

// UpdatePrice cambia solo el precio (> 0). (nil, nil) si no existe.
func (uc *ProductUseCase) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (*dto.ProductResponse, error) {
	if !price.IsPositive() {
		return nil, domain.NewValidationError("price", "El precio debe ser mayor a 0")
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	p.Price = price
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}

// Delete elimina un producto. Devuelve false si no existía.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) (bool, error) {
	return uc.repo.Delete(ctx, id)
}

// StockIn suma quantity (> 0) al stock.
func (uc *ProductUseCase) StockIn(ctx context.Context, id string, quantity int) (*dto.ProductResponse, error) {
	return uc.adjust(ctx, id, quantity, 1)
}

// StockOut descuenta quantity (> 0); ErrInsufficientStock si no alcanza.
func (uc *ProductUseCase) StockOut(ctx context.Context, id string, quantity int) (*dto.ProductResponse, error) {
	return uc.adjust(ctx, id, quantity, -1)
}

func (uc *ProductUseCase) adjust(ctx context.Context, id string, quantity, sign int) (*dto.ProductResponse, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "La cantidad debe ser mayor que 0")
	}
	kind := entity.MovementTypeIn
	if sign < 0 {
		kind = entity.MovementTypeOut
	}
	var out *entity.Product
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, movements repository.StockMovementRepository) error {
		p, err := products.AdjustStock(ctx, id, sign*quantity)
		if err != nil || p == nil {
			return err
		}
		out = p
		return record(ctx, movements, p, kind, sign*quantity)
	})
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(out), nil
}

// Movements devuelve el kárdex del producto. (nil, nil) si el producto no existe.
func (uc *ProductUseCase) Movements(ctx context.Context, id string, limit, offset int) (*dto.StockMovementListResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	list, err := uc.movements.ListByProduct(ctx, id, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.NewStockMovementResponse(m))
	}
	return &dto.StockMovementListResponse{
		ProductID: p.ID,
		Stock:     p.Stock,
		Items:     items,
		Page:      dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func record(ctx context.Context, movements repository.StockMovementRepository, p *entity.Product, kind string, quantity int) error {
	return movements.Create(ctx, &entity.StockMovement{
		ID:         uuid.New().String(),
		ProductID:  p.ID,
		Type:       kind,
		Quantity:   quantity,
		StockAfter: p.Stock,
		CreatedAt:  time.Now(),
	})
}

func validateProduct(in dto.CreateProductRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.NewValidationError("name", "name es requerido")
	}
	if !in.Price.IsPositive() {
		return domain.NewValidationError("price", "El precio debe ser mayor a 0")
	}
	if in.Stock < 0 {
		return domain.NewValidationError("stock", "El stock no puede ser negativo")
	}
	return nil
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.NewProductResponse(p))
	}
	return items
}
