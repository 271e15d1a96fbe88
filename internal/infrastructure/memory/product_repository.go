// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa en pruebas y con STORE_DRIVER=memory; los datos se pierden al reiniciar.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/farmasync-api/internal/domain"
	"github.com/jhoicas/farmasync-api/internal/domain/entity"
	"github.com/jhoicas/farmasync-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo almacén de productos protegido por un mutex. Devuelve copias, nunca punteros internos.
type ProductRepo struct {
	mu    sync.RWMutex
	items map[string]entity.Product
}

// NewProductRepository construye el almacén vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{items: make(map[string]entity.Product)}
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[product.ID]; ok {
		return domain.ErrDuplicate
	}
	r.items[product.ID] = *product
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetByName coincidencia exacta sin distinguir mayúsculas.
func (r *ProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if strings.EqualFold(p.Name, name) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) SearchByName(_ context.Context, fragment string) ([]*entity.Product, error) {
	needle := strings.ToLower(fragment)
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Product
	for _, p := range r.items {
		p := p
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, &p)
		}
	}
	sortByName(out)
	return out, nil
}

// List ordena por fecha de creación descendente, igual que el adaptador PostgreSQL.
func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.mu.RLock()
	all := make([]*entity.Product, 0, len(r.items))
	for _, p := range r.items {
		p := p
		all = append(all, &p)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return []*entity.Product{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[product.ID]; !ok {
		return nil
	}
	r.items[product.ID] = *product
	return nil
}

func (r *ProductRepo) AdjustStock(_ context.Context, id string, delta int) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	if p.Stock+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	p.Stock += delta
	p.UpdatedAt = time.Now()
	r.items[id] = p
	return &p, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func sortByName(list []*entity.Product) {
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
}
