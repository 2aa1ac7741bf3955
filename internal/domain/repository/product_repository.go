package repository

import "github.com/jhoicas/inventario-funeraria/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// El catálogo es de lectura mayoritaria: el ledger solo consulta, nunca muta.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
}
