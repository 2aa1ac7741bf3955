// Package memory implementa los puertos del ledger sobre mapas en memoria.
// Es el backend de los tests y sirve para despliegues de un solo nodo: la
// exclusión por (producto, sede) se logra con un mutex por clave, el
// equivalente en proceso del SELECT FOR UPDATE del driver PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/inventario-funeraria/internal/application/ledger"
	"github.com/jhoicas/inventario-funeraria/internal/domain"
	"github.com/jhoicas/inventario-funeraria/internal/domain/entity"
	"github.com/jhoicas/inventario-funeraria/internal/domain/repository"
)

// Store almacenamiento en memoria para catálogo, ledger y proyecciones.
type Store struct {
	mu sync.RWMutex

	products    map[string]*entity.Product         // product_id -> producto
	bySKU       map[string]string                  // sku -> product_id
	movements   map[string][]*entity.StockMovement // product|branch -> movimientos por secuencia
	byID        map[string]*entity.StockMovement   // movement_id -> movimiento
	projections map[string]*entity.ProjectedStock  // product|branch -> proyección

	keyLocks sync.Map // product|branch -> *sync.Mutex
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		products:    make(map[string]*entity.Product),
		bySKU:       make(map[string]string),
		movements:   make(map[string][]*entity.StockMovement),
		byID:        make(map[string]*entity.StockMovement),
		projections: make(map[string]*entity.ProjectedStock),
	}
}

// Products devuelve la vista de catálogo del Store.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Movements devuelve la vista de ledger del Store (lecturas fuera de sesión).
func (s *Store) Movements() repository.StockMovementRepository { return &movementRepo{s: s} }

// Projections devuelve la vista de stock proyectado (lecturas fuera de sesión).
func (s *Store) Projections() repository.ProjectedStockRepository { return &projectedRepo{s: s} }

func key(productID, branch string) string {
	return productID + "|" + branch
}

func (s *Store) lockFor(k string) *sync.Mutex {
	m, _ := s.keyLocks.LoadOrStore(k, &sync.Mutex{})
	return m.(*sync.Mutex)
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

var _ ledger.TxRunner = (*Store)(nil)

// Run ejecuta fn con repos de sesión que bufferizan las escrituras. Los locks
// por clave se adquieren en el primer GetForUpdate y se liberan al final; las
// escrituras se aplican todas juntas solo si fn no devuelve error.
func (s *Store) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	projRepo repository.ProjectedStockRepository,
) error) error {
	tx := &txSession{store: s}
	defer tx.unlockAll()

	if err := fn(&txMovementRepo{tx: tx}, &txProjectedRepo{tx: tx}); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// txSession escrituras pendientes de una unidad atómica.
type txSession struct {
	store       *Store
	held        []*sync.Mutex
	heldKeys    map[string]bool
	newMoves    []*entity.StockMovement
	projUpserts []*entity.ProjectedStock
}

func (tx *txSession) lockKey(k string) {
	if tx.heldKeys == nil {
		tx.heldKeys = make(map[string]bool)
	}
	if tx.heldKeys[k] {
		return
	}
	m := tx.store.lockFor(k)
	m.Lock()
	tx.held = append(tx.held, m)
	tx.heldKeys[k] = true
}

func (tx *txSession) unlockAll() {
	for _, m := range tx.held {
		m.Unlock()
	}
	tx.held = nil
}

func (tx *txSession) commit() {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range tx.newMoves {
		cp := *m
		k := key(cp.ProductID, cp.Branch)
		s.movements[k] = append(s.movements[k], &cp)
		s.byID[cp.ID] = &cp
	}
	for _, p := range tx.projUpserts {
		cp := *p
		cp.UpdatedAt = time.Now()
		s.projections[key(cp.ProductID, cp.Branch)] = &cp
	}
}

// txMovementRepo vista del ledger dentro de la sesión.
type txMovementRepo struct {
	tx *txSession
}

func (r *txMovementRepo) Create(m *entity.StockMovement) error {
	r.tx.lockKey(key(m.ProductID, m.Branch))
	r.tx.newMoves = append(r.tx.newMoves, m)
	return nil
}

func (r *txMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	return r.tx.store.movementByID(id)
}

func (r *txMovementRepo) ListByProduct(productID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	return r.tx.store.listByProduct(productID, filter)
}

func (r *txMovementRepo) ListForReplay(productID, branch string) ([]*entity.StockMovement, error) {
	return r.tx.store.listForReplay(productID, branch)
}

// txProjectedRepo vista de las proyecciones dentro de la sesión.
type txProjectedRepo struct {
	tx *txSession
}

func (r *txProjectedRepo) Get(productID, branch string) (*entity.ProjectedStock, error) {
	return r.tx.store.projection(productID, branch)
}

func (r *txProjectedRepo) GetForUpdate(productID, branch string) (*entity.ProjectedStock, error) {
	r.tx.lockKey(key(productID, branch))
	return r.tx.store.projection(productID, branch)
}

func (r *txProjectedRepo) Upsert(stock *entity.ProjectedStock) error {
	r.tx.lockKey(key(stock.ProductID, stock.Branch))
	r.tx.projUpserts = append(r.tx.projUpserts, stock)
	return nil
}

func (r *txProjectedRepo) ListBelowReorderLevel(branch string) ([]repository.ReorderItem, error) {
	return r.tx.store.listBelowReorderLevel(branch)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

type productRepo struct {
	s *Store
}

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) Create(p *entity.Product) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := s.bySKU[p.SKU]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	s.products[cp.ID] = &cp
	s.bySKU[cp.SKU] = cp.ID
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	s := r.s
	s.mu.RLock()
	id, ok := s.bySKU[sku]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(id)
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*entity.Product, 0, len(s.products))
	for _, p := range s.products {
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger (lecturas fuera de sesión)
// ──────────────────────────────────────────────────────────────────────────────

type movementRepo struct {
	s *Store
}

var _ repository.StockMovementRepository = (*movementRepo)(nil)

// Create append directo sin sesión; útil para fixtures de test (p.ej. simular
// un ledger adulterado antes de un Rebuild).
func (r *movementRepo) Create(m *entity.StockMovement) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	k := key(cp.ProductID, cp.Branch)
	s.movements[k] = append(s.movements[k], &cp)
	s.byID[cp.ID] = &cp
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.StockMovement, error) {
	return r.s.movementByID(id)
}

func (r *movementRepo) ListByProduct(productID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	return r.s.listByProduct(productID, filter)
}

func (r *movementRepo) ListForReplay(productID, branch string) ([]*entity.StockMovement, error) {
	return r.s.listForReplay(productID, branch)
}

type projectedRepo struct {
	s *Store
}

var _ repository.ProjectedStockRepository = (*projectedRepo)(nil)

func (r *projectedRepo) Get(productID, branch string) (*entity.ProjectedStock, error) {
	return r.s.projection(productID, branch)
}

func (r *projectedRepo) GetForUpdate(productID, branch string) (*entity.ProjectedStock, error) {
	return r.s.projection(productID, branch)
}

func (r *projectedRepo) Upsert(stock *entity.ProjectedStock) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *stock
	cp.UpdatedAt = time.Now()
	s.projections[key(cp.ProductID, cp.Branch)] = &cp
	return nil
}

func (r *projectedRepo) ListBelowReorderLevel(branch string) ([]repository.ReorderItem, error) {
	return r.s.listBelowReorderLevel(branch)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas internas
// ──────────────────────────────────────────────────────────────────────────────

func (s *Store) movementByID(id string) (*entity.StockMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (s *Store) listByProduct(productID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []*entity.StockMovement
	for _, list := range s.movements {
		for _, m := range list {
			if m.ProductID != productID {
				continue
			}
			if filter.Branch != "" && m.Branch != filter.Branch {
				continue
			}
			if filter.MovementType != "" && m.Type != filter.MovementType {
				continue
			}
			if filter.From != nil && m.MovementDate.Before(*filter.From) {
				continue
			}
			if filter.To != nil && m.MovementDate.After(*filter.To) {
				continue
			}
			cp := *m
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Branch != all[j].Branch {
			return all[i].Branch < all[j].Branch
		}
		return all[i].SequenceID < all[j].SequenceID
	})
	if filter.Limit <= 0 {
		return all, nil
	}
	return paginate(all, filter.Limit, filter.Offset), nil
}

func (s *Store) listForReplay(productID, branch string) ([]*entity.StockMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.movements[key(productID, branch)]
	out := make([]*entity.StockMovement, 0, len(src))
	for _, m := range src {
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceID < out[j].SequenceID })
	return out, nil
}

func (s *Store) projection(productID, branch string) (*entity.ProjectedStock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projections[key(productID, branch)]
	if !ok {
		// Sin movimientos todavía: proyección en cero.
		return &entity.ProjectedStock{ProductID: productID, Branch: branch}, nil
	}
	cp := *p
	return &cp, nil
}

func (s *Store) listBelowReorderLevel(branch string) ([]repository.ReorderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []repository.ReorderItem
	for _, proj := range s.projections {
		if branch != "" && proj.Branch != branch {
			continue
		}
		p, ok := s.products[proj.ProductID]
		if !ok || proj.CurrentStock >= p.ReorderLevel {
			continue
		}
		items = append(items, repository.ReorderItem{
			ProductID:    p.ID,
			SKU:          p.SKU,
			ProductName:  p.Name,
			Branch:       proj.Branch,
			CurrentStock: proj.CurrentStock,
			ReorderLevel: p.ReorderLevel,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		di := items[i].ReorderLevel - items[i].CurrentStock
		dj := items[j].ReorderLevel - items[j].CurrentStock
		return di > dj
	})
	return items, nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}
