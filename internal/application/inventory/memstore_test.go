package inventory_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/internal/domain/fulfillment"
	"github.com/jhoicas/Recepcion-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// memStore: almacén en memoria con transacciones serializadas.
// Run toma el candado durante toda la transacción y restaura la copia previa si fn falla,
// igual que un Rollback.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	products   map[int]bool
	prices     map[int]decimal.Decimal
	warehouses map[int]bool
	orders     map[int]entity.Order
	movements  []entity.StockMovement
	nextID     int
}

func (s memState) clone() memState {
	c := memState{
		products:   make(map[int]bool, len(s.products)),
		prices:     make(map[int]decimal.Decimal, len(s.prices)),
		warehouses: make(map[int]bool, len(s.warehouses)),
		orders:     make(map[int]entity.Order, len(s.orders)),
		movements:  append([]entity.StockMovement(nil), s.movements...),
		nextID:     s.nextID,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.prices {
		c.prices[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	return c
}

type memStore struct {
	mu sync.Mutex
	st memState

	// fallas inyectadas
	failCreate error
	failMark   error

	callMu sync.Mutex
	calls  []string
}

func newMemStore() *memStore {
	return &memStore{st: memState{
		products:   map[int]bool{},
		prices:     map[int]decimal.Decimal{},
		warehouses: map[int]bool{},
		orders:     map[int]entity.Order{},
		nextID:     1,
	}}
}

func (s *memStore) addProduct(id int, price string) {
	s.st.products[id] = true
	s.st.prices[id] = decimal.RequireFromString(price)
}

func (s *memStore) addWarehouse(id int) { s.st.warehouses[id] = true }

func (s *memStore) addOrder(o entity.Order) { s.st.orders[o.ID] = o }

func (s *memStore) record(call string) {
	s.callMu.Lock()
	defer s.callMu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *memStore) called(call string) bool {
	s.callMu.Lock()
	defer s.callMu.Unlock()
	for _, c := range s.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (s *memStore) snapshot() memState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.clone()
}

func (s *memStore) movementsForOrder(orderID int) []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.StockMovement
	for _, m := range s.st.movements {
		if m.OrderID == orderID {
			out = append(out, m)
		}
	}
	return out
}

func (s *memStore) order(id int) entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.orders[id]
}

// access aplica fn al estado; fuera de una transacción toma el candado.
type access struct {
	s    *memStore
	inTx bool
}

func (a access) with(fn func(st *memState)) {
	if !a.inTx {
		a.s.mu.Lock()
		defer a.s.mu.Unlock()
	}
	fn(&a.s.st)
}

type memProductRepo struct{ access }

var _ repository.ProductRepository = memProductRepo{}

func (r memProductRepo) Exists(_ context.Context, id int) (bool, error) {
	r.s.record("ProductExists")
	var ok bool
	r.with(func(st *memState) { ok = st.products[id] })
	return ok, nil
}

func (r memProductRepo) UnitPrice(_ context.Context, id int) (decimal.Decimal, error) {
	r.s.record("UnitPrice")
	var (
		price decimal.Decimal
		ok    bool
	)
	r.with(func(st *memState) { price, ok = st.prices[id] })
	if !ok {
		return decimal.Zero, domain.ErrPriceNotFound
	}
	return price, nil
}

type memWarehouseRepo struct{ access }

var _ repository.WarehouseRepository = memWarehouseRepo{}

func (r memWarehouseRepo) Exists(_ context.Context, id int) (bool, error) {
	r.s.record("WarehouseExists")
	var ok bool
	r.with(func(st *memState) { ok = st.warehouses[id] })
	return ok, nil
}

type memOrderRepo struct{ access }

var _ repository.OrderRepository = memOrderRepo{}

func (r memOrderRepo) FindMatching(_ context.Context, productID, amount int, receivedAt time.Time) (*entity.Order, error) {
	r.s.record("FindMatching")
	var (
		order entity.Order
		ok    bool
	)
	r.with(func(st *memState) {
		list := make([]entity.Order, 0, len(st.orders))
		for _, o := range st.orders {
			list = append(list, o)
		}
		order, ok = fulfillment.PickMatch(list, productID, amount, receivedAt)
	})
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (r memOrderRepo) MarkFulfilled(_ context.Context, id int, at time.Time) error {
	r.s.record("MarkFulfilled")
	if r.s.failMark != nil {
		return r.s.failMark
	}
	var err error
	r.with(func(st *memState) {
		o := st.orders[id]
		if o.FulfilledAt != nil {
			err = domain.ErrConflict
			return
		}
		o.FulfilledAt = &at
		st.orders[id] = o
	})
	return err
}

type memMovementRepo struct{ access }

var _ repository.StockMovementRepository = memMovementRepo{}

func (r memMovementRepo) ExistsForOrder(_ context.Context, orderID int) (bool, error) {
	r.s.record("ExistsForOrder")
	var found bool
	r.with(func(st *memState) {
		for _, m := range st.movements {
			if m.OrderID == orderID {
				found = true
				return
			}
		}
	})
	return found, nil
}

func (r memMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	r.s.record("CreateMovement")
	if r.s.failCreate != nil {
		return r.s.failCreate
	}
	var err error
	r.with(func(st *memState) {
		for _, m := range st.movements {
			if m.OrderID == movement.OrderID {
				err = domain.ErrConflict
				return
			}
		}
		movement.ID = st.nextID
		st.nextID++
		st.movements = append(st.movements, *movement)
	})
	return err
}

func (r memMovementRepo) FindDiscrepancies(context.Context) ([]entity.FulfillmentDiscrepancy, error) {
	var out []entity.FulfillmentDiscrepancy
	r.with(func(st *memState) {
		counts := map[int]int{}
		for _, m := range st.movements {
			counts[m.OrderID]++
		}
		for id, o := range st.orders {
			n := counts[id]
			if (o.FulfilledAt != nil && n != 1) || (o.FulfilledAt == nil && n != 0) {
				out = append(out, entity.FulfillmentDiscrepancy{OrderID: id, FulfilledAt: o.FulfilledAt, Movements: n})
			}
		}
	})
	return out, nil
}

type memTxRunner struct{ s *memStore }

func (r memTxRunner) Run(_ context.Context, fn func(
	orderRepo repository.OrderRepository,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	before := r.s.st.clone()
	tx := access{s: r.s, inTx: true}
	if err := fn(memOrderRepo{tx}, memMovementRepo{tx}, memProductRepo{tx}); err != nil {
		r.s.st = before
		return err
	}
	return nil
}

// pool devuelve los repositorios fuera de transacción.
func (s *memStore) pool() (memProductRepo, memWarehouseRepo) {
	a := access{s: s}
	return memProductRepo{a}, memWarehouseRepo{a}
}
