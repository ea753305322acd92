package inventory_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// fakeStore es el almacén en memoria compartido por todos los repos fake.
// txMu serializa las "transacciones de BD" completas, emulando el efecto del
// SELECT FOR UPDATE sobre escritores concurrentes del mismo producto; mu
// protege el acceso a los datos desde lecturas fuera de transacción.
type fakeStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	transactions []*entity.Transaction
	types        map[string]*entity.TransactionType // por nombre
	records      map[string]entity.InventoryRecord  // por producto
	products     map[string]*entity.Product
	purchases    map[string]*entity.Purchase
	customers    map[string]*entity.Customer
	statuses     map[string]*entity.SaleStatus
	sales        []*entity.Sale
	details      []*entity.SaleDetail
	logs         []*entity.AuditLog
	logTypes     map[string]*entity.LogType
}

func newFakeStore() *fakeStore {
	s := &fakeStore{
		types:     make(map[string]*entity.TransactionType),
		records:   make(map[string]entity.InventoryRecord),
		products:  make(map[string]*entity.Product),
		purchases: make(map[string]*entity.Purchase),
		customers: make(map[string]*entity.Customer),
		statuses:  make(map[string]*entity.SaleStatus),
		logTypes:  make(map[string]*entity.LogType),
	}
	for _, name := range []string{entity.TransactionTypeEntrada, entity.TransactionTypeSalida} {
		s.types[name] = &entity.TransactionType{ID: uuid.New().String(), Name: name}
	}
	for _, name := range []string{
		entity.LogTypeError, entity.LogTypeWarning, entity.LogTypeInfo,
		entity.LogTypeLogin, entity.LogTypeSignup,
	} {
		s.logTypes[name] = &entity.LogType{ID: uuid.New().String(), Name: name}
	}
	return s
}

func (s *fakeStore) addProduct(name string, minStock decimal.Decimal) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &entity.Product{
		ID:       uuid.New().String(),
		Code:     "P-" + name,
		Name:     name,
		MinStock: minStock,
	}
	s.products[p.ID] = p
	return p
}

func (s *fakeStore) addPurchase(number string) *entity.Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &entity.Purchase{ID: uuid.New().String(), Number: number, Date: time.Now()}
	s.purchases[p.ID] = p
	return p
}

func (s *fakeStore) addCustomer(name, lastName string) *entity.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &entity.Customer{ID: uuid.New().String(), Name: name, LastName: lastName}
	s.customers[c.ID] = c
	return c
}

func (s *fakeStore) addStatus(name string) *entity.SaleStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &entity.SaleStatus{ID: uuid.New().String(), Name: name}
	s.statuses[st.ID] = st
	return st
}

func (s *fakeStore) typeNameByID(id string) string {
	for name, t := range s.types {
		if t.ID == id {
			return name
		}
	}
	return ""
}

// record devuelve una copia de la foto de inventario del producto.
func (s *fakeStore) record(productID string) (entity.InventoryRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[productID]
	return r, ok
}

// snapshot captura el estado mutable para poder hacer rollback.
type storeSnapshot struct {
	transactions int
	sales        int
	details      int
	records      map[string]entity.InventoryRecord
}

func (s *fakeStore) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make(map[string]entity.InventoryRecord, len(s.records))
	for k, v := range s.records {
		records[k] = v
	}
	return storeSnapshot{
		transactions: len(s.transactions),
		sales:        len(s.sales),
		details:      len(s.details),
		records:      records,
	}
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = s.transactions[:snap.transactions]
	s.sales = s.sales[:snap.sales]
	s.details = s.details[:snap.details]
	s.records = snap.records
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos fake
// ──────────────────────────────────────────────────────────────────────────────

type fakeTransactionRepo struct{ s *fakeStore }

func (r *fakeTransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions = append(r.s.transactions, tx)
	return nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, tx := range r.s.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Transaction
	for _, tx := range r.s.transactions {
		if tx.ProductID == productID {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, limit, offset), nil
}

func (r *fakeTransactionRepo) ListByType(_ context.Context, typeName string, productID *string, limit, offset int) ([]*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Transaction
	for _, tx := range r.s.transactions {
		if r.s.typeNameByID(tx.TypeID) != typeName {
			continue
		}
		if productID != nil && tx.ProductID != *productID {
			continue
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, limit, offset), nil
}

func (r *fakeTransactionRepo) ListByPurchase(_ context.Context, purchaseID string, limit, offset int) ([]*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Transaction
	for _, tx := range r.s.transactions {
		if tx.PurchaseID != nil && *tx.PurchaseID == purchaseID {
			out = append(out, tx)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *fakeTransactionRepo) SumByProductAndType(_ context.Context, productID, typeName string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, tx := range r.s.transactions {
		if tx.ProductID == productID && r.s.typeNameByID(tx.TypeID) == typeName {
			sum = sum.Add(tx.Quantity)
		}
	}
	return sum, nil
}

func paginate(txs []*entity.Transaction, limit, offset int) []*entity.Transaction {
	if offset >= len(txs) {
		return nil
	}
	txs = txs[offset:]
	if limit > 0 && limit < len(txs) {
		txs = txs[:limit]
	}
	return txs
}

type fakeTypeRepo struct{ s *fakeStore }

func (r *fakeTypeRepo) GetByID(_ context.Context, id string) (*entity.TransactionType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.types {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTypeRepo) GetByName(_ context.Context, name string) (*entity.TransactionType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.types[name], nil
}

func (r *fakeTypeRepo) Ensure(_ context.Context, name, description string) (*entity.TransactionType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.types[name]; ok {
		return t, nil
	}
	t := &entity.TransactionType{ID: uuid.New().String(), Name: name, Description: description}
	r.s.types[name] = t
	return t, nil
}

type fakeRecordRepo struct{ s *fakeStore }

func (r *fakeRecordRepo) Get(_ context.Context, productID string) (*entity.InventoryRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.records[productID]
	if !ok {
		return nil, nil
	}
	cp := rec
	return &cp, nil
}

// GetForUpdate devuelve una copia del registro; los cambios solo se ven tras
// Upsert, igual que con la fila bloqueada en Postgres. Si no existe, lo
// materializa en ceros antes de devolverlo, como hace el adaptador real para
// que el primer movimiento también contienda por la fila.
func (r *fakeRecordRepo) GetForUpdate(_ context.Context, productID string) (*entity.InventoryRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.records[productID]
	if !ok {
		zero := entity.NewInventoryRecord(uuid.New().String(), productID, time.Now())
		r.s.records[productID] = *zero
		rec = r.s.records[productID]
	}
	cp := rec
	return &cp, nil
}

func (r *fakeRecordRepo) Upsert(_ context.Context, record *entity.InventoryRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.records[record.ProductID] = *record
	return nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.products[id], nil
}

func (r *fakeProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.products)), nil
}

type fakePurchaseRepo struct{ s *fakeStore }

func (r *fakePurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.purchases {
		if existing.Number == p.Number {
			return domain.ErrDuplicate
		}
	}
	r.s.purchases[p.ID] = p
	return nil
}

func (r *fakePurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.purchases[id], nil
}

func (r *fakePurchaseRepo) List(_ context.Context, limit, offset int) ([]*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Purchase, 0, len(r.s.purchases))
	for _, p := range r.s.purchases {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type fakeSaleRepo struct{ s *fakeStore }

func (r *fakeSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sales = append(r.s.sales, sale)
	return nil
}

func (r *fakeSaleRepo) CreateDetail(_ context.Context, detail *entity.SaleDetail) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.details = append(r.s.details, detail)
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sale := range r.s.sales {
		if sale.ID == id {
			return sale, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) ListDetails(_ context.Context, saleID string) ([]*entity.SaleDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SaleDetail
	for _, d := range r.s.details {
		if d.SaleID == saleID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]*entity.Sale(nil), r.s.sales...), nil
}

type fakeCustomerRepo struct{ s *fakeStore }

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.customers[id], nil
}

type fakeStatusRepo struct{ s *fakeStore }

func (r *fakeStatusRepo) GetByID(_ context.Context, id string) (*entity.SaleStatus, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.statuses[id], nil
}

func (r *fakeStatusRepo) GetByName(_ context.Context, name string) (*entity.SaleStatus, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.statuses {
		if st.Name == name {
			return st, nil
		}
	}
	return nil, nil
}

func (r *fakeStatusRepo) Ensure(_ context.Context, name string) (*entity.SaleStatus, error) {
	if st, _ := r.GetByName(context.Background(), name); st != nil {
		return st, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st := &entity.SaleStatus{ID: uuid.New().String(), Name: name}
	r.s.statuses[st.ID] = st
	return st, nil
}

type fakeAuditLogRepo struct{ s *fakeStore }

func (r *fakeAuditLogRepo) Create(_ context.Context, log *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.logs = append(r.s.logs, log)
	return nil
}

func (r *fakeAuditLogRepo) GetByID(_ context.Context, id string) (*entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.logs {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeAuditLogRepo) List(_ context.Context, _ *string, _ *string, _, _ int) ([]*entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]*entity.AuditLog(nil), r.s.logs...), nil
}

type fakeLogTypeRepo struct{ s *fakeStore }

func (r *fakeLogTypeRepo) GetByName(_ context.Context, name string) (*entity.LogType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.logTypes[name], nil
}

func (r *fakeLogTypeRepo) Ensure(_ context.Context, name, description string) (*entity.LogType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.logTypes[name]; ok {
		return t, nil
	}
	t := &entity.LogType{ID: uuid.New().String(), Name: name, Description: description}
	r.s.logTypes[name] = t
	return t, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner fake
// ──────────────────────────────────────────────────────────────────────────────

// fakeTxRunner serializa cada transacción con txMu y restaura el snapshot si
// fn falla: mismo contrato de atomicidad que el TxRunner de pgx.
type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	repository.TransactionRepository,
	repository.TransactionTypeRepository,
	repository.InventoryRecordRepository,
	repository.ProductRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	snap := r.s.snapshot()
	err := fn(&fakeTransactionRepo{r.s}, &fakeTypeRepo{r.s}, &fakeRecordRepo{r.s}, &fakeProductRepo{r.s})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

func (r *fakeTxRunner) RunSale(ctx context.Context, fn func(
	repository.TransactionRepository,
	repository.TransactionTypeRepository,
	repository.InventoryRecordRepository,
	repository.ProductRepository,
	repository.SaleRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	snap := r.s.snapshot()
	err := fn(&fakeTransactionRepo{r.s}, &fakeTypeRepo{r.s}, &fakeRecordRepo{r.s}, &fakeProductRepo{r.s}, &fakeSaleRepo{r.s})
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

// newTestAudit construye un Recorder real sobre los repos fake, sin salida de log.
func newTestAudit(s *fakeStore) *audit.Recorder {
	return audit.NewRecorder(&fakeAuditLogRepo{s}, &fakeLogTypeRepo{s}, zerolog.Nop())
}
