package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newTransactionUC(s *fakeStore) *inventory.TransactionUseCase {
	return inventory.NewTransactionUseCase(
		&fakeTxRunner{s},
		&fakeTypeRepo{s},
		&fakeProductRepo{s},
		&fakeTransactionRepo{s},
		newTestAudit(s),
	)
}

func newStockUC(s *fakeStore) *inventory.StockUseCase {
	return inventory.NewStockUseCase(&fakeTransactionRepo{s}, &fakeProductRepo{s})
}

func TestRegister_CantidadCeroONegativa_Rechazada(t *testing.T) {
	s := newFakeStore()
	p := s.addProduct("Tornillos", dec("1"))
	uc := newTransactionUC(s)

	for _, qty := range []string{"0", "-5"} {
		_, err := uc.Register(context.Background(), inventory.TransactionInput{
			Type:      entity.TransactionTypeEntrada,
			ProductID: p.ID,
			Quantity:  dec(qty),
			UserID:    "user-1",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %s debe rechazarse", qty)
	}
	assert.Empty(t, s.transactions, "no debe escribirse nada en el ledger")
}

func TestRegister_ProductoInexistente_NotFound(t *testing.T) {
	s := newFakeStore()
	uc := newTransactionUC(s)

	_, err := uc.Register(context.Background(), inventory.TransactionInput{
		Type:      entity.TransactionTypeEntrada,
		ProductID: "no-existe",
		Quantity:  dec("1"),
		UserID:    "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_Entrada_ActualizaLedgerYFoto(t *testing.T) {
	s := newFakeStore()
	p := s.addProduct("Tornillos", dec("1"))
	uc := newTransactionUC(s)

	tx, err := uc.Register(context.Background(), inventory.TransactionInput{
		Type:      entity.TransactionTypeEntrada,
		ProductID: p.ID,
		Quantity:  dec("8"),
		Note:      "carga inicial",
		UserID:    "user-1",
	})
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.NotEmpty(t, tx.ID)

	require.Len(t, s.transactions, 1)
	rec, ok := s.record(p.ID)
	require.True(t, ok, "la foto debe materializarse con el primer movimiento")
	assert.True(t, rec.Current.Equal(dec("8")))
	assert.True(t, rec.Available.Equal(dec("8")))
	assert.NotNil(t, rec.LastEntryAt)
}

func TestRegister_SalidaSinStock_RechazadaSinEscribir(t *testing.T) {
	s := newFakeStore()
	p := s.addProduct("Tornillos", dec("1"))
	uc := newTransactionUC(s)

	_, err := uc.Register(context.Background(), inventory.TransactionInput{
		Type:      entity.TransactionTypeSalida,
		ProductID: p.ID,
		Quantity:  dec("1"),
		UserID:    "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, s.transactions, "la salida rechazada no debe dejar rastro en el ledger")
}

func TestRegister_SalidaValidaContraAgregadoDelLedger(t *testing.T) {
	s := newFakeStore()
	p := s.addProduct("Tornillos", dec("1"))
	uc := newTransactionUC(s)
	ctx := context.Background()

	_, err := uc.Register(ctx, inventory.TransactionInput{
		Type: entity.TransactionTypeEntrada, ProductID: p.ID, Quantity: dec("10"), UserID: "u",
	})
	require.NoError(t, err)

	// salida dentro del stock: pasa
	_, err = uc.Register(ctx, inventory.TransactionInput{
		Type: entity.TransactionTypeSalida, ProductID: p.ID, Quantity: dec("4"), UserID: "u",
	})
	require.NoError(t, err)

	// salida mayor al agregado restante (6): rechazada
	_, err = uc.Register(ctx, inventory.TransactionInput{
		Type: entity.TransactionTypeSalida, ProductID: p.ID, Quantity: dec("7"), UserID: "u",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	rec, _ := s.record(p.ID)
	assert.True(t, rec.Current.Equal(dec("6")), "la foto queda en 10 - 4 = 6")

	stock, err := newStockUC(s).ComputeStock(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, stock.Equal(dec("6")), "el agregado del ledger coincide con la foto")
}

func TestComputeStock_SinTransacciones_Cero(t *testing.T) {
	s := newFakeStore()
	p := s.addProduct("Tuercas", dec("0"))

	stock, err := newStockUC(s).ComputeStock(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, stock.IsZero())
}

// Leer el stock no muta el ledger: dos lecturas seguidas devuelven lo mismo.
func TestComputeStock_LecturaIdempotente(t *testing.T) {
	s := newFakeStore()
	p := s.addProduct("Tuercas", dec("0"))
	uc := newTransactionUC(s)
	ctx := context.Background()

	_, err := uc.Register(ctx, inventory.TransactionInput{
		Type: entity.TransactionTypeEntrada, ProductID: p.ID, Quantity: dec("3.75"), UserID: "u",
	})
	require.NoError(t, err)

	stockUC := newStockUC(s)
	first, err := stockUC.ComputeStock(ctx, p.ID)
	require.NoError(t, err)
	second, err := stockUC.ComputeStock(ctx, p.ID)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.True(t, first.Equal(dec("3.75")))
	assert.Len(t, s.transactions, 1, "la lectura no agrega transacciones")
}

func TestGetStock_MarcaStockBajo(t *testing.T) {
	s := newFakeStore()
	p := s.addProduct("Clavos", dec("5"))
	uc := newTransactionUC(s)
	ctx := context.Background()

	_, err := uc.Register(ctx, inventory.TransactionInput{
		Type: entity.TransactionTypeEntrada, ProductID: p.ID, Quantity: dec("3"), UserID: "u",
	})
	require.NoError(t, err)

	resp, err := newStockUC(s).GetStock(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, resp.ComputedStock.Equal(dec("3")))
	assert.True(t, resp.IsLow, "3 < stock_minimo 5 debe marcar stock bajo")
}

func TestListLowStock_UmbralPorProducto(t *testing.T) {
	s := newFakeStore()
	bajo := s.addProduct("Bajo", dec("10"))
	alto := s.addProduct("Alto", dec("1"))
	uc := newTransactionUC(s)
	ctx := context.Background()

	for _, in := range []struct {
		pid string
		qty string
	}{{bajo.ID, "2"}, {alto.ID, "50"}} {
		_, err := uc.Register(ctx, inventory.TransactionInput{
			Type: entity.TransactionTypeEntrada, ProductID: in.pid, Quantity: dec(in.qty), UserID: "u",
		})
		require.NoError(t, err)
	}

	items, err := newStockUC(s).ListLowStock(ctx, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, bajo.ID, items[0].ProductID)

	// con umbral explícito el filtro es global
	threshold := dec("100")
	items, err = newStockUC(s).ListLowStock(ctx, &threshold)
	require.NoError(t, err)
	assert.Len(t, items, 2, "ambos productos quedan bajo el umbral global de 100")
}
