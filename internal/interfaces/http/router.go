package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/stats"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TransactionUC *inventory.TransactionUseCase
	PurchaseUC    *inventory.PurchaseUseCase
	SaleUC        *inventory.SaleUseCase
	StockUC       *inventory.StockUseCase
	AuthUC        *auth.AuthUseCase
	StatsUC       *stats.StatsUseCase
	TypeRepo      repository.TransactionTypeRepository
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, registro solo admin
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ledger de transacciones (append-only: PUT/DELETE responden 405)
	txHandler := NewTransactionHandler(deps.TransactionUC, deps.TypeRepo)
	txGroup := protected.Group("/transacciones")
	txGroup.Post("/", txHandler.Register)
	txGroup.Get("/", txHandler.List)
	txGroup.Get("/:id", txHandler.GetByID)
	txGroup.Put("/:id", txHandler.Immutable)
	txGroup.Patch("/:id", txHandler.Immutable)
	txGroup.Delete("/:id", txHandler.Immutable)

	// Compras: documento + recepción de mercancía
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases := protected.Group("/compras")
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/transacciones", purchaseHandler.AddItems)
	purchases.Get("/:id/transacciones", purchaseHandler.ListItems)

	// Ventas
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales := protected.Group("/ventas")
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)

	// Stock calculado desde el ledger
	stockHandler := NewStockHandler(deps.StockUC)
	stock := protected.Group("/stock")
	stock.Get("/bajo", stockHandler.ListLow)
	stock.Get("/:producto_id", stockHandler.GetByProduct)

	// Estadísticas
	statsHandler := NewStatsHandler(deps.StatsUC)
	protected.Get("/stats", statsHandler.General)
}
