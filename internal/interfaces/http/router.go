package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lapstock/lapstock-api/internal/application/auth"
	"github.com/lapstock/lapstock-api/internal/application/catalog"
	"github.com/lapstock/lapstock-api/internal/application/enrichment"
	"github.com/lapstock/lapstock-api/internal/application/expense"
	"github.com/lapstock/lapstock-api/internal/application/laptop"
	"github.com/lapstock/lapstock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	CatalogUC    *catalog.UseCase
	LaptopUC     *laptop.UseCase
	ExpenseUC    *expense.UseCase
	EnrichmentUC *enrichment.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (register/login públicos; perfil protegido)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	sellers := RequireRole(entity.RoleAdmin, entity.RoleVendedor)
	accounting := RequireRole(entity.RoleAdmin, entity.RoleContable)

	// Catálogos: lectura para todos los roles; administración solo admin
	catalogs := protected.Group("/catalogs")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogs.Get("/stats", catalogHandler.Stats)
	catalogs.Get("/:kind", catalogHandler.List)
	catalogs.Post("/:kind/merge", adminOnly, catalogHandler.Merge)
	catalogs.Delete("/:kind/:id", adminOnly, catalogHandler.Deactivate)
	catalogs.Post("/:kind/:id/reactivate", adminOnly, catalogHandler.Reactivate)

	// Laptops (admin y vendedor)
	laptops := protected.Group("/laptops", sellers)
	laptopHandler := NewLaptopHandler(deps.LaptopUC)
	laptops.Post("/", laptopHandler.Create)
	laptops.Get("/", laptopHandler.List)
	laptops.Get("/:id", laptopHandler.GetByID)
	laptops.Put("/:id", laptopHandler.Update)
	laptops.Delete("/:id", laptopHandler.Delete)

	// Gastos (admin y contable)
	expenses := protected.Group("/expenses", accounting)
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/categories", expenseHandler.ListCategories)
	expenses.Post("/sync-recurring", expenseHandler.SyncRecurring)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Post("/:id/pay", expenseHandler.MarkPaid)

	// Importación por GTIN (admin y vendedor)
	importGroup := protected.Group("/import", sellers)
	enrichmentHandler := NewEnrichmentHandler(deps.EnrichmentUC)
	importGroup.Post("/gtin", enrichmentHandler.ImportByGTIN)
}
