package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mercado-api/internal/application/auth"
	"github.com/jhoicas/mercado-api/internal/application/catalog"
	"github.com/jhoicas/mercado-api/internal/application/orders"
	"github.com/jhoicas/mercado-api/internal/application/users"
	"github.com/jhoicas/mercado-api/internal/application/vendors"
	"github.com/jhoicas/mercado-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UserAuthUC   *auth.UserAuthUseCase
	VendorAuthUC *auth.VendorAuthUseCase
	VendorUC     *vendors.VendorUseCase
	ProductUC    *catalog.ProductUseCase
	CategoryUC   *catalog.CategoryUseCase
	CheckoutUC   *orders.CheckoutUseCase
	OrderUC      *orders.OrderUseCase
	UserAdminUC  *users.UserAdminUseCase

	UserGuard   GuardConfig
	VendorGuard GuardConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	userGuard := AuthGuard(deps.UserGuard)
	vendorGuard := AuthGuard(deps.VendorGuard)
	dualGuard := DualAuthGuard(deps.UserGuard, deps.VendorGuard)
	optionalGuard := OptionalAuthGuard(deps.UserGuard, deps.VendorGuard)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth de usuarios (familia user)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.UserAuthUC, deps.UserGuard.Cookies)
	authGroup.Post("/sign-up", authHandler.SignUp)
	authGroup.Post("/sign-in", authHandler.SignIn)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", userGuard, authHandler.Me)
	authGroup.Post("/change-password", userGuard, authHandler.ChangePassword)

	// Vendedores: auth (familia vendor) + ciclo de vida
	vendorsGroup := api.Group("/vendors")
	vendorAuthHandler := NewVendorAuthHandler(deps.VendorAuthUC, deps.VendorGuard.Cookies)
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendorsGroup.Post("/register", vendorAuthHandler.Register)
	vendorsGroup.Post("/login", vendorAuthHandler.Login)
	vendorsGroup.Post("/refresh", vendorAuthHandler.Refresh)
	vendorsGroup.Post("/logout", vendorAuthHandler.Logout)
	vendorsGroup.Get("/check-email", vendorHandler.CheckEmail)
	vendorsGroup.Get("/me", vendorGuard, vendorAuthHandler.Me)
	vendorsGroup.Post("/apply", userGuard, vendorHandler.Apply)
	vendorsGroup.Post("/become-a-vendor", userGuard, vendorHandler.Apply)
	vendorsGroup.Get("/", optionalGuard, vendorHandler.List)
	vendorsGroup.Get("/:id", vendorHandler.GetByID)
	vendorsGroup.Put("/:id", dualGuard, vendorHandler.Update)
	vendorsGroup.Delete("/:id", userGuard, adminOnly, vendorHandler.Delete)

	// Catálogo: productos (lecturas públicas, escrituras del vendedor dueño o admin)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", dualGuard, productHandler.Create)
	products.Put("/:id", dualGuard, productHandler.Update)
	products.Delete("/:id", dualGuard, productHandler.Delete)

	// Catálogo: categorías (lecturas públicas, escrituras admin)
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", userGuard, adminOnly, categoryHandler.Create)
	categories.Put("/:id", userGuard, adminOnly, categoryHandler.Update)
	categories.Delete("/:id", userGuard, adminOnly, categoryHandler.Delete)

	// Usuarios (administración de cuentas, solo admin)
	usersGroup := api.Group("/users", userGuard, adminOnly)
	userHandler := NewUserHandler(deps.UserAdminUC)
	usersGroup.Get("/", userHandler.List)
	usersGroup.Get("/:id", userHandler.GetByID)
	usersGroup.Put("/:id", userHandler.Update)

	// Órdenes (checkout de clientes; consulta según rol)
	ordersGroup := api.Group("/orders", dualGuard)
	orderHandler := NewOrderHandler(deps.CheckoutUC, deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Get("/:id/receipt", orderHandler.Receipt)
	ordersGroup.Put("/:id", orderHandler.UpdateStatus)
	ordersGroup.Delete("/:id", adminOnly, orderHandler.Delete)
}
