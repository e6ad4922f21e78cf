package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/mercado-api/internal/application/auth"
	"github.com/jhoicas/mercado-api/internal/application/catalog"
	"github.com/jhoicas/mercado-api/internal/application/orders"
	"github.com/jhoicas/mercado-api/internal/application/users"
	"github.com/jhoicas/mercado-api/internal/application/vendors"
	"github.com/jhoicas/mercado-api/internal/infrastructure/email"
	infrapdf "github.com/jhoicas/mercado-api/internal/infrastructure/pdf"
	"github.com/jhoicas/mercado-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/mercado-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/mercado-api/internal/interfaces/http"
	"github.com/jhoicas/mercado-api/pkg/config"
	"github.com/jhoicas/mercado-api/pkg/logger"
	"github.com/jhoicas/mercado-api/pkg/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Denylist de refresh tokens: Redis si está configurado, memoria si no.
	var denylist auth.Denylist
	if cfg.Redis.Enabled() {
		redisDenylist, err := infraredis.NewDenylist(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisDenylist.Close()
		denylist = redisDenylist
		log.Info().Str("addr", cfg.Redis.Addr).Msg("denylist en Redis")
	} else {
		denylist = auth.NewLocalDenylist()
		log.Warn().Msg("sin Redis: denylist en memoria del proceso")
	}

	// Mailer de notificaciones: SMTP si está configurado.
	var mailer vendors.Mailer = vendors.NopMailer{}
	if cfg.SMTP.Enabled() {
		mailer = email.NewSMTPMailer(cfg.SMTP)
		log.Info().Str("host", cfg.SMTP.Host).Msg("notificaciones SMTP activas")
	}

	// Dos familias de firma: user (clientes/admins) y vendor.
	accessTTL := time.Duration(cfg.JWT.AccessMinutes) * time.Minute
	refreshTTL := time.Duration(cfg.JWT.RefreshDays) * 24 * time.Hour
	userTokens := token.NewService(cfg.JWT.UserSecret, cfg.JWT.Issuer, accessTTL, refreshTTL)
	vendorTokens := token.NewService(cfg.JWT.VendorSecret, cfg.JWT.Issuer, accessTTL, refreshTTL)

	userAuthUC := auth.NewUserAuthUseCase(userRepo, userTokens, denylist)
	vendorAuthUC := auth.NewVendorAuthUseCase(userRepo, vendorRepo, vendorTokens, denylist)
	vendorUC := vendors.NewVendorUseCase(vendorRepo, userRepo, mailer)
	productUC := catalog.NewProductUseCase(productRepo, vendorRepo)
	categoryUC := catalog.NewCategoryUseCase(categoryRepo)
	checkoutUC := orders.NewCheckoutUseCase(txRunner)
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	orderUC := orders.NewOrderUseCase(orderRepo, vendorRepo, userRepo, receiptGenerator)
	userAdminUC := users.NewUserAdminUseCase(userRepo)

	secureCookies := cfg.App.Env == "production"
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mercado API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		UserAuthUC:   userAuthUC,
		VendorAuthUC: vendorAuthUC,
		VendorUC:     vendorUC,
		ProductUC:    productUC,
		CategoryUC:   categoryUC,
		CheckoutUC:   checkoutUC,
		OrderUC:      orderUC,
		UserAdminUC:  userAdminUC,
		UserGuard: httpRouter.GuardConfig{
			Tokens:  userTokens,
			Cookies: httpRouter.UserCookies(userTokens, secureCookies),
		},
		VendorGuard: httpRouter.GuardConfig{
			Tokens:  vendorTokens,
			Cookies: httpRouter.VendorCookies(vendorTokens, secureCookies),
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
