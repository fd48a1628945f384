package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"go-jewelry-pos/internal/action"
	"go-jewelry-pos/internal/handler"
	"go-jewelry-pos/internal/logger"
	"go-jewelry-pos/internal/middleware"
	"go-jewelry-pos/internal/model"
	"go-jewelry-pos/internal/repository"
	"go-jewelry-pos/internal/scanner"
	"go-jewelry-pos/internal/service"
	"go-jewelry-pos/internal/ws"
	"go-jewelry-pos/pkg/database"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	appLog := logger.New(logger.ParseLevel(os.Getenv("LOG_LEVEL")))

	// 2. Setup Database
	db := database.ConnectDB()
	if err := db.AutoMigrate(
		&model.Item{}, &model.Shop{}, &model.ShopStock{}, &model.Sale{},
		&model.AuditSession{}, &model.AuditLine{},
		&model.Operator{}, &model.CustomValue{}, &model.BarcodeCounter{},
	); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	itemRepo := repository.NewItemRepo(db)
	shopRepo := repository.NewShopRepo(db)
	stockRepo := repository.NewShopStockRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	operatorRepo := repository.NewOperatorRepo(db)
	valueRepo := repository.NewCustomValueRepo(db)
	reportRepo := repository.NewReportRepo(db)

	historyService := service.NewHistoryService(db, envInt("UNDO_HISTORY_LIMIT", action.DefaultLimit), wsHub, appLog)
	invService := service.NewInventoryService(itemRepo, stockRepo, valueRepo, historyService, wsHub)
	transferService := service.NewTransferService(db, itemRepo, shopRepo, stockRepo, wsHub)
	saleService := service.NewSaleService(itemRepo, shopRepo, saleRepo, historyService, wsHub)
	auditService := service.NewAuditService(shopRepo, stockRepo, auditRepo, wsHub, appLog)
	reportService := service.NewReportService(reportRepo)
	authService := service.NewAuthService(operatorRepo, appLog)

	// 5. First boot: make sure someone can log in
	if err := authService.EnsureDefaultOperator(); err != nil {
		log.Fatal("Failed to seed default operator: ", err)
	}

	authHandler := handler.NewAuthHandler(authService)
	invHandler := handler.NewInventoryHandler(invService)
	historyHandler := handler.NewHistoryHandler(historyService)
	transferHandler := handler.NewTransferHandler(transferService)
	saleHandler := handler.NewSaleHandler(saleService)
	auditHandler := handler.NewAuditHandler(auditService)
	reportHandler := handler.NewReportHandler(reportService)

	scanWindow := time.Duration(envInt("SCAN_DEBOUNCE_MS", int(scanner.DefaultWindow/time.Millisecond))) * time.Millisecond
	wsHandler := handler.NewWSHandler(wsHub, auditService, scanWindow)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Jewelry POS v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/change-pin", middleware.RequireAuth(operatorRepo), authHandler.ChangePIN)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(operatorRepo))

	// Catalog (create/update/delete are undoable)
	protected.Get("/items", invHandler.GetItems)
	protected.Post("/items", invHandler.CreateItem)
	protected.Get("/items/barcode/:barcode", invHandler.GetItemByBarcode)
	protected.Get("/items/:id/barcode-digits", invHandler.GetBarcodeDigits)
	protected.Get("/items/:id", invHandler.GetItem)
	protected.Put("/items/:id", invHandler.UpdateItem)
	protected.Delete("/items/:id", invHandler.DeleteItem)

	// Action history
	protected.Get("/history", historyHandler.GetState)
	protected.Post("/history/undo", historyHandler.Undo)
	protected.Post("/history/redo", historyHandler.Redo)

	// Shops and stock transfers
	protected.Get("/shops", transferHandler.GetShops)
	protected.Post("/shops", transferHandler.CreateShop)
	protected.Get("/shops/:id/stock", transferHandler.GetShopStock)
	protected.Post("/transfers/to-shop", transferHandler.MoveToShop)
	protected.Post("/transfers/to-warehouse", transferHandler.ReturnToWarehouse)

	// Sales (undoable)
	protected.Post("/sales", saleHandler.Sell)
	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/:id", saleHandler.GetSale)

	// Audits
	protected.Post("/audits", auditHandler.Start)
	protected.Get("/audits", auditHandler.List)
	protected.Post("/audits/:id/scan", auditHandler.Scan)
	protected.Put("/audits/:id/quantity", auditHandler.SetQuantity)
	protected.Post("/audits/:id/pause", auditHandler.Pause)
	protected.Post("/audits/:id/resume", auditHandler.Resume)
	protected.Post("/audits/:id/finish", auditHandler.Finish)
	protected.Get("/audits/:id/progress", auditHandler.Progress)
	protected.Get("/audits/:id", auditHandler.Get)

	// Reports
	protected.Get("/reports/valuation", reportHandler.Valuation)
	protected.Get("/reports/low-stock", reportHandler.LowStock)
	protected.Get("/reports/sales", reportHandler.SalesSummary)

	// Custom select-list values
	protected.Get("/custom-values/:kind", invHandler.GetCustomValues)
	protected.Post("/custom-values", invHandler.AddCustomValue)
	protected.Delete("/custom-values/:id", invHandler.DeleteCustomValue)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHandler.Feed))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// envInt reads a positive integer knob, falling back on anything unset
// or unusable.
func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		log.Printf("Warning: ignoring %s=%q", key, raw)
		return fallback
	}
	return n
}
