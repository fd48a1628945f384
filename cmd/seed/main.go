package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"

	"go-jewelry-pos/internal/action"
	"go-jewelry-pos/internal/logger"
	"go-jewelry-pos/internal/model"
	"go-jewelry-pos/internal/repository"
	"go-jewelry-pos/internal/service"
	"go-jewelry-pos/pkg/database"
)

type seedItem struct {
	name     string
	category string
	metal    string
	stone    string
	price    string
	cost     string
	weight   string
	qty      int
}

var catalog = []seedItem{
	{"Classic Solitaire Ring", "ring", "white gold", "diamond", "1250.00", "780.00", "3.200", 6},
	{"Twisted Band Ring", "ring", "yellow gold", "", "420.00", "260.00", "4.100", 10},
	{"Emerald Halo Ring", "ring", "white gold", "emerald", "980.00", "610.00", "3.800", 4},
	{"Plain Wedding Band", "ring", "platinum", "", "760.00", "520.00", "5.600", 12},
	{"Sapphire Stud Earrings", "earrings", "white gold", "sapphire", "540.00", "330.00", "2.400", 8},
	{"Pearl Drop Earrings", "earrings", "silver", "pearl", "180.00", "95.00", "3.100", 14},
	{"Gold Hoop Earrings", "earrings", "yellow gold", "", "310.00", "190.00", "5.200", 10},
	{"Diamond Cluster Earrings", "earrings", "white gold", "diamond", "890.00", "560.00", "2.900", 5},
	{"Figaro Chain 50cm", "chain", "yellow gold", "", "650.00", "410.00", "12.400", 9},
	{"Box Chain 45cm", "chain", "silver", "", "120.00", "60.00", "9.800", 16},
	{"Rope Chain 60cm", "chain", "yellow gold", "", "840.00", "540.00", "17.300", 6},
	{"Heart Pendant", "pendant", "rose gold", "", "290.00", "170.00", "2.600", 11},
	{"Cross Pendant", "pendant", "silver", "", "95.00", "48.00", "3.400", 15},
	{"Amethyst Teardrop Pendant", "pendant", "white gold", "amethyst", "460.00", "280.00", "3.000", 7},
	{"Tennis Bracelet", "bracelet", "white gold", "diamond", "1680.00", "1050.00", "8.900", 3},
	{"Charm Bracelet", "bracelet", "silver", "", "210.00", "120.00", "11.200", 9},
	{"Bangle Bracelet", "bracelet", "yellow gold", "", "720.00", "450.00", "14.600", 5},
	{"Pearl Strand Necklace", "necklace", "silver", "pearl", "390.00", "230.00", "22.000", 6},
}

var shopNames = []string{"Main Showroom", "Mall Kiosk", "Old Town Boutique"}

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	if err := db.AutoMigrate(
		&model.Item{}, &model.Shop{}, &model.ShopStock{}, &model.Sale{},
		&model.AuditSession{}, &model.AuditLine{},
		&model.Operator{}, &model.CustomValue{}, &model.BarcodeCounter{},
	); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	var itemCount int64
	db.Model(&model.Item{}).Count(&itemCount)
	if itemCount > 0 {
		log.Fatalf("Database already holds %d items; refusing to seed twice", itemCount)
	}

	// 3. Wire the same services the API uses, minus the websocket hub.
	appLog := logger.New(logger.LevelInfo)
	itemRepo := repository.NewItemRepo(db)
	shopRepo := repository.NewShopRepo(db)
	stockRepo := repository.NewShopStockRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	valueRepo := repository.NewCustomValueRepo(db)
	operatorRepo := repository.NewOperatorRepo(db)

	historyService := service.NewHistoryService(db, action.DefaultLimit, nil, appLog)
	invService := service.NewInventoryService(itemRepo, stockRepo, valueRepo, historyService, nil)
	transferService := service.NewTransferService(db, itemRepo, shopRepo, stockRepo, nil)
	saleService := service.NewSaleService(itemRepo, shopRepo, saleRepo, historyService, nil)
	authService := service.NewAuthService(operatorRepo, appLog)

	if err := authService.EnsureDefaultOperator(); err != nil {
		log.Fatal("Failed to seed default operator: ", err)
	}

	// 4. Select-list values from the catalog.
	seedCustomValues(invService)

	// 5. Catalog items; barcodes come from the internal sequence.
	items := make([]*model.Item, 0, len(catalog))
	for _, row := range catalog {
		item, err := invService.CreateItem(&service.CreateItemRequest{
			Name:         row.name,
			Category:     row.category,
			MetalType:    row.metal,
			StoneType:    row.stone,
			Price:        row.price,
			Cost:         row.cost,
			WeightGrams:  row.weight,
			WarehouseQty: row.qty,
		})
		if err != nil {
			log.Fatalf("Failed to create %q: %v", row.name, err)
		}
		items = append(items, item)
	}

	// 6. Shops.
	shops := make([]*model.Shop, 0, len(shopNames))
	for _, name := range shopNames {
		shop, err := transferService.CreateShop(&service.CreateShopRequest{Name: name})
		if err != nil {
			log.Fatalf("Failed to create shop %q: %v", name, err)
		}
		shops = append(shops, shop)
	}

	// Fixed seed keeps repeated runs comparable.
	rng := rand.New(rand.NewSource(42))

	// 7. Distribute roughly half of each item's units across the shops.
	transfers := 0
	for _, item := range items {
		remaining := item.WarehouseQty / 2
		for remaining > 0 {
			qty := 1 + rng.Intn(2)
			if qty > remaining {
				qty = remaining
			}
			shop := shops[rng.Intn(len(shops))]
			if _, err := transferService.MoveToShop(&service.TransferRequest{
				ItemID:   item.ID,
				ShopID:   shop.ID,
				Quantity: qty,
			}); err != nil {
				log.Fatalf("Transfer failed for %q: %v", item.Name, err)
			}
			remaining -= qty
			transfers++
		}
	}

	// 8. A month of sales history. Each sale runs through the regular
	// engine, then gets backdated; skipped when the picked shop ran dry.
	sales := 0
	for day := 30; day >= 1; day-- {
		when := time.Now().AddDate(0, 0, -day).Add(time.Duration(10+rng.Intn(8)) * time.Hour)
		for n := rng.Intn(3); n > 0; n-- {
			item := items[rng.Intn(len(items))]
			shop := shops[rng.Intn(len(shops))]
			sale, err := saleService.Sell(&service.SellRequest{
				ItemID:   item.ID,
				ShopID:   shop.ID,
				Quantity: 1,
			})
			if err != nil {
				continue
			}
			if err := db.Model(sale).Update("sold_at", when).Error; err != nil {
				log.Fatalf("Failed to backdate sale: %v", err)
			}
			sales++
		}
	}

	fmt.Printf("Seeded %d items, %d shops, %d transfers, %d sales\n",
		len(items), len(shops), transfers, sales)
	fmt.Println("Login with admin / 0000")
}

func seedCustomValues(inv service.InventoryService) {
	seen := map[string]bool{}
	add := func(kind, value string) {
		if value == "" || seen[kind+"|"+value] {
			return
		}
		seen[kind+"|"+value] = true
		if _, err := inv.AddCustomValue(&service.CustomValueRequest{Kind: kind, Value: value}); err != nil {
			log.Printf("Warning: custom value %s/%s: %v", kind, value, err)
		}
	}
	for _, row := range catalog {
		add(model.KindCategory, row.category)
		add(model.KindMetalType, row.metal)
		add(model.KindStoneType, row.stone)
	}
}
