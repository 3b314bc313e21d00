package main

import (
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/infra/api"
	"app/internal/infra/db"
	"app/internal/infra/storage"
	repo "app/internal/repository"
	"app/internal/server"
	"app/internal/usecase"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//価格はJSONでは数値として出す（元APIに合わせる）
	decimal.MarshalJSONWithoutQuotes = true

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//状態の置き場所（file or postgres）
	var state repo.StateStore
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		gormDB, err := db.Connect(cfg)
		if err != nil {
			log.Fatal(err)
		}
		if err := gormDB.AutoMigrate(&storage.StoredValue{}); err != nil {
			log.Fatal(err)
		}
		state = storage.NewGormStore(gormDB, cfg.ProfileID)
	default:
		fs, err := storage.NewFileStore(filepath.Join(cfg.StateDir, cfg.ProfileID))
		if err != nil {
			log.Fatal(err)
		}
		state = fs
	}

	//リモートAPIクライアント
	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	authGW := api.NewAuthClient(client)
	catalogGW := api.NewCatalogClient(client)
	customerGW := api.NewCustomerClient(client)
	orderGW := api.NewOrderClient(client)

	//Store（カート/セッション/チェックアウトの持ち主）
	store, err := usecase.NewStore(
		state, authGW, customerGW, orderGW,
		cfg.AppRole, &uuidGenerator{}, &realClock{},
	)
	if err != nil {
		log.Fatal(err)
	}

	catalogUC := usecase.NewCatalogUsecase(catalogGW)

	//Handler生成
	h := server.Handlers{
		Session:  handler.NewSessionHandler(store),
		Cart:     handler.NewCartHandler(store, catalogUC),
		Checkout: handler.NewCheckoutHandler(store),
		Catalog:  handler.NewCatalogHandler(catalogUC),
		Order:    handler.NewOrderHandler(store),
	}

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, cfg, h); err != nil {
		log.Fatal(err)
	}
}
