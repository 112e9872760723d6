package main

import (
	"log/slog"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/mail"
	infraRepo "app/internal/infra/repository"
	"app/internal/report"
	"app/internal/scheduler"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Customer{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		panic(err)
	}

	//devだけ初期データ
	if cfg.GoEnv == "dev" {
		if err := db.SeedDev(gormDB); err != nil {
			panic(err)
		}
	}

	//Repository（GORM実装）生成
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}
	notifier := mail.NewGomailSender(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword,
		cfg.MailFrom, cfg.OrderPageURL,
	)
	csvWriter := report.NewCSVWriter(cfg.ReportDir)

	//Usecase生成
	customerUC := usecase.NewCustomerUsecase(customerRepo)
	productUC := usecase.NewProductUsecase(productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, notifier, clock)
	batchUC := usecase.NewOrderBatchUsecase(txManager, csvWriter, clock)

	//Handler生成
	customerH := handler.NewCustomerHandler(customerUC)
	productH := handler.NewProductHandler(productUC)
	orderH := handler.NewOrderHandler(orderUC)

	//日次バッチ（14:00）
	sched, err := scheduler.New(batchUC)
	if err != nil {
		panic(err)
	}
	sched.Start()
	defer sched.Stop()

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}
	if err := server.Start(addr, customerH, productH, orderH); err != nil {
		panic(err)
	}
}
