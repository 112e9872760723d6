package db

import (
	"time"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

// SeedDev はdev用の初期データを投入する。既にあれば何もしない。
func SeedDev(gormDB *gorm.DB) error {
	email := "test@test.com"

	var count int64
	if err := gormDB.Model(&model.Customer{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return gormDB.Transaction(func(tx *gorm.DB) error {
		c := model.Customer{Email: email}
		if err := tx.Create(&c).Error; err != nil {
			return err
		}

		p1 := model.Product{Name: "콜롬비아 아메리카노", Price: 5000, Description: "고소한 맛"}
		p2 := model.Product{Name: "바닐라 라떼", Price: 6000, Description: "달달한 맛"}
		if err := tx.Create(&p1).Error; err != nil {
			return err
		}
		if err := tx.Create(&p2).Error; err != nil {
			return err
		}

		now := time.Now()

		o1 := model.Order{
			CustomerID:      c.ID,
			OrderTime:       now.AddDate(0, 0, -1),
			TotalAmount:     10000,
			Status:          model.OrderStatusShipping,
			ShippingAddress: "부산시 주소1",
			ShippingCode:    "12345",
		}
		if err := tx.Create(&o1).Error; err != nil {
			return err
		}

		o2 := model.Order{
			CustomerID:      c.ID,
			OrderTime:       now,
			TotalAmount:     6000,
			Status:          model.OrderStatusPaid,
			ShippingAddress: "경기도 주소1",
			ShippingCode:    "67890",
		}
		if err := tx.Create(&o2).Error; err != nil {
			return err
		}

		items := []model.OrderItem{
			{OrderID: o1.ID, ProductID: p1.ID, ProductName: p1.Name, UnitPrice: p1.Price, Quantity: 2},
			{OrderID: o2.ID, ProductID: p2.ID, ProductName: p2.Name, UnitPrice: p2.Price, Quantity: 1},
		}
		return tx.Create(&items).Error
	})
}
