package usecase_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/report"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type reportWriterMock struct{ mock.Mock }

func (m *reportWriterMock) Write(rows []report.Row, now time.Time) (string, error) {
	args := m.Called(rows, now)
	return args.String(0), args.Error(1)
}

type batchFixture struct {
	txm        *TxManagerMock
	customers  *CustomerRepoMock
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	now        time.Time
}

func newBatchFixture() *batchFixture {
	customers := &CustomerRepoMock{}
	orders := &OrderRepoMock{}
	orderItems := &OrderItemRepoMock{}

	txm := &TxManagerMock{Repos: &TxReposMock{
		customers:  customers,
		products:   &ProductRepoMock{},
		orders:     orders,
		orderItems: orderItems,
	}}

	return &batchFixture{
		txm:        txm,
		customers:  customers,
		orders:     orders,
		orderItems: orderItems,
		now:        time.Date(2026, 3, 15, 14, 5, 0, 0, time.Local),
	}
}

func (f *batchFixture) cutoff() time.Time {
	return time.Date(2026, 3, 15, usecase.BatchHour, 0, 0, 0, time.Local)
}

func TestRunDailyBatch_NoTargetsMeansNoSideEffects(t *testing.T) {
	f := newBatchFixture()
	writer := &reportWriterMock{}
	uc := usecase.NewOrderBatchUsecase(f.txm, writer, &fixedClock{t: f.now})

	f.txm.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("ListByStatusBefore", mock.Anything, model.OrderStatusOrdered, f.cutoff()).
		Return([]model.Order{}, nil)

	err := uc.RunDailyBatch(context.Background())

	assert.NoError(t, err)
	//ファイルも昇格も無し
	writer.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "UpdateStatusByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunDailyBatch_WritesReportThenPromotes(t *testing.T) {
	f := newBatchFixture()
	dir := t.TempDir()
	uc := usecase.NewOrderBatchUsecase(f.txm, report.NewCSVWriter(dir), &fixedClock{t: f.now})

	t1 := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	t2 := time.Date(2026, 3, 14, 11, 0, 0, 0, time.Local)

	//時間の降順で返しても、レポートでは昇順に並ぶ
	orders := []model.Order{
		{ID: 2, CustomerID: 7, OrderTime: t2, Status: model.OrderStatusOrdered,
			ShippingAddress: "부산시 주소1", ShippingCode: "12345"},
		{ID: 1, CustomerID: 7, OrderTime: t1, Status: model.OrderStatusOrdered,
			ShippingAddress: "부산시 주소1", ShippingCode: "12345"},
	}

	f.txm.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("ListByStatusBefore", mock.Anything, model.OrderStatusOrdered, f.cutoff()).
		Return(orders, nil)
	f.customers.On("FindByID", mock.Anything, int64(7)).
		Return(model.Customer{ID: 7, Email: "test@test.com"}, nil)
	f.orderItems.On("ListByOrderID", mock.Anything, int64(1)).
		Return([]model.OrderItem{
			{OrderID: 1, ProductID: 1, ProductName: "콜롬비아 아메리카노", UnitPrice: 5000, Quantity: 2},
		}, nil)
	f.orderItems.On("ListByOrderID", mock.Anything, int64(2)).
		Return([]model.OrderItem{
			{OrderID: 2, ProductID: 2, ProductName: "바닐라 라떼", UnitPrice: 6000, Quantity: 1},
		}, nil)
	f.orders.On("UpdateStatusByIDs", mock.Anything, []int64{2, 1}, model.OrderStatusShipping).
		Return(nil)

	err := uc.RunDailyBatch(context.Background())
	assert.NoError(t, err)

	f.orders.AssertCalled(t, "UpdateStatusByIDs", mock.Anything, []int64{2, 1}, model.OrderStatusShipping)

	path := filepath.Join(dir, "2026", "03", "order_report_20260315_1405.csv")
	raw, err := os.ReadFile(path)
	assert.NoError(t, err)

	//Excel向けのUTF-8 BOM
	assert.True(t, strings.HasPrefix(string(raw), "\xEF\xBB\xBF"))

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), "\xEF\xBB\xBF")))
	records, err := r.ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 3) //ヘッダー + 2行

	//注文時間の昇順（ID1が先）
	assert.Equal(t, []string{"1", "1", "test@test.com", "부산시 주소1", "12345",
		"콜롬비아 아메리카노", "2", "5000", "10000", "2026-03-14 09:00:00"}, records[1])
	assert.Equal(t, []string{"2", "2", "test@test.com", "부산시 주소1", "12345",
		"바닐라 라떼", "1", "6000", "6000", "2026-03-14 11:00:00"}, records[2])
}

func TestRunDailyBatch_WriteFailureAbortsPromotion(t *testing.T) {
	f := newBatchFixture()
	writer := &reportWriterMock{}
	uc := usecase.NewOrderBatchUsecase(f.txm, writer, &fixedClock{t: f.now})

	orders := []model.Order{
		{ID: 1, CustomerID: 7, OrderTime: f.now.Add(-24 * time.Hour),
			Status: model.OrderStatusOrdered, ShippingAddress: "부산시 주소1", ShippingCode: "12345"},
	}

	f.txm.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("ListByStatusBefore", mock.Anything, model.OrderStatusOrdered, f.cutoff()).
		Return(orders, nil)
	f.customers.On("FindByID", mock.Anything, int64(7)).
		Return(model.Customer{ID: 7, Email: "test@test.com"}, nil)
	f.orderItems.On("ListByOrderID", mock.Anything, int64(1)).
		Return([]model.OrderItem{
			{OrderID: 1, ProductID: 1, ProductName: "콜롬비아 아메리카노", UnitPrice: 5000, Quantity: 2},
		}, nil)
	writer.On("Write", mock.Anything, f.now).Return("", assert.AnError)

	err := uc.RunDailyBatch(context.Background())

	//書き出し失敗は致命的。昇格はしない。
	assert.Error(t, err)
	f.orders.AssertNotCalled(t, "UpdateStatusByIDs", mock.Anything, mock.Anything, mock.Anything)
}
