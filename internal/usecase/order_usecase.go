package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/validator"
)

type OrderUsecase struct {
	tx       repo.TransactionManager
	notifier Notifier
	clock    Clock
}

func NewOrderUsecase(tx repo.TransactionManager, notifier Notifier, clock Clock) *OrderUsecase {
	return &OrderUsecase{tx: tx, notifier: notifier, clock: clock}
}

type CreateOrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CreateOrderInput struct {
	Email           string
	ShippingAddress string
	ShippingCode    string
	Items           []CreateOrderItemInput
}

type UpdateShippingInput struct {
	ShippingAddress string
	ShippingCode    string
}

type OrderItemOutput struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	Quantity     int64  `json:"quantity"`
	PricePerItem int64  `json:"price_per_item"`
	SubTotal     int64  `json:"sub_total"`
}

type OrderOutput struct {
	ID              int64             `json:"id"`
	Email           string            `json:"email"`
	OrderTime       time.Time         `json:"order_time"`
	TotalAmount     int64             `json:"total_amount"`
	Status          string            `json:"status"`
	ShippingAddress string            `json:"shipping_address"`
	ShippingCode    string            `json:"shipping_code"`
	Items           []OrderItemOutput `json:"items"`
}

func (u *OrderUsecase) Create(ctx context.Context, in CreateOrderInput) (OrderOutput, error) {
	if err := validator.ValidateEmail(in.Email); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, err.Error())
	}
	if err := validator.ValidateShippingAddress(in.ShippingAddress); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, err.Error())
	}
	if err := validator.ValidateShippingCode(in.ShippingCode); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, err.Error())
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, validator.ErrEmptyItems.Error())
	}
	for _, it := range in.Items {
		if err := validator.ValidateOrderItem(it.ProductID, it.Quantity); err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, err.Error())
		}
	}

	email := strings.TrimSpace(in.Email)

	var out OrderOutput

	//注文作成はトランザクション（商品が1つでも無ければ全体を中断）
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//先に商品を全部解決してから顧客をupsertする
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		var total int64 = 0

		for _, it := range in.Items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, CodeNotFound,
					fmt.Sprintf("product not found: %d", it.ProductID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
			}

			//注文時点のスナップショット
			orderItems = append(orderItems, model.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				UnitPrice:   p.Price,
				Quantity:    it.Quantity,
			})
			total += p.Price * it.Quantity
		}

		customer, err := u.getOrCreateCustomer(ctx, r, email)
		if err != nil {
			return err
		}

		now := u.clock.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			CustomerID:      customer.ID,
			OrderTime:       now,
			TotalAmount:     total,
			Status:          model.OrderStatusOrdered,
			ShippingAddress: in.ShippingAddress,
			ShippingCode:    in.ShippingCode,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		created := model.Order{
			ID:              orderID,
			CustomerID:      customer.ID,
			OrderTime:       now,
			TotalAmount:     total,
			Status:          model.OrderStatusOrdered,
			ShippingAddress: in.ShippingAddress,
			ShippingCode:    in.ShippingCode,
		}
		out = toOrderOutput(created, email, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// いなければ作る（upsert）
func (u *OrderUsecase) getOrCreateCustomer(ctx context.Context, r repo.TxRepos, email string) (model.Customer, error) {
	c, err := r.Customers().FindByEmail(ctx, email)
	if err == nil {
		return c, nil
	}
	if err != repo.ErrNotFound {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}

	id, err := r.Customers().Create(ctx, model.Customer{Email: email})
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return model.Customer{ID: id, Email: email}, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, CodeNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		c, err := r.Customers().FindByID(ctx, o.CustomerID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		out = toOrderOutput(o, c.Email, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) UpdateShippingInfo(ctx context.Context, orderID int64, in UpdateShippingInput) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid id")
	}
	if err := validator.ValidateShippingAddress(in.ShippingAddress); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, err.Error())
	}
	if err := validator.ValidateShippingCode(in.ShippingCode); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, err.Error())
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, CodeNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		//ORDERED / PAID 以外は修正不可
		if !o.Status.Editable() {
			return NewHTTPError(http.StatusConflict, CodeInvalidState,
				fmt.Sprintf("cannot edit shipping info in status %s", o.Status))
		}

		if err := r.Orders().UpdateShippingInfo(ctx, orderID, in.ShippingAddress, in.ShippingCode); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		c, err := r.Customers().FindByID(ctx, o.CustomerID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		o.ShippingAddress = in.ShippingAddress
		o.ShippingCode = in.ShippingCode
		out = toOrderOutput(o, c.Email, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) Cancel(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, CodeNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		if !o.Status.Cancelable() {
			return NewHTTPError(http.StatusConflict, CodeInvalidState,
				fmt.Sprintf("cannot cancel order in status %s", o.Status))
		}

		//明細→注文の順で消す（孤児を残さない）
		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}
		return nil
	})
}

func (u *OrderUsecase) ChangeStatus(ctx context.Context, orderID int64, status model.OrderStatus) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid id")
	}

	var out OrderOutput
	var email string

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, CodeNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, status); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		c, err := r.Customers().FindByID(ctx, o.CustomerID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}

		email = c.Email
		o.Status = status
		out = toOrderOutput(o, email, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	//メールはコミット後に非同期で送る。失敗してもステータス変更は成立。
	go func() {
		if err := u.notifier.SendStatusMail(email, status); err != nil {
			slog.Error("status mail failed", "order_id", orderID, "to", email, "status", status, "error", err)
		}
	}()

	return out, nil
}

func (u *OrderUsecase) ProductSummaries(ctx context.Context, email string) ([]repo.ProductSummaryRow, error) {
	if err := validator.ValidateEmail(email); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, CodeValidation, err.Error())
	}

	var rows []repo.ProductSummaryRow
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		rows, err = r.OrderItems().ProductSummaries(ctx, strings.TrimSpace(email))
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (u *OrderUsecase) ProductDetails(ctx context.Context, email string, productID int64) ([]repo.ProductDetailRow, error) {
	if err := validator.ValidateEmail(email); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, CodeValidation, err.Error())
	}
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, CodeValidation, "invalid product id")
	}

	var rows []repo.ProductDetailRow
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		rows, err = r.OrderItems().ProductDetails(ctx, strings.TrimSpace(email), productID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func toOrderOutput(o model.Order, email string, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			Quantity:     it.Quantity,
			PricePerItem: it.UnitPrice,
			SubTotal:     it.UnitPrice * it.Quantity,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		Email:           email,
		OrderTime:       o.OrderTime,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		ShippingAddress: o.ShippingAddress,
		ShippingCode:    o.ShippingCode,
		Items:           outItems,
	}
}
