package handler

import (
	"net/http"
	"strconv"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCreateRequest struct {
	Email           string                         `json:"email"`
	ShippingAddress string                         `json:"shipping_address"`
	ShippingCode    string                         `json:"shipping_code"`
	Items           []usecase.CreateOrderItemInput `json:"items"`
}

type OrderUpdateRequest struct {
	ShippingAddress string `json:"shipping_address"`
	ShippingCode    string `json:"shipping_code"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/orders")

	g.POST("", h.create)
	g.GET("/summary", h.summaries)
	g.GET("/summary/:productId", h.details)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.cancel)
	g.PATCH("/:id/status", h.changeStatus)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: usecase.CodeValidation, Message: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateOrderInput{
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
		ShippingCode:    req.ShippingCode,
		Items:           req.Items,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: usecase.CodeValidation, Message: "invalid id"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: usecase.CodeValidation, Message: "invalid id"})
	}

	var req OrderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: usecase.CodeValidation, Message: "invalid body"})
	}

	out, err := h.uc.UpdateShippingInfo(c.Request().Context(), id, usecase.UpdateShippingInput{
		ShippingAddress: req.ShippingAddress,
		ShippingCode:    req.ShippingCode,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) cancel(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: usecase.CodeValidation, Message: "invalid id"})
	}

	if err := h.uc.Cancel(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "order canceled"})
}

func (h *OrderHandler) changeStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: usecase.CodeValidation, Message: "invalid id"})
	}

	status, err := model.ParseOrderStatus(c.QueryParam("status"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: usecase.CodeValidation, Message: err.Error()})
	}

	out, err := h.uc.ChangeStatus(c.Request().Context(), id, status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) summaries(c echo.Context) error {
	out, err := h.uc.ProductSummaries(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) details(c echo.Context) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: usecase.CodeValidation, Message: "invalid product id"})
	}

	out, err := h.uc.ProductDetails(c.Request().Context(), c.QueryParam("email"), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func parseID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
