package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Code: he.Code, Message: he.Message})
	}

	//500は中身を漏らさない
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    usecase.CodeInternal,
		Message: "internal error",
	})
}
