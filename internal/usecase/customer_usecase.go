package usecase

import (
	"context"
	"net/http"
	"strings"

	repo "app/internal/repository"
	"app/internal/validator"
)

type CustomerUsecase struct {
	customerRepo repo.CustomerRepository
}

func NewCustomerUsecase(customerRepo repo.CustomerRepository) *CustomerUsecase {
	return &CustomerUsecase{customerRepo: customerRepo}
}

type CustomerExistsOutput struct {
	Exists bool `json:"exists"`
}

func (u *CustomerUsecase) ExistsByEmail(ctx context.Context, email string) (CustomerExistsOutput, error) {
	if err := validator.ValidateEmail(email); err != nil {
		return CustomerExistsOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidation, err.Error())
	}

	exists, err := u.customerRepo.ExistsByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return CustomerExistsOutput{}, NewHTTPError(http.StatusInternalServerError, CodeInternal, "db error")
	}
	return CustomerExistsOutput{Exists: exists}, nil
}
