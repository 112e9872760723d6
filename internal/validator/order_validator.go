package validator

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// 入力が不正
	ErrInvalidEmail           = errors.New("invalid email format")
	ErrInvalidShippingAddress = errors.New("shipping address must be 2 to 255 characters")
	ErrInvalidShippingCode    = errors.New("shipping code must be 5 digits")
	ErrEmptyItems             = errors.New("items must not be empty")
	ErrInvalidProductID       = errors.New("invalid product id")
	ErrInvalidQuantity        = errors.New("quantity must be at least 1")
)

// 郵便番号は5桁の数字
var shippingCodeRe = regexp.MustCompile(`^\d{5}$`)

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if n := utf8.RuneCountInString(email); n < 2 || n > 100 {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

func ValidateShippingAddress(address string) error {
	//バイト数ではなく文字数で数える（住所は韓国語で1文字3バイト）
	n := utf8.RuneCountInString(strings.TrimSpace(address))
	if n < 2 || n > 255 {
		return ErrInvalidShippingAddress
	}
	return nil
}

func ValidateShippingCode(code string) error {
	if !shippingCodeRe.MatchString(code) {
		return ErrInvalidShippingCode
	}
	return nil
}

func ValidateOrderItem(productID int64, quantity int64) error {
	if productID <= 0 {
		return ErrInvalidProductID
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}
