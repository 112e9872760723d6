package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  error
	}{
		{"valid", "test@test.com", nil},
		{"empty", "", ErrInvalidEmail},
		{"no at sign", "test.test.com", ErrInvalidEmail},
		{"no domain", "test@", ErrInvalidEmail},
		{"display name not allowed", "Tester <test@test.com>", ErrInvalidEmail},
		{"too long", strings.Repeat("t", 100) + "@test.com", ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateEmail(tt.email))
		})
	}
}

func TestValidateShippingAddress(t *testing.T) {
	assert.NoError(t, ValidateShippingAddress("부산시 주소1"))
	assert.Equal(t, ErrInvalidShippingAddress, ValidateShippingAddress(""))
	assert.Equal(t, ErrInvalidShippingAddress, ValidateShippingAddress(" a "))

	assert.NoError(t, ValidateShippingAddress(strings.Repeat("a", 255)))
	assert.Equal(t, ErrInvalidShippingAddress, ValidateShippingAddress(strings.Repeat("a", 256)))
}

func TestValidateShippingAddress_CountsCharactersNotBytes(t *testing.T) {
	//86文字（258バイト）の韓国語住所は255文字以内として通る
	assert.NoError(t, ValidateShippingAddress(strings.Repeat("부", 86)))
	assert.NoError(t, ValidateShippingAddress(strings.Repeat("부", 255)))
	assert.Equal(t, ErrInvalidShippingAddress, ValidateShippingAddress(strings.Repeat("부", 256)))

	//1文字（3バイト）は最小2文字に満たない
	assert.Equal(t, ErrInvalidShippingAddress, ValidateShippingAddress("부"))
	assert.NoError(t, ValidateShippingAddress("부산"))
}

func TestValidateShippingCode(t *testing.T) {
	assert.NoError(t, ValidateShippingCode("12345"))
	assert.Equal(t, ErrInvalidShippingCode, ValidateShippingCode("1234"))
	assert.Equal(t, ErrInvalidShippingCode, ValidateShippingCode("123456"))
	assert.Equal(t, ErrInvalidShippingCode, ValidateShippingCode("12a45"))
	assert.Equal(t, ErrInvalidShippingCode, ValidateShippingCode(""))
}

func TestValidateOrderItem(t *testing.T) {
	assert.NoError(t, ValidateOrderItem(1, 1))
	assert.Equal(t, ErrInvalidProductID, ValidateOrderItem(0, 1))
	assert.Equal(t, ErrInvalidProductID, ValidateOrderItem(-1, 1))
	assert.Equal(t, ErrInvalidQuantity, ValidateOrderItem(1, 0))
	assert.Equal(t, ErrInvalidQuantity, ValidateOrderItem(1, -2))
}
