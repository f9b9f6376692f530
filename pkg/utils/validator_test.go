package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type phoneFixture struct {
	Phone string `validate:"required,phone"`
}

func TestPhoneValidation(t *testing.T) {
	valid := []string{"+573001234567", "3001234567", "+1 (305) 555-0100"}
	for _, phone := range valid {
		assert.NoError(t, ValidateStruct(&phoneFixture{Phone: phone}), phone)
	}

	invalid := []string{"", "abc", "+57", "+57300123456789012345678"}
	for _, phone := range invalid {
		assert.Error(t, ValidateStruct(&phoneFixture{Phone: phone}), phone)
	}
}

type statusFixture struct {
	Status string `validate:"required,parcel_status"`
}

func TestParcelStatusValidation(t *testing.T) {
	for _, status := range []string{"COMPRADO", "EN_ENVIO", "LLEGO"} {
		assert.NoError(t, ValidateStruct(&statusFixture{Status: status}), status)
	}

	for _, status := range []string{"LOST", "en_envio", "EN ENVIO"} {
		assert.Error(t, ValidateStruct(&statusFixture{Status: status}), status)
	}
}

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "laura@example.com", SanitizeEmail("  LAURA@Example.COM "))
	assert.Equal(t, "laura@example.com", SanitizeEmail("<b>laura@example.com</b>"))
}

func TestSanitizePhone(t *testing.T) {
	assert.Equal(t, "+57 300-123(45)67", SanitizePhone(" +57 300-123(45)67 "))
	assert.Equal(t, "3001234567", SanitizePhone("abc3001234567xyz"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Secreto123"))

	assert.Error(t, ValidatePassword("corto1A"))
	assert.Error(t, ValidatePassword("sinmayuscula1"))
	assert.Error(t, ValidatePassword("SINMINUSCULA1"))
	assert.Error(t, ValidatePassword("SinNumeros"))
}
