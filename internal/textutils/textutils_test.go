package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase passthrough", "valor", "valor"},
		{"uppercase", "VALOR", "valor"},
		{"accents stripped", "Identificación", "identificacion"},
		{"fecha elaboracion header", "Fecha Elaboración", "fecha elaboracion"},
		{"inner whitespace collapsed", "  No.   Factura \t Proveedor ", "no. factura proveedor"},
		{"tilde n", "Año", "ano"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeLabel(tc.input))
		})
	}
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "a b c", CollapseSpaces("a   b\t\tc"))
	assert.Equal(t, "", CollapseSpaces("  "))
}
