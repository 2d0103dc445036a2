package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected DocumentType
		ok       bool
	}{
		{"FC prefix at start", "FC-00123", DocTypeFC, true},
		{"ND prefix at start", "ND-2", DocTypeND, true},
		{"DS prefix at start", "DS-991", DocTypeDS, true},
		{"RP prefix at start", "RP-17", DocTypeRP, true},
		{"prefix as token anywhere", "xx-FC-55", DocTypeFC, true},
		{"lowercase prefix", "fc-1", DocTypeFC, true},
		{"leading whitespace", "  FC-8  ", DocTypeFC, true},
		{"unknown prefix", "XX-00123", "", false},
		{"prefix without separator", "FC00123", "", false},
		{"empty code", "", "", false},
		{"blank code", "   ", "", false},
		{"letters embedded without token", "XFCX-1", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dt, ok := Classify(tc.code)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, dt)
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	first, okFirst := Classify("xx-FC-55")
	for i := 0; i < 100; i++ {
		dt, ok := Classify("xx-FC-55")
		assert.Equal(t, first, dt)
		assert.Equal(t, okFirst, ok)
	}
}

func TestDocumentTypeValid(t *testing.T) {
	for _, dt := range DocumentTypes {
		assert.True(t, dt.Valid())
	}
	assert.False(t, DocumentType("XX").Valid())
	assert.False(t, DocumentType("").Valid())
}

func TestDocumentTypeName(t *testing.T) {
	assert.Equal(t, "Factura de Compra", DocTypeFC.Name())
	assert.Equal(t, "XX", DocumentType("XX").Name())
}
