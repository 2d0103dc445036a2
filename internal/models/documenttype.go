package models

import "strings"

// DocumentType is one of the four SIIGO accounting document categories.
type DocumentType string

const (
	DocTypeFC DocumentType = "FC" // Purchase invoice (factura de compra)
	DocTypeND DocumentType = "ND" // Debit note (nota débito)
	DocTypeDS DocumentType = "DS" // Support document (documento soporte)
	DocTypeRP DocumentType = "RP" // Payment receipt (recibo de pago)
)

// DocumentTypes lists the four known types in display order.
var DocumentTypes = []DocumentType{DocTypeFC, DocTypeND, DocTypeDS, DocTypeRP}

// Classify derives the document type from a document-code string. The type
// prefix is recognized either at the start of the code ("FC-00123") or as a
// "XX-" token anywhere in it ("xx-FC-55"), case-insensitively. Codes matching
// none of the four prefixes report ok=false; there is no retained unknown
// type. Classification is pure: repeated calls on the same input always
// return the same result.
func Classify(documentCode string) (DocumentType, bool) {
	code := strings.ToUpper(strings.TrimSpace(documentCode))
	if code == "" {
		return "", false
	}
	for _, dt := range DocumentTypes {
		token := string(dt) + "-"
		if strings.HasPrefix(code, token) {
			return dt, true
		}
		if strings.Contains(code, "-"+token) {
			return dt, true
		}
	}
	return "", false
}

// Valid reports whether t is one of the four known types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocTypeFC, DocTypeND, DocTypeDS, DocTypeRP:
		return true
	}
	return false
}

// Name returns the human-readable Spanish name for the type.
func (t DocumentType) Name() string {
	if n, ok := DocumentTypeNames[t]; ok {
		return n
	}
	return string(t)
}
