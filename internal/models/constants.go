package models

// DefaultCurrency is assumed when a sheet has no currency column.
const DefaultCurrency = "COP"

// DocumentTypeNames maps each type to its display name.
var DocumentTypeNames = map[DocumentType]string{
	DocTypeFC: "Factura de Compra",
	DocTypeND: "Nota Débito",
	DocTypeDS: "Documento Soporte",
	DocTypeRP: "Recibo de Pago",
}

// DocumentTypeColors maps each type to the hex color used by dashboards.
var DocumentTypeColors = map[DocumentType]string{
	DocTypeFC: "#2563eb",
	DocTypeND: "#dc2626",
	DocTypeDS: "#16a34a",
	DocTypeRP: "#9333ea",
}

// MonthNames holds the Spanish month names indexed by Record.Month (0-11).
var MonthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// File permissions
const (
	PermissionStoreFile = 0600
	PermissionDirectory = 0750
	PermissionExportCSV = 0644
)
