package models

// Workflow labels derived from amount/paid pairs. The emoji-prefixed values
// match what the spreadsheet's conditional formatting produced.
const (
	InvoiceStatusUnpaid  = "❌未入金"
	InvoiceStatusPartial = "⚠一部入金"
	InvoiceStatusPaid    = "✅入金済"

	PaymentStatusUnpaid  = "❌未支払"
	PaymentStatusPartial = "⚠一部支払"
	PaymentStatusPaid    = "✅支払済"
)

// ClampRemaining computes the non-negative remainder invariant shared by
// invoices and payments: max(total - paid, 0).
func ClampRemaining(total, paid float64) float64 {
	remaining := total - paid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// DeriveInvoiceStatus returns the collection status for an invoice.
func DeriveInvoiceStatus(invoiceAmount, paidAmount float64) string {
	if invoiceAmount <= 0 {
		return InvoiceStatusUnpaid
	}
	if ClampRemaining(invoiceAmount, paidAmount) <= 0 {
		return InvoiceStatusPaid
	}
	if paidAmount > 0 {
		return InvoiceStatusPartial
	}
	return InvoiceStatusUnpaid
}

// DerivePaymentStatus returns the disbursement status for a payment.
func DerivePaymentStatus(orderedAmount, paidAmount float64) string {
	if orderedAmount <= 0 {
		return PaymentStatusUnpaid
	}
	if ClampRemaining(orderedAmount, paidAmount) <= 0 {
		return PaymentStatusPaid
	}
	if paidAmount > 0 {
		return PaymentStatusPartial
	}
	return PaymentStatusUnpaid
}
