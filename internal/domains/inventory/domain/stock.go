package domain

// StockStatus classifies an item's stock level for display and reporting.
type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockLowStock   StockStatus = "low_stock"
	StockOutOfStock StockStatus = "out_of_stock"
)

// ClassifyStock derives the status from a (currentStock, minimumStock) pair.
// Zero stock wins over every other rule, including minimumStock == 0, and the
// low-stock boundary is inclusive: current equal to minimum counts as low.
func ClassifyStock(currentStock, minimumStock int) StockStatus {
	if currentStock <= 0 {
		return StockOutOfStock
	}
	if currentStock <= minimumStock {
		return StockLowStock
	}
	return StockInStock
}
