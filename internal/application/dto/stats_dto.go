package dto

// StatsResponse respuesta de GET /api/stats.
type StatsResponse struct {
	TotalProducts     int64          `json:"total_productos"`
	TotalUsers        int64          `json:"total_usuarios"`
	LowStock          []LowStockItem `json:"productos_stock_bajo"`
	DatabaseConnected bool           `json:"database_connected"`
}
