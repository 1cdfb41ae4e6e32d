package normalize

import (
	"backoffice/internal/model"
)

// DashboardStats unwraps a stats response. Missing counters stay zero and recent orders go through
// the same normalization as the orders table.
func (n *Normalizer) DashboardStats(raw []byte) (model.DashboardStats, error) {
	rec, err := UnwrapObject(raw)
	if err != nil {
		n.logger.Warn().Err(err).Msg("dashboard stats response has an unexpected shape")
		return model.DashboardStats{RecentOrders: []model.Order{}}, err
	}

	stats := model.DashboardStats{RecentOrders: []model.Order{}}
	if total, ok := dec(pick(rec, "totalSales", "total_sales", "sales", "revenue", "ventas")); ok {
		stats.TotalSales = total
	}
	stats.OrderCount, _ = integer(pick(rec, "orderCount", "order_count", "totalOrders", "total_orders", "orders"))
	stats.CustomerCount, _ = integer(pick(rec, "customerCount", "customer_count", "totalCustomers", "total_customers", "customers", "users"))
	stats.ProductCount, _ = integer(pick(rec, "productCount", "product_count", "totalProducts", "total_products", "products"))
	stats.PendingOrders, _ = integer(pick(rec, "pendingOrders", "pending_orders", "pending"))

	if recent := pick(rec, "recentOrders", "recent_orders", "latestOrders", "latest_orders"); recent != nil {
		records, err := UnwrapListValue(recent)
		if err != nil {
			n.logger.Warn().Err(err).Msg("recent orders have an unexpected shape")
		}
		for _, r := range records {
			stats.RecentOrders = append(stats.RecentOrders, n.Order(r).Order)
		}
	}
	return stats, nil
}
