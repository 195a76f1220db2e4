package models

// OrderStatistics aggregates order counts and revenue figures
type OrderStatistics struct {
	TotalOrders       int            `json:"total_orders"`
	TodayOrders       int            `json:"today_orders"`
	PendingOrders     int            `json:"pending_orders"`
	PreparingOrders   int            `json:"preparing_orders"`
	ReadyOrders       int            `json:"ready_orders"`
	CompletedOrders   int            `json:"completed_orders"`
	TodayRevenue      float64        `json:"today_revenue"`
	AverageOrderValue float64        `json:"average_order_value"`
	StatusBreakdown   map[string]int `json:"status_breakdown"`
	PriorityBreakdown map[string]int `json:"priority_breakdown"`
}

// MenuStatistics aggregates menu catalog figures
type MenuStatistics struct {
	TotalItems        int            `json:"total_items"`
	AvailableItems    int            `json:"available_items"`
	UnavailableItems  int            `json:"unavailable_items"`
	FeaturedItems     int            `json:"featured_items"`
	AveragePrice      float64        `json:"average_price"`
	CategoryBreakdown map[string]int `json:"category_breakdown"`
}

// TableStatistics aggregates table registry figures
type TableStatistics struct {
	TotalTables     int `json:"total_tables"`
	OccupiedTables  int `json:"occupied_tables"`
	AvailableTables int `json:"available_tables"`
	ReservedTables  int `json:"reserved_tables"`
	CleaningTables  int `json:"cleaning_tables"`
}
