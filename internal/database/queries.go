package database

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (customer_name, customer_phone, customer_email, table_id, total_amount,
			status, priority, special_instructions, payment_status, estimated_ready_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	InsertOrderLineSQL = `
		INSERT INTO order_lines (order_id, menu_item_id, quantity, unit_price, total_price, special_instructions)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	SelectOrderSQL = `
		SELECT id, customer_name, customer_phone, customer_email, table_id, total_amount,
			status, priority, special_instructions, tip, tax, discount, payment_status, payment_method,
			estimated_ready_time, actual_ready_time, served_time, created_at, updated_at
		FROM orders`

	SelectOrderForUpdateSQL = SelectOrderSQL + ` WHERE id = $1 FOR UPDATE`

	UpdateOrderStatusSQL = `
		UPDATE orders
		SET status = $2, actual_ready_time = $3, served_time = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	DeleteOrderSQL = `DELETE FROM orders WHERE id = $1`

	SelectOrderLinesSQL = `
		SELECT l.id, l.order_id, l.menu_item_id, l.quantity, l.unit_price, l.total_price,
			l.special_instructions, l.created_at, m.name, m.image_url
		FROM order_lines l
		JOIN menu_items m ON m.id = l.menu_item_id
		WHERE l.order_id = ANY($1)
		ORDER BY l.created_at ASC`

	// Display ordering for both kitchen projections lives in the order
	// service; the queries only filter.
	SelectKitchenActiveOrdersSQL = SelectOrderSQL + `
		WHERE status IN ('PENDING', 'CONFIRMED', 'PREPARING')
		ORDER BY created_at ASC`

	SelectReadyOrdersSQL = SelectOrderSQL + `
		WHERE status = 'READY'
		ORDER BY created_at ASC`
)

// Table queries
const (
	InsertTableSQL = `
		INSERT INTO tables (number, capacity, status, is_occupied, qr_code, location, features)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	SelectTableSQL = `
		SELECT id, number, capacity, status, is_occupied, qr_code, location, features,
			current_customers, current_order, current_reservation, session_start_time,
			total_session_amount, last_cleaned, created_at, updated_at
		FROM tables`

	SelectTableForUpdateSQL = SelectTableSQL + ` WHERE id = $1 FOR UPDATE`

	UpdateTableSQL = `
		UPDATE tables
		SET number = $2, capacity = $3, status = $4, is_occupied = $5, qr_code = $6,
			location = $7, features = $8, current_customers = $9, current_order = $10,
			current_reservation = $11, session_start_time = $12, total_session_amount = $13,
			last_cleaned = $14, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	DeleteTableSQL = `DELETE FROM tables WHERE id = $1`

	TableNumberExistsSQL = `SELECT EXISTS (SELECT 1 FROM tables WHERE number = $1 AND id <> $2)`
)

// Menu queries
const (
	InsertMenuItemSQL = `
		INSERT INTO menu_items (name, description, price, category, image_url, is_available, is_featured,
			ingredients, allergens, dietary_tags, preparation_time_minutes, calories, spice_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`

	SelectMenuItemSQL = `
		SELECT id, name, description, price, category, image_url, is_available, is_featured,
			ingredients, allergens, dietary_tags, preparation_time_minutes, calories, spice_level,
			rating, review_count, created_at, updated_at
		FROM menu_items`

	UpdateMenuItemSQL = `
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, category = $5, image_url = $6,
			is_available = $7, is_featured = $8, ingredients = $9, allergens = $10,
			dietary_tags = $11, preparation_time_minutes = $12, calories = $13,
			spice_level = $14, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	UpdateMenuItemAvailabilitySQL = `
		UPDATE menu_items SET is_available = $2, updated_at = NOW() WHERE id = $1
		RETURNING updated_at`

	DeleteMenuItemSQL = `DELETE FROM menu_items WHERE id = $1`

	MenuItemNameExistsSQL = `SELECT EXISTS (SELECT 1 FROM menu_items WHERE name = $1 AND id <> $2)`
)

// Statistics queries
const (
	CountOrdersSQL         = `SELECT COUNT(*) FROM orders`
	CountOrdersSinceSQL    = `SELECT COUNT(*) FROM orders WHERE created_at >= $1`
	CountOrdersByStatusSQL = `SELECT COUNT(*) FROM orders WHERE status = $1`

	RevenueSinceSQL = `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE payment_status = 'PAID' AND created_at >= $1`

	AverageOrderValueSQL = `
		SELECT COALESCE(AVG(total_amount), 0)
		FROM orders
		WHERE payment_status = 'PAID'`

	OrderStatusBreakdownSQL   = `SELECT status, COUNT(*) FROM orders GROUP BY status`
	OrderPriorityBreakdownSQL = `SELECT priority, COUNT(*) FROM orders GROUP BY priority`

	CountMenuItemsSQL          = `SELECT COUNT(*) FROM menu_items`
	CountAvailableMenuItemsSQL = `SELECT COUNT(*) FROM menu_items WHERE is_available = TRUE`
	CountFeaturedMenuItemsSQL  = `SELECT COUNT(*) FROM menu_items WHERE is_featured = TRUE`
	AverageMenuPriceSQL        = `SELECT COALESCE(AVG(price), 0) FROM menu_items`
	MenuCategoryBreakdownSQL   = `SELECT category, COUNT(*) FROM menu_items GROUP BY category`

	CountTablesSQL         = `SELECT COUNT(*) FROM tables`
	CountOccupiedTablesSQL = `SELECT COUNT(*) FROM tables WHERE is_occupied = TRUE`
	CountTablesByStatusSQL = `SELECT COUNT(*) FROM tables WHERE status = $1`
)
