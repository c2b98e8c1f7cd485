package migrations

import (
	"context"
	"database/sql"
)

// All returns the full ordered migration list. Append only; never edit or
// reorder released steps.
func All() []Migration {
	return []Migration{
		{Version: 1, Name: "base schema", Apply: baseSchema},
		{Version: 2, Name: "user contact columns", Apply: userContactColumns},
		{Version: 3, Name: "service lifecycle columns", Apply: serviceLifecycleColumns},
		{Version: 4, Name: "tickets", Apply: tickets},
		{Version: 5, Name: "personnel and events", Apply: personnelAndEvents},
		{Version: 6, Name: "property financial columns", Apply: propertyFinancialColumns},
		{Version: 7, Name: "ticket admin workflow columns", Apply: ticketAdminWorkflowColumns},
		{Version: 8, Name: "event reminder column", Apply: eventReminderColumn},
		{Version: 9, Name: "quote builder tables", Apply: quoteBuilderTables},
	}
}

func baseSchema(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS properties (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		zip TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'owner',
		property_id TEXT REFERENCES properties(id),
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS property_services (
		id TEXT PRIMARY KEY,
		property_id TEXT NOT NULL REFERENCES properties(id),
		category TEXT NOT NULL,
		frequency TEXT NOT NULL DEFAULT '',
		times_per_year INTEGER NOT NULL DEFAULT 0,
		each_time_cost TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_property_services_property
		ON property_services(property_id);

	CREATE TABLE IF NOT EXISTS service_attachments (
		id TEXT PRIMARY KEY,
		service_id TEXT NOT NULL REFERENCES property_services(id),
		file_name TEXT NOT NULL,
		file_path TEXT NOT NULL,
		content_type TEXT NOT NULL DEFAULT '',
		size_bytes INTEGER NOT NULL DEFAULT 0,
		uploaded_by TEXT NOT NULL DEFAULT '',
		uploaded_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_service_attachments_service
		ON service_attachments(service_id);

	CREATE TABLE IF NOT EXISTS price_master (
		id TEXT PRIMARY KEY,
		region TEXT NOT NULL,
		category TEXT NOT NULL,
		frequency TEXT NOT NULL DEFAULT '',
		times_per_year INTEGER NOT NULL DEFAULT 0,
		suggested_rate TEXT NOT NULL DEFAULT '0',
		notes TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_price_master_region_category
		ON price_master(region, category);
	`)
	return err
}

func userContactColumns(ctx context.Context, tx *sql.Tx) error {
	if err := addColumn(ctx, tx, "users", "email", `TEXT NOT NULL DEFAULT ''`); err != nil {
		return err
	}
	return addColumn(ctx, tx, "users", "phone", `TEXT NOT NULL DEFAULT ''`)
}

func serviceLifecycleColumns(ctx context.Context, tx *sql.Tx) error {
	cols := []struct{ name, decl string }{
		{"status", `TEXT NOT NULL DEFAULT 'Scheduled'`},
		{"start_date", `TEXT`},
		{"end_date", `TEXT`},
		{"notes", `TEXT NOT NULL DEFAULT ''`},
		{"updated_by", `TEXT NOT NULL DEFAULT ''`},
	}
	for _, c := range cols {
		if err := addColumn(ctx, tx, "property_services", c.name, c.decl); err != nil {
			return err
		}
	}
	return nil
}

func tickets(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS tickets (
		id TEXT PRIMARY KEY,
		property_id TEXT NOT NULL REFERENCES properties(id),
		owner_id TEXT NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Open',
		priority TEXT NOT NULL DEFAULT 'Medium',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tickets_property ON tickets(property_id);
	CREATE INDEX IF NOT EXISTS idx_tickets_owner ON tickets(owner_id);

	CREATE TABLE IF NOT EXISTS ticket_attachments (
		id TEXT PRIMARY KEY,
		ticket_id TEXT NOT NULL REFERENCES tickets(id),
		file_name TEXT NOT NULL,
		file_path TEXT NOT NULL,
		content_type TEXT NOT NULL DEFAULT '',
		size_bytes INTEGER NOT NULL DEFAULT 0,
		uploaded_by TEXT NOT NULL DEFAULT '',
		uploaded_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_ticket_attachments_ticket
		ON ticket_attachments(ticket_id);
	`)
	return err
}

func personnelAndEvents(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS service_persons (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		role_title TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS service_events (
		id TEXT PRIMARY KEY,
		property_id TEXT NOT NULL REFERENCES properties(id),
		service_id TEXT REFERENCES property_services(id),
		provider_id TEXT REFERENCES service_persons(id),
		service_category TEXT NOT NULL,
		scheduled_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Scheduled',
		followup_required INTEGER NOT NULL DEFAULT 0,
		followup_notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_service_events_property
		ON service_events(property_id);
	CREATE INDEX IF NOT EXISTS idx_service_events_date
		ON service_events(scheduled_date);
	`)
	return err
}

func propertyFinancialColumns(ctx context.Context, tx *sql.Tx) error {
	if err := addColumn(ctx, tx, "properties", "annual_quote", `TEXT NOT NULL DEFAULT '0'`); err != nil {
		return err
	}
	return addColumn(ctx, tx, "properties", "annual_credited", `TEXT NOT NULL DEFAULT '0'`)
}

func ticketAdminWorkflowColumns(ctx context.Context, tx *sql.Tx) error {
	return addColumn(ctx, tx, "tickets", "admin_comment", `TEXT NOT NULL DEFAULT ''`)
}

func eventReminderColumn(ctx context.Context, tx *sql.Tx) error {
	return addColumn(ctx, tx, "service_events", "last_reminder_at", `TEXT`)
}

func quoteBuilderTables(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS regions (
		id TEXT PRIMARY KEY,
		state TEXT NOT NULL,
		city TEXT NOT NULL,
		tier TEXT NOT NULL,
		cost_factor TEXT NOT NULL DEFAULT '1',
		rate_factor TEXT NOT NULL DEFAULT '1',
		UNIQUE(state, city, tier)
	);

	CREATE TABLE IF NOT EXISTS service_catalog (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		default_times_per_year INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS region_service_rates (
		id TEXT PRIMARY KEY,
		region_id TEXT NOT NULL REFERENCES regions(id),
		catalog_item_id TEXT NOT NULL REFERENCES service_catalog(id),
		min_sqft INTEGER NOT NULL DEFAULT 0,
		max_sqft INTEGER NOT NULL DEFAULT 0,
		price_per_visit TEXT NOT NULL DEFAULT '0'
	);
	CREATE INDEX IF NOT EXISTS idx_region_service_rates_lookup
		ON region_service_rates(region_id, catalog_item_id);

	CREATE TABLE IF NOT EXISTS quotes (
		id TEXT PRIMARY KEY,
		customer_name TEXT NOT NULL DEFAULT '',
		customer_email TEXT NOT NULL DEFAULT '',
		property_name TEXT NOT NULL DEFAULT '',
		region_label TEXT NOT NULL DEFAULT '',
		size_band TEXT NOT NULL DEFAULT '',
		sqft INTEGER NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Draft',
		annual_total TEXT NOT NULL DEFAULT '0',
		monthly_total TEXT NOT NULL DEFAULT '0',
		estimated_cost TEXT NOT NULL DEFAULT '0',
		margin TEXT NOT NULL DEFAULT '0',
		margin_pct TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS quote_line_items (
		id TEXT PRIMARY KEY,
		quote_id TEXT NOT NULL REFERENCES quotes(id),
		category TEXT NOT NULL,
		frequency TEXT NOT NULL DEFAULT '',
		times_per_year INTEGER NOT NULL DEFAULT 0,
		price_per_visit TEXT NOT NULL DEFAULT '0',
		included INTEGER NOT NULL DEFAULT 1,
		line_total TEXT NOT NULL DEFAULT '0'
	);
	CREATE INDEX IF NOT EXISTS idx_quote_line_items_quote
		ON quote_line_items(quote_id);
	`)
	return err
}
