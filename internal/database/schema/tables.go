// Package schema holds the SQL definitions for the shared CRM database.
// All business tables carry a tenant_id column; isolation is enforced by
// query scoping, with uniqueness constraints keyed per tenant.
package schema

// TableDefinitions are executed in order at startup.
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS tenants (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(63) NOT NULL UNIQUE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		name VARCHAR(255),
		role VARCHAR(20) NOT NULL DEFAULT 'member',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		CONSTRAINT uq_user_email_tenant UNIQUE (email, tenant_id)
	)`,

	`CREATE TABLE IF NOT EXISTS websites (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		domain VARCHAR(255) NOT NULL,
		name VARCHAR(255),
		tracking_id VARCHAR(64) NOT NULL UNIQUE,
		is_system BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		CONSTRAINT uq_website_tenant_domain UNIQUE (tenant_id, domain)
	)`,

	`CREATE TABLE IF NOT EXISTS contacts (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		website_id UUID NOT NULL REFERENCES websites(id),
		email VARCHAR(255),
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(50),
		source VARCHAR(255),
		status VARCHAR(20) NOT NULL DEFAULT 'new',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	// The deduplication key. Partial so email-less contacts never collide.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contact_tenant_email
		ON contacts (tenant_id, email) WHERE email IS NOT NULL`,

	`CREATE INDEX IF NOT EXISTS ix_contact_tenant_created
		ON contacts (tenant_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS forms (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		website_id UUID NOT NULL REFERENCES websites(id),
		name VARCHAR(255) NOT NULL,
		settings JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS form_fields (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		form_id UUID NOT NULL REFERENCES forms(id) ON DELETE CASCADE,
		key VARCHAR(100) NOT NULL,
		label VARCHAR(255) NOT NULL,
		field_type VARCHAR(20) NOT NULL,
		required BOOLEAN NOT NULL DEFAULT FALSE,
		sort_order INTEGER NOT NULL DEFAULT 0,
		options JSONB,
		placeholder VARCHAR(255)
	)`,

	`CREATE TABLE IF NOT EXISTS form_submissions (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		website_id UUID NOT NULL REFERENCES websites(id),
		form_id UUID NOT NULL REFERENCES forms(id),
		data JSONB NOT NULL DEFAULT '{}',
		meta JSONB,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS deals (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		contact_id UUID NOT NULL REFERENCES contacts(id),
		title VARCHAR(255) NOT NULL,
		value NUMERIC(14,2) NOT NULL DEFAULT 0,
		stage VARCHAR(20) NOT NULL DEFAULT 'lead',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS ix_deal_tenant_created
		ON deals (tenant_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		contact_id UUID NOT NULL REFERENCES contacts(id),
		user_id UUID REFERENCES users(id),
		type VARCHAR(20) NOT NULL DEFAULT 'note',
		content TEXT,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS ix_activity_tenant_created
		ON activities (tenant_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS audit_logs (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		user_id UUID,
		action VARCHAR(100) NOT NULL,
		entity_type VARCHAR(50),
		entity_id UUID,
		metadata JSONB,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS ix_audit_tenant_created
		ON audit_logs (tenant_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS webhook_subscriptions (
		id UUID PRIMARY KEY,
		tenant_id UUID NOT NULL REFERENCES tenants(id),
		url VARCHAR(2048) NOT NULL,
		secret VARCHAR(255) NOT NULL,
		events JSONB NOT NULL DEFAULT '[]',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,
}
