package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE automations (
				id VARCHAR(255) PRIMARY KEY,
				company_id VARCHAR(255) NOT NULL DEFAULT '',
				name VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				is_active BOOLEAN NOT NULL DEFAULT false,
				flow_data JSONB,
				trigger_count INTEGER NOT NULL DEFAULT 0,
				success_count INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_automations_company_id ON automations(company_id);
			CREATE INDEX idx_automations_is_active ON automations(is_active);

			CREATE TABLE properties (
				id VARCHAR(255) PRIMARY KEY,
				company_id VARCHAR(255) NOT NULL DEFAULT '',
				address TEXT NOT NULL DEFAULT '',
				city VARCHAR(255) NOT NULL DEFAULT '',
				state VARCHAR(64) NOT NULL DEFAULT '',
				zip_code VARCHAR(32) NOT NULL DEFAULT '',
				price DOUBLE PRECISION,
				bedrooms DOUBLE PRECISION,
				bathrooms DOUBLE PRECISION,
				square_feet INTEGER,
				living_area_sqft INTEGER,
				days_on_market INTEGER,
				property_type VARCHAR(64) NOT NULL DEFAULT '',
				seller_agent_name VARCHAR(255) NOT NULL DEFAULT '',
				seller_agent_phone VARCHAR(64) NOT NULL DEFAULT '',
				seller_agent_email VARCHAR(255) NOT NULL DEFAULT '',
				workflow_state VARCHAR(64) NOT NULL DEFAULT '',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_properties_company_id ON properties(company_id);
			CREATE INDEX idx_properties_workflow_state ON properties(workflow_state);
		`,
		2: `
			-- Migration 2: activities and the run audit log
			CREATE TABLE activities (
				id UUID PRIMARY KEY,
				company_id VARCHAR(255) NOT NULL DEFAULT '',
				property_id VARCHAR(255) NOT NULL,
				automation_id VARCHAR(255) NOT NULL DEFAULT '',
				activity_type VARCHAR(64) NOT NULL,
				title TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				due_date TIMESTAMP WITH TIME ZONE NOT NULL,
				status VARCHAR(32) NOT NULL CHECK (status IN ('pending', 'completed')),
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_activities_property_id ON activities(property_id);
			CREATE INDEX idx_activities_due_date ON activities(due_date);

			CREATE TABLE automation_logs (
				id UUID PRIMARY KEY,
				automation_id VARCHAR(255) NOT NULL,
				company_id VARCHAR(255) NOT NULL DEFAULT '',
				trigger_type VARCHAR(64) NOT NULL DEFAULT '',
				property_id VARCHAR(255),
				status VARCHAR(32) NOT NULL,
				actions_executed JSONB NOT NULL DEFAULT '[]',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_automation_logs_automation_id_created_at ON automation_logs(automation_id, created_at DESC);
		`,
	}
}
