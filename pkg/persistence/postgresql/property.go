package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/persistence"
	"github.com/google/uuid"
)

// PropertyRepository handles property-related database operations.
type PropertyRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPropertyRepository creates a new property repository.
func NewPropertyRepository(db *sql.DB, logger *slog.Logger) *PropertyRepository {
	return &PropertyRepository{db: db, logger: logger}
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	query := `
		SELECT
			id
		  , company_id
		  , address
		  , city
		  , state
		  , zip_code
		  , price
		  , bedrooms
		  , bathrooms
		  , square_feet
		  , living_area_sqft
		  , days_on_market
		  , property_type
		  , seller_agent_name
		  , seller_agent_phone
		  , seller_agent_email
		  , workflow_state
		  , created_at
		  , updated_at
		FROM properties
		WHERE id = $1
	`

	var (
		property                     models.Property
		price, bedrooms, bathrooms   sql.NullFloat64
		squareFeet, livingArea, days sql.NullInt64
	)

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&property.ID,
		&property.CompanyID,
		&property.Address,
		&property.City,
		&property.State,
		&property.ZipCode,
		&price,
		&bedrooms,
		&bathrooms,
		&squareFeet,
		&livingArea,
		&days,
		&property.PropertyType,
		&property.SellerAgentName,
		&property.SellerAgentPhone,
		&property.SellerAgentEmail,
		&property.WorkflowState,
		&property.CreatedAt,
		&property.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewRecordError("GetByID", "properties", id, persistence.ErrPropertyNotFound)
		}

		return nil, persistence.NewRecordError("GetByID", "properties", id, err)
	}

	property.Price = floatPtr(price)
	property.Bedrooms = floatPtr(bedrooms)
	property.Bathrooms = floatPtr(bathrooms)
	property.SquareFeet = intPtr(squareFeet)
	property.LivingAreaSqft = intPtr(livingArea)
	property.DaysOnMarket = intPtr(days)

	return &property, nil
}

// Save inserts or replaces a property.
func (r *PropertyRepository) Save(ctx context.Context, property *models.Property) error {
	now := time.Now().UTC()

	if property.CreatedAt.IsZero() {
		property.CreatedAt = now
	}

	property.UpdatedAt = now

	if property.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate property ID: %w", err)
		}

		property.ID = id.String()
	}

	query := `
		INSERT INTO properties (id, company_id, address, city, state, zip_code, price, bedrooms,
bathrooms, square_feet, living_area_sqft, days_on_market, property_type, seller_agent_name,
seller_agent_phone, seller_agent_email, workflow_state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (id) DO UPDATE SET
			company_id = EXCLUDED.company_id,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip_code = EXCLUDED.zip_code,
			price = EXCLUDED.price,
			bedrooms = EXCLUDED.bedrooms,
			bathrooms = EXCLUDED.bathrooms,
			square_feet = EXCLUDED.square_feet,
			living_area_sqft = EXCLUDED.living_area_sqft,
			days_on_market = EXCLUDED.days_on_market,
			property_type = EXCLUDED.property_type,
			seller_agent_name = EXCLUDED.seller_agent_name,
			seller_agent_phone = EXCLUDED.seller_agent_phone,
			seller_agent_email = EXCLUDED.seller_agent_email,
			workflow_state = EXCLUDED.workflow_state,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		property.ID,
		property.CompanyID,
		property.Address,
		property.City,
		property.State,
		property.ZipCode,
		property.Price,
		property.Bedrooms,
		property.Bathrooms,
		property.SquareFeet,
		property.LivingAreaSqft,
		property.DaysOnMarket,
		property.PropertyType,
		property.SellerAgentName,
		property.SellerAgentPhone,
		property.SellerAgentEmail,
		string(property.WorkflowState),
		property.CreatedAt,
		property.UpdatedAt,
	)
	if err != nil {
		return persistence.NewRecordError("Save", "properties", property.ID, err)
	}

	return nil
}

// UpdateWorkflowState sets the workflow_state column of one property.
func (r *PropertyRepository) UpdateWorkflowState(ctx context.Context, id string, state models.WorkflowState) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE properties SET workflow_state = $2, updated_at = $3 WHERE id = $1",
		id, string(state), time.Now().UTC(),
	)
	if err != nil {
		return persistence.NewRecordError("UpdateWorkflowState", "properties", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewRecordError("UpdateWorkflowState", "properties", id, err)
	}

	if affected == 0 {
		return persistence.NewRecordError("UpdateWorkflowState", "properties", id, persistence.ErrPropertyNotFound)
	}

	return nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}

	return &v.Float64
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}

	i := int(v.Int64)

	return &i
}
