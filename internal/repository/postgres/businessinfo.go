package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/pkg/database"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
)

const businessInfoColumns = `id, name, tagline, about, contact_email, contact_phone, address,
		       whatsapp, facebook, instagram, twitter, hero_title, hero_subtitle, updated_at`

// BusinessInfoRepository implements repository.BusinessInfoRepository using
// a single-row PostgreSQL table.
type BusinessInfoRepository struct {
	pool database.DBTX
}

// NewBusinessInfoRepository creates a new PostgreSQL-backed business info repository.
func NewBusinessInfoRepository(pool database.DBTX) *BusinessInfoRepository {
	return &BusinessInfoRepository{pool: pool}
}

// Get returns the stored business info.
func (r *BusinessInfoRepository) Get(ctx context.Context) (_ *domain.BusinessInfo, err error) {
	query := `
		SELECT ` + businessInfoColumns + `
		FROM business_info
		LIMIT 1`

	ctx, end := database.TraceQuery(ctx, "GetBusinessInfo", query)
	defer func() { end(err) }()

	var b domain.BusinessInfo
	err = r.pool.QueryRow(ctx, query).Scan(
		&b.ID,
		&b.Name,
		&b.Tagline,
		&b.About,
		&b.ContactEmail,
		&b.ContactPhone,
		&b.Address,
		&b.WhatsApp,
		&b.Facebook,
		&b.Instagram,
		&b.Twitter,
		&b.HeroTitle,
		&b.HeroSubtitle,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("business info", "default")
		}
		return nil, fmt.Errorf("get business info: %w", err)
	}

	return &b, nil
}

// Save inserts the business info row or replaces the existing one.
func (r *BusinessInfoRepository) Save(ctx context.Context, b *domain.BusinessInfo) (err error) {
	query := `
		INSERT INTO business_info (` + businessInfoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (singleton) DO UPDATE
		SET name = EXCLUDED.name, tagline = EXCLUDED.tagline, about = EXCLUDED.about,
		    contact_email = EXCLUDED.contact_email, contact_phone = EXCLUDED.contact_phone,
		    address = EXCLUDED.address, whatsapp = EXCLUDED.whatsapp, facebook = EXCLUDED.facebook,
		    instagram = EXCLUDED.instagram, twitter = EXCLUDED.twitter, hero_title = EXCLUDED.hero_title,
		    hero_subtitle = EXCLUDED.hero_subtitle, updated_at = EXCLUDED.updated_at`

	ctx, end := database.TraceQuery(ctx, "SaveBusinessInfo", query)
	defer func() { end(err) }()

	_, err = r.pool.Exec(ctx, query,
		b.ID,
		b.Name,
		b.Tagline,
		b.About,
		b.ContactEmail,
		b.ContactPhone,
		b.Address,
		b.WhatsApp,
		b.Facebook,
		b.Instagram,
		b.Twitter,
		b.HeroTitle,
		b.HeroSubtitle,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save business info: %w", err)
	}

	return nil
}
