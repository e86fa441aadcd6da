package settingsrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Defaults applied for websites without a settings row.
var (
	defaultPageRate   = kernel.MustMoney("12.00")
	defaultSlideRate  = kernel.MustMoney("6.00")
	defaultPointsRate = decimal.RequireFromString("0.01")
)

const defaultPointsMinimum = 100

// GormSettingsProvider implements SettingsProvider on the website_settings
// and discount_codes tables.
type GormSettingsProvider struct {
	db *gorm.DB
}

// NewGormSettingsProvider creates a new GORM settings provider.
func NewGormSettingsProvider(db *gorm.DB) *GormSettingsProvider {
	return &GormSettingsProvider{db: db}
}

// PricingConfig returns the website's pricing configuration, or the
// package defaults when the website has no settings row.
func (p *GormSettingsProvider) PricingConfig(ctx context.Context, websiteID kernel.UUID) (services.PricingConfig, error) {
	dto, err := p.row(ctx, websiteID)
	if err != nil {
		return services.PricingConfig{}, err
	}
	if dto == nil {
		return services.PricingConfig{
			WebsiteID: websiteID,
			PageRate:  defaultPageRate,
			SlideRate: defaultSlideRate,
		}, nil
	}

	pageRate, err := kernel.NewMoneyFromString(dto.PageRate)
	if err != nil {
		return services.PricingConfig{}, err
	}
	slideRate, err := kernel.NewMoneyFromString(dto.SlideRate)
	if err != nil {
		return services.PricingConfig{}, err
	}
	preferredWriterFee, err := kernel.NewMoneyFromString(dto.PreferredWriterFee)
	if err != nil {
		return services.PricingConfig{}, err
	}

	tiers, err := parseTiers(dto.DeadlineTiers)
	if err != nil {
		return services.PricingConfig{}, err
	}
	levelFees, err := parseMoneyMap(dto.WriterLevelFees)
	if err != nil {
		return services.PricingConfig{}, err
	}
	extraCosts, err := parseMoneyMap(dto.ExtraServiceCosts)
	if err != nil {
		return services.PricingConfig{}, err
	}

	return services.PricingConfig{
		WebsiteID:          websiteID,
		PageRate:           pageRate,
		SlideRate:          slideRate,
		DeadlineTiers:      tiers,
		WriterLevelFees:    levelFees,
		PreferredWriterFee: preferredWriterFee,
		ExtraServiceCosts:  extraCosts,
	}, nil
}

// PointsConfig returns the website's loyalty-point conversion settings,
// or the package defaults when the website has no settings row.
func (p *GormSettingsProvider) PointsConfig(ctx context.Context, websiteID kernel.UUID) (services.PointsConfig, error) {
	dto, err := p.row(ctx, websiteID)
	if err != nil {
		return services.PointsConfig{}, err
	}
	if dto == nil {
		return services.PointsConfig{
			RatePerPoint: defaultPointsRate,
			MinPoints:    defaultPointsMinimum,
		}, nil
	}

	rate, err := decimal.NewFromString(dto.PointsRate)
	if err != nil {
		return services.PointsConfig{}, errs.NewValueIsInvalidErrorWithCause("points rate", err)
	}

	return services.PointsConfig{
		RatePerPoint: rate,
		MinPoints:    dto.PointsMinimum,
	}, nil
}

// RevisionWindowDays returns the website's revision window. Zero means
// unset; callers fall back to the default policy.
func (p *GormSettingsProvider) RevisionWindowDays(ctx context.Context, websiteID kernel.UUID) (int, error) {
	dto, err := p.row(ctx, websiteID)
	if err != nil {
		return 0, err
	}
	if dto == nil {
		return 0, nil
	}

	return dto.RevisionWindowDays, nil
}

// DiscountAmount resolves a discount code against the gross total. Unknown,
// inactive or expired codes resolve to zero rather than failing the order.
func (p *GormSettingsProvider) DiscountAmount(ctx context.Context, websiteID kernel.UUID, code string, gross kernel.Money) (kernel.Money, error) {
	if code == "" {
		return kernel.ZeroMoney(), nil
	}
	if err := websiteID.Validate(); err != nil {
		return kernel.ZeroMoney(), err
	}

	var dto DiscountCodeDTO
	err := p.db.WithContext(ctx).
		First(&dto, "website_id = ? AND code = ?", websiteID.Bytes(), code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.ZeroMoney(), nil
		}
		return kernel.ZeroMoney(), err
	}

	if !dto.Active {
		return kernel.ZeroMoney(), nil
	}
	if dto.ExpiresAt != nil && dto.ExpiresAt.Before(time.Now().UTC()) {
		return kernel.ZeroMoney(), nil
	}

	value, err := decimal.NewFromString(dto.Value)
	if err != nil {
		return kernel.ZeroMoney(), errs.NewValueIsInvalidErrorWithCause("discount value", err)
	}

	switch dto.Kind {
	case "fixed":
		amount, err := kernel.NewMoney(value)
		if err != nil {
			return kernel.ZeroMoney(), err
		}
		// A code never discounts below zero.
		return amount.Min(gross), nil
	case "percent":
		return gross.Mul(value.Div(decimal.NewFromInt(100))).Min(gross), nil
	default:
		return kernel.ZeroMoney(), errs.NewValueIsInvalidError("discount kind")
	}
}

func (p *GormSettingsProvider) row(ctx context.Context, websiteID kernel.UUID) (*WebsiteSettingsDTO, error) {
	if err := websiteID.Validate(); err != nil {
		return nil, err
	}

	var dto WebsiteSettingsDTO
	err := p.db.WithContext(ctx).First(&dto, "website_id = ?", websiteID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &dto, nil
}

func parseTiers(raw []byte) ([]services.DeadlineTier, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var entries []deadlineTierJSON
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("deadline tiers", err)
	}

	tiers := make([]services.DeadlineTier, 0, len(entries))
	for _, e := range entries {
		multiplier, err := decimal.NewFromString(e.Multiplier)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("deadline tier multiplier", err)
		}
		tiers = append(tiers, services.DeadlineTier{
			HoursBefore: e.HoursBefore,
			Multiplier:  multiplier,
		})
	}

	return tiers, nil
}

func parseMoneyMap(raw []byte) (map[string]kernel.Money, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("fee table", err)
	}

	fees := make(map[string]kernel.Money, len(entries))
	for name, value := range entries {
		amount, err := kernel.NewMoneyFromString(value)
		if err != nil {
			return nil, err
		}
		fees[name] = amount
	}

	return fees, nil
}
