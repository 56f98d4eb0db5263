package pricing

import (
	"context"
	"sort"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Client is the pharmacy part of the clinic API.
type Client interface {
	GetMedicinePrice(ctx context.Context, name string) (api.Flex, error)
	ListMedicines(ctx context.Context) ([]api.Medicine, error)
}

type Price struct {
	Amount domain.Amount
	Found  bool
}

type Store interface {
	// GetMedicinePrice never fails; an unknown medicine or a failed lookup
	// is priced at zero.
	GetMedicinePrice(ctx context.Context, name string) Price
	ListMedicineNames(ctx context.Context) ([]string, error)
}

type pricingStore struct {
	client Client
}

func NewStore(client Client) Store {
	return &pricingStore{client: client}
}

func (p *pricingStore) GetMedicinePrice(ctx context.Context, name string) Price {
	price, err := p.client.GetMedicinePrice(ctx, name)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("medicine", name).Msg("failed to look up medicine price")
		return Price{Amount: domain.AmountOf(decimal.Zero)}
	}
	amount := domain.ParseAmount(price.Raw)
	if !amount.Valid {
		zerolog.Ctx(ctx).Warn().Str("medicine", name).Str("price", price.Raw).Msg("medicine price is not numeric")
		return Price{Amount: domain.AmountOf(decimal.Zero)}
	}
	return Price{Amount: amount, Found: true}
}

func (p *pricingStore) ListMedicineNames(ctx context.Context) ([]string, error) {
	medicines, err := p.client.ListMedicines(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(medicines))
	names := make([]string, 0, len(medicines))
	for _, m := range medicines {
		if _, ok := seen[m.MedicineName]; ok || m.MedicineName == "" {
			continue
		}
		seen[m.MedicineName] = struct{}{}
		names = append(names, m.MedicineName)
	}
	sort.Strings(names)
	return names, nil
}
