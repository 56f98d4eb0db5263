package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) GetMedicinePrice(ctx context.Context, name string) (api.Flex, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(api.Flex), args.Error(1)
}

func (m *mockClient) ListMedicines(ctx context.Context) ([]api.Medicine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.Medicine), args.Error(1)
}

func TestPricingStore_GetMedicinePrice(t *testing.T) {
	tests := []struct {
		name  string
		price api.Flex
		err   error
		want  string
		found bool
	}{
		{name: "numeric", price: api.FlexNumber("32.5"), want: "32.5", found: true},
		{name: "quoted", price: api.FlexString("12"), want: "12", found: true},
		{name: "lookup error", err: errors.New("404"), want: "0"},
		{name: "not numeric", price: api.FlexString("n/a"), want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockClient)
			client.On("GetMedicinePrice", mock.Anything, "Dolo").Return(tt.price, tt.err)

			got := NewStore(client).GetMedicinePrice(context.Background(), "Dolo")
			assert.Equal(t, tt.found, got.Found)
			assert.True(t, got.Amount.Valid)
			assert.Equal(t, tt.want, got.Amount.Decimal().String())
		})
	}
}

func TestPricingStore_ListMedicineNames(t *testing.T) {
	client := new(mockClient)
	client.On("ListMedicines", mock.Anything).Return([]api.Medicine{
		{MedicineName: "Zincovit"},
		{MedicineName: "Dolo"},
		{MedicineName: "Dolo"},
		{},
	}, nil)

	names, err := NewStore(client).ListMedicineNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Dolo", "Zincovit"}, names)
}
