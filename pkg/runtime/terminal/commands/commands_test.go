package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/cosmo-clinic/billing-atlas/pkg/export"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/billing"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSet(t *testing.T) {
	tests := []struct {
		in      string
		want    itemChange
		wantErr bool
	}{
		{in: "0:qty=3", want: itemChange{index: 0, field: billing.FieldQuantity, value: "3"}},
		{in: "2:particulars=Dolo 650", want: itemChange{index: 2, field: billing.FieldParticulars, value: "Dolo 650"}},
		{in: "1:total=", want: itemChange{index: 1, field: billing.FieldTotal, value: ""}},
		{in: "qty=3", wantErr: true},
		{in: "x:qty=3", wantErr: true},
		{in: "0:colour=red", wantErr: true},
		{in: "0:qty", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSet(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIndexed(t *testing.T) {
	i, v, err := indexed("1=1180")
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Equal(t, "1180", v)

	_, _, err = indexed("1180")
	assert.Error(t, err)
}

func TestEnv_Sink(t *testing.T) {
	env := &Env{Settings: config.Settings{Export: config.ExportSettings{Dir: "/var/exports"}}}
	ctx := context.Background()
	var stdout bytes.Buffer

	sink, err := env.Sink(ctx, "-", false, &stdout)
	require.NoError(t, err)
	assert.Equal(t, export.WriterSink{W: &stdout}, sink)

	sink, err = env.Sink(ctx, "", false, &stdout)
	require.NoError(t, err)
	assert.Equal(t, export.DirSink{Dir: "/var/exports"}, sink)

	_, err = env.Sink(ctx, "", true, &stdout)
	assert.ErrorContains(t, err, "s3.bucket")
}

func TestEnv_SignInRequiresProfile(t *testing.T) {
	env := &Env{}
	_, _, err := env.SignIn(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNotLoggedIn)
}

func TestDocumentTable(t *testing.T) {
	table := documentTable("Consumer", []string{"Item", "Qty"}, nil)
	assert.True(t, table.Empty)
	assert.Len(t, table.Columns, 2)
}
