package intake

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cosmo-clinic/billing-atlas/pkg/adapters"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/api"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	MessageInvalidComplaint = "Please enter a valid complaint."
	MessageComplaintAdded   = "New complaint added successfully!"
	MessageComplaintFailed  = "Failed to add complaint. Please try again."
)

type ComplaintBackend interface {
	ListComplaints(ctx context.Context) ([]api.Complaint, error)
	AddComplaint(ctx context.Context, req api.ComplaintRequest) (*api.Complaint, error)
}

// Catalog is the list of complaints offered when recording a visit.
type Catalog struct {
	backend ComplaintBackend

	mu      sync.Mutex
	items   []domain.ComplaintOption
	message string
}

func NewCatalog(backend ComplaintBackend) *Catalog {
	return &Catalog{backend: backend}
}

// Load replaces the catalog. A failed request leaves it empty.
func (c *Catalog) Load(ctx context.Context) []domain.ComplaintOption {
	list, err := c.backend.ListComplaints(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to fetch complaints")
		list = nil
	}

	items := make([]domain.ComplaintOption, 0, len(list))
	for _, it := range list {
		items = append(items, adapters.MapComplaintApiToDomain(it))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	return append([]domain.ComplaintOption(nil), items...)
}

func (c *Catalog) Items() []domain.ComplaintOption {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.ComplaintOption(nil), c.items...)
}

func (c *Catalog) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// Add posts a new complaint and appends the stored entry. Blank input is
// rejected without a request.
func (c *Catalog) Add(ctx context.Context, name string) (domain.ComplaintOption, error) {
	if strings.TrimSpace(name) == "" {
		c.setMessage(MessageInvalidComplaint)
		return domain.ComplaintOption{}, domain.ErrEmptyComplaint
	}

	resp, err := c.backend.AddComplaint(ctx, api.ComplaintRequest{Complaints: name})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("complaint", name).Msg("failed to add complaint")
		c.setMessage(MessageComplaintFailed)
		return domain.ComplaintOption{}, fmt.Errorf("add complaint: %w", err)
	}

	opt := adapters.MapComplaintApiToDomain(*resp)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, opt)
	c.message = MessageComplaintAdded
	return opt, nil
}

func (c *Catalog) setMessage(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.message = msg
}
