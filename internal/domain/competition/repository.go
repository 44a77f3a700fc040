package competition

import (
	"context"
	"time"

	"github.com/riskibarqy/liveticker/internal/domain/fixture"
)

// Repository reads and writes competition documents identified by location.
type Repository interface {
	Load(ctx context.Context, location string) (Snapshot, error)
	Save(ctx context.Context, location string, snapshot Snapshot) error
	// SaveResults patches status and full-time score of the given fixtures, matched by id,
	// and stamps generatedAt. Every other part of the stored document is kept as is.
	SaveResults(ctx context.Context, location string, generatedAt time.Time, fixtures []*fixture.Fixture) error
}
