package jsonfile

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/liveticker/internal/domain/competition"
	"github.com/riskibarqy/liveticker/internal/usecase"
)

// CompetitionRepository stores competition documents as pretty-printed JSON files.
// Relative locations resolve against the data directory.
type CompetitionRepository struct {
	dataDir string
}

func NewCompetitionRepository(dataDir string) *CompetitionRepository {
	return &CompetitionRepository{dataDir: dataDir}
}

func (r *CompetitionRepository) Load(ctx context.Context, location string) (competition.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return competition.Snapshot{}, err
	}

	path := resolvePath(r.dataDir, location)
	raw, err := readDocument(path)
	if err != nil {
		return competition.Snapshot{}, err
	}

	var doc snapshotDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return competition.Snapshot{}, fmt.Errorf("%w: decode %s: %v", usecase.ErrInvalidDocument, path, err)
	}
	if doc.Matches == nil {
		return competition.Snapshot{}, fmt.Errorf("%w: %s has no matches array", usecase.ErrInvalidDocument, path)
	}

	return doc.toDomain(), nil
}

func (r *CompetitionRepository) Save(ctx context.Context, location string, snapshot competition.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeDocument(resolvePath(r.dataDir, location), newSnapshotDocument(snapshot))
}
