package news

import "context"

// DigestRepository persists the news digest.
// Load returns an empty digest when nothing has been written yet.
type DigestRepository interface {
	Load(ctx context.Context) (Digest, error)
	Save(ctx context.Context, digest Digest) error
}

type HistoryLogRepository interface {
	Load(ctx context.Context) (HistoryLog, error)
	Save(ctx context.Context, log HistoryLog) error
}
