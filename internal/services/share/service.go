package share

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"keyshare/internal/domain"
	"keyshare/internal/observability/logging"
	"keyshare/internal/observability/metrics"
	"keyshare/internal/protocol/sharestrategy"
	"keyshare/internal/trustcache"
)

var (
	// ErrNoDirectory is returned when a directory query is needed but no
	// directory was configured.
	ErrNoDirectory = errors.New("no directory configured")
	// ErrNoSnapshotStore is returned by Pull and ResolveNamed without a store.
	ErrNoSnapshotStore = errors.New("no snapshot store configured")
	// ErrSnapshotNotFound is returned by ResolveNamed for an unknown name.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Service resolves share recipients.
type Service struct {
	directory domain.KeyQuerier
	snapshots domain.SnapshotStore
	cache     *trustcache.Cache
	log       *slog.Logger
	metrics   *metrics.Metrics
}

// New constructs a Service. Every dependency may be nil: without a directory
// only snapshot resolution works, without a cache every call resolves afresh,
// and a nil logger or metrics disables that output.
func New(
	directory domain.KeyQuerier,
	snapshots domain.SnapshotStore,
	cache *trustcache.Cache,
	log *slog.Logger,
	m *metrics.Metrics,
) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{
		directory: directory,
		snapshots: snapshots,
		cache:     cache,
		log:       log,
		metrics:   m,
	}
}

// Recipients queries the directory for recipients and resolves them. The
// local user's keys are always fetched too, since verification starts from
// them.
func (s *Service) Recipients(
	ctx context.Context,
	strategy domain.ShareStrategy,
	local domain.UserID,
	recipients []domain.UserID,
) (domain.Resolution, error) {
	users := append(slices.Clone(recipients), local)
	slices.Sort(users)
	snapshot, err := s.query(ctx, slices.Compact(users))
	if err != nil {
		return domain.Resolution{}, err
	}
	return s.ResolveSnapshot(ctx, strategy, local, snapshot, recipients)
}

// ResolveSnapshot resolves recipients against a snapshot the caller holds.
func (s *Service) ResolveSnapshot(
	ctx context.Context,
	strategy domain.ShareStrategy,
	local domain.UserID,
	snapshot domain.KeyQueryResponse,
	recipients []domain.UserID,
) (domain.Resolution, error) {
	if err := ctx.Err(); err != nil {
		return domain.Resolution{}, err
	}
	start := time.Now()
	log := s.log.With(
		slog.String("resolution_id", uuid.NewString()),
		slog.String("strategy", strategy.String()),
		slog.String("local", string(local)),
	)

	res, hit, err := s.cache.Resolve(strategy, local, snapshot, recipients)
	s.observe(strategy, start, hit, err)
	if err != nil {
		var violation *sharestrategy.VerifiedUserHasUnsignedDeviceError
		if errors.As(err, &violation) {
			log.Warn("share refused",
				"user", string(violation.User),
				"devices", len(violation.Devices),
			)
		} else {
			log.Error("resolution failed", "err", err)
		}
		return domain.Resolution{}, err
	}

	for _, is := range res.Diagnostics.Issues {
		if is.Reason == domain.ExcludedMalformed {
			log.Warn("malformed device keys",
				"user", string(is.Device.UserID),
				"device", string(is.Device.DeviceID),
				"detail", is.Detail,
			)
		}
		if s.metrics != nil {
			s.metrics.ExcludedDevicesTotal.WithLabelValues(string(is.Reason)).Inc()
		}
	}
	log.Info("resolved",
		"recipients", len(recipients),
		"devices", len(res.Devices),
		"dehydrated", res.Diagnostics.Dehydrated,
		"missing_signature", res.Diagnostics.Unsigned,
		"malformed_keys", res.Diagnostics.Malformed,
		"cache_hit", hit,
	)
	return res, nil
}

// Pull queries the directory for users and stores the response under name.
func (s *Service) Pull(ctx context.Context, name string, users []domain.UserID) (domain.KeyQueryResponse, error) {
	if s.snapshots == nil {
		return domain.KeyQueryResponse{}, ErrNoSnapshotStore
	}
	snapshot, err := s.query(ctx, users)
	if err != nil {
		return domain.KeyQueryResponse{}, err
	}
	if err := s.snapshots.SaveSnapshot(ctx, name, snapshot); err != nil {
		return domain.KeyQueryResponse{}, err
	}
	s.log.Info("snapshot saved", "name", name, "users", len(users), "failures", len(snapshot.Failures))
	return snapshot, nil
}

// ResolveNamed resolves recipients against the stored snapshot called name.
func (s *Service) ResolveNamed(
	ctx context.Context,
	strategy domain.ShareStrategy,
	local domain.UserID,
	name string,
	recipients []domain.UserID,
) (domain.Resolution, error) {
	if s.snapshots == nil {
		return domain.Resolution{}, ErrNoSnapshotStore
	}
	snapshot, ok, err := s.snapshots.LoadSnapshot(ctx, name)
	if err != nil {
		return domain.Resolution{}, err
	}
	if !ok {
		return domain.Resolution{}, fmt.Errorf("%w: %q", ErrSnapshotNotFound, name)
	}
	return s.ResolveSnapshot(ctx, strategy, local, snapshot, recipients)
}

func (s *Service) query(ctx context.Context, users []domain.UserID) (domain.KeyQueryResponse, error) {
	if s.directory == nil {
		return domain.KeyQueryResponse{}, ErrNoDirectory
	}
	snapshot, err := s.directory.QueryKeys(ctx, users)
	if err != nil {
		return domain.KeyQueryResponse{}, fmt.Errorf("query keys: %w", err)
	}
	for server := range snapshot.Failures {
		s.log.Warn("directory could not reach server", "server", server)
	}
	return snapshot, nil
}

func (s *Service) observe(strategy domain.ShareStrategy, start time.Time, hit bool, err error) {
	if s.metrics == nil {
		return
	}
	label := strategy.String()
	s.metrics.ResolutionDurationSeconds.WithLabelValues(label).Observe(time.Since(start).Seconds())

	outcome := "ok"
	switch {
	case errors.Is(err, sharestrategy.ErrVerifiedUserHasUnsignedDevice):
		outcome = "policy_violation"
		s.metrics.PolicyViolationsTotal.WithLabelValues(label).Inc()
	case err != nil:
		outcome = "error"
	}
	s.metrics.ResolutionsTotal.WithLabelValues(label, outcome).Inc()

	if err == nil {
		result := "miss"
		if hit {
			result = "hit"
		}
		s.metrics.CacheLookupsTotal.WithLabelValues(result).Inc()
	}
}

var _ domain.ShareService = (*Service)(nil)
