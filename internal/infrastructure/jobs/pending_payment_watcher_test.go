package jobs

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artist-membership.backend/internal/domain/entities"
	"artist-membership.backend/internal/infrastructure/repositories"
	"artist-membership.backend/pkg/logger"
	"artist-membership.backend/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	os.Exit(m.Run())
}

func TestWatcher_ExportsStalePendingCount(t *testing.T) {
	repo := repositories.NewMemoryMemberRepository("AMP")
	ctx := context.Background()

	pending := &entities.Member{
		Name: "Asha Rao", Email: "a@x.com", Phone: "9876543210",
		BloodGroup: "O+", Category: entities.CategoryArtist,
		PhotoURL: "p", Address: "12 Gallery Road",
		PaymentAmount: "500.00", PaymentStatus: entities.PaymentStatusPending,
	}
	require.NoError(t, repo.Create(ctx, pending))

	// maxAge in the past makes the freshly created member stale immediately
	w := NewPendingPaymentWatcher(repo, -time.Minute)
	w.check(ctx)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.StalePendingMembers))
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	repo := repositories.NewMemoryMemberRepository("AMP")
	ctx, cancel := context.WithCancel(context.Background())

	w := NewPendingPaymentWatcher(repo, time.Hour)
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on context cancel")
	}
}

func TestWatcher_StopSignal(t *testing.T) {
	repo := repositories.NewMemoryMemberRepository("AMP")

	w := NewPendingPaymentWatcher(repo, time.Hour)
	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	w.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on Stop()")
	}
}
