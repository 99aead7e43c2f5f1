package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodging_backend/internal/feature/reservation/domain"
)

func completedMetadata() map[string]string {
	return map[string]string{
		domain.MetaHouseID:        "3",
		domain.MetaUserID:         "9",
		domain.MetaCheckinDate:    "2025-06-01",
		domain.MetaCheckoutDate:   "2025-06-03",
		domain.MetaNumberOfPeople: "2",
		domain.MetaAmount:         "10000",
	}
}

// signedGateway accepts only the signature "valid" and serves one completed session.
func signedGateway(eventType string, md map[string]string) *mockGateway {
	return &mockGateway{
		ParseEventFunc: func(_ []byte, sig string) (*domain.PaymentEvent, error) {
			if sig != "valid" {
				return nil, domain.ErrInvalidSignature
			}
			ev := &domain.PaymentEvent{ID: "evt_1", Type: eventType}
			if ev.IsCheckoutCompleted() {
				ev.SessionID = "cs_1"
			}
			return ev, nil
		},
		RetrieveSessionFunc: func(_ context.Context, id string) (*domain.CompletedSession, error) {
			return &domain.CompletedSession{SessionID: id, PaymentIntentID: "pi_1", Metadata: md}, nil
		},
	}
}

type webhookFixture struct {
	repo    *memoryReservations
	guard   *memoryGuard
	metrics *recordingMetrics
	uc      *webhookUsecase
}

func newWebhookFixture(gw *mockGateway) webhookFixture {
	f := webhookFixture{repo: &memoryReservations{}, guard: &memoryGuard{}, metrics: &recordingMetrics{}}
	recorder := NewReservationUsecase(f.repo, houses(), gw, f.metrics, baseURL)
	f.uc = NewWebhookUsecase(gw, recorder, f.guard, f.metrics)
	return f
}

func TestWebhookUsecase_CompletedCheckout(t *testing.T) {
	f := newWebhookFixture(signedGateway(domain.EventCheckoutCompleted, completedMetadata()))

	require.NoError(t, f.uc.HandleEvent(context.Background(), []byte(`{}`), "valid"))

	require.Len(t, f.repo.rows, 1)
	r := f.repo.rows[0]
	assert.Equal(t, uint(3), r.HouseID)
	assert.Equal(t, uint(9), r.UserID)
	assert.Equal(t, 10000, r.Amount)
	assert.Equal(t, 2, r.NumberOfPeople)
	assert.Equal(t, "pi_1", r.PaymentIntentID)
	assert.Equal(t, []string{"checkout.session.completed:processed"}, f.metrics.webhook)
}

func TestWebhookUsecase_InvalidSignature(t *testing.T) {
	f := newWebhookFixture(signedGateway(domain.EventCheckoutCompleted, completedMetadata()))

	err := f.uc.HandleEvent(context.Background(), []byte(`{}`), "forged")

	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
	assert.Empty(t, f.repo.rows)
	assert.Equal(t, []string{"unknown:rejected"}, f.metrics.webhook)
}

func TestWebhookUsecase_IgnoresOtherEvents(t *testing.T) {
	gw := signedGateway("payment_intent.succeeded", completedMetadata())
	gw.RetrieveSessionFunc = func(context.Context, string) (*domain.CompletedSession, error) {
		t.Fatal("session must not be retrieved for other events")
		return nil, nil
	}
	f := newWebhookFixture(gw)

	require.NoError(t, f.uc.HandleEvent(context.Background(), []byte(`{}`), "valid"))

	assert.Empty(t, f.repo.rows)
	assert.Equal(t, []string{"payment_intent.succeeded:ignored"}, f.metrics.webhook)
}

func TestWebhookUsecase_ReplayCreatesOneReservation(t *testing.T) {
	t.Run("guard short-circuits", func(t *testing.T) {
		f := newWebhookFixture(signedGateway(domain.EventCheckoutCompleted, completedMetadata()))
		ctx := context.Background()

		require.NoError(t, f.uc.HandleEvent(ctx, []byte(`{}`), "valid"))
		require.NoError(t, f.uc.HandleEvent(ctx, []byte(`{}`), "valid"))

		assert.Len(t, f.repo.rows, 1)
		assert.Equal(t, "checkout.session.completed:duplicate", f.metrics.webhook[1])
	})

	t.Run("unique payment id without guard", func(t *testing.T) {
		gw := signedGateway(domain.EventCheckoutCompleted, completedMetadata())
		repo := &memoryReservations{}
		m := &recordingMetrics{}
		uc := NewWebhookUsecase(gw, NewReservationUsecase(repo, houses(), gw, m, baseURL), nil, m)
		ctx := context.Background()

		require.NoError(t, uc.HandleEvent(ctx, []byte(`{}`), "valid"))
		require.NoError(t, uc.HandleEvent(ctx, []byte(`{}`), "valid"))

		assert.Len(t, repo.rows, 1)
		assert.Equal(t, 1, m.reservations)
	})

	t.Run("guard outage falls back to unique payment id", func(t *testing.T) {
		f := newWebhookFixture(signedGateway(domain.EventCheckoutCompleted, completedMetadata()))
		f.guard.claimErr = errors.New("redis down")
		ctx := context.Background()

		require.NoError(t, f.uc.HandleEvent(ctx, []byte(`{}`), "valid"))
		require.NoError(t, f.uc.HandleEvent(ctx, []byte(`{}`), "valid"))

		assert.Len(t, f.repo.rows, 1)
	})
}

func TestWebhookUsecase_PermanentFailuresAreAcknowledged(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(md map[string]string)
	}{
		{"broken metadata", func(md map[string]string) { delete(md, domain.MetaUserID) }},
		{"over capacity", func(md map[string]string) { md[domain.MetaNumberOfPeople] = "9" }},
		{"no nights", func(md map[string]string) { md[domain.MetaCheckoutDate] = "2025-06-01" }},
		{"unknown house", func(md map[string]string) { md[domain.MetaHouseID] = "99" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := completedMetadata()
			tt.mutate(md)
			f := newWebhookFixture(signedGateway(domain.EventCheckoutCompleted, md))

			err := f.uc.HandleEvent(context.Background(), []byte(`{}`), "valid")

			assert.NoError(t, err)
			assert.Empty(t, f.repo.rows)
			assert.Equal(t, []string{"checkout.session.completed:rejected"}, f.metrics.webhook)
		})
	}
}

func TestWebhookUsecase_TransientFailureReleasesEvent(t *testing.T) {
	t.Run("retrieve fails", func(t *testing.T) {
		gw := signedGateway(domain.EventCheckoutCompleted, completedMetadata())
		gw.RetrieveSessionFunc = func(context.Context, string) (*domain.CompletedSession, error) {
			return nil, errors.New("timeout")
		}
		f := newWebhookFixture(gw)

		err := f.uc.HandleEvent(context.Background(), []byte(`{}`), "valid")

		assert.Error(t, err)
		assert.Equal(t, []string{"evt_1"}, f.guard.releaseLog)
		assert.Equal(t, []string{"checkout.session.completed:failed"}, f.metrics.webhook)
	})

	t.Run("store fails then retry succeeds", func(t *testing.T) {
		f := newWebhookFixture(signedGateway(domain.EventCheckoutCompleted, completedMetadata()))
		f.repo.createErr = errors.New("deadlock")
		ctx := context.Background()

		require.Error(t, f.uc.HandleEvent(ctx, []byte(`{}`), "valid"))

		f.repo.createErr = nil
		require.NoError(t, f.uc.HandleEvent(ctx, []byte(`{}`), "valid"))
		assert.Len(t, f.repo.rows, 1)
	})
}
