package usecase

import (
	"context"
	"sync"

	houseentity "lodging_backend/internal/feature/house/domain/entity"
	"lodging_backend/internal/feature/reservation/domain"
	"lodging_backend/internal/feature/reservation/domain/entity"
	"lodging_backend/internal/shared/pagination"
)

type memoryReservations struct {
	mu        sync.Mutex
	rows      []entity.Reservation
	createErr error
}

func (m *memoryReservations) Create(_ context.Context, r *entity.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.rows {
		if existing.PaymentIntentID == r.PaymentIntentID {
			return ErrReservationAlreadyExists
		}
	}
	r.ID = uint(len(m.rows) + 1)
	m.rows = append(m.rows, *r)
	return nil
}

func (m *memoryReservations) ListByUser(_ context.Context, userID uint, p pagination.Pageable) ([]entity.Reservation, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var mine []entity.Reservation
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID == userID {
			mine = append(mine, m.rows[i])
		}
	}
	total := int64(len(mine))
	start := min(p.Offset(), len(mine))
	end := min(start+p.Limit(), len(mine))
	return mine[start:end], total, nil
}

type houseSet map[uint]houseentity.House

func (s houseSet) FindByID(_ context.Context, id uint) (*houseentity.House, error) {
	h, ok := s[id]
	if !ok {
		return nil, ErrHouseNotFound
	}
	return &h, nil
}

type mockGateway struct {
	CreateSessionFunc   func(ctx context.Context, req domain.CheckoutRequest) (string, error)
	RetrieveSessionFunc func(ctx context.Context, sessionID string) (*domain.CompletedSession, error)
	ParseEventFunc      func(payload []byte, signature string) (*domain.PaymentEvent, error)

	requests []domain.CheckoutRequest
}

func (m *mockGateway) CreateSession(ctx context.Context, req domain.CheckoutRequest) (string, error) {
	m.requests = append(m.requests, req)
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, req)
	}
	return "cs_test_1", nil
}

func (m *mockGateway) RetrieveSession(ctx context.Context, sessionID string) (*domain.CompletedSession, error) {
	if m.RetrieveSessionFunc != nil {
		return m.RetrieveSessionFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *mockGateway) ParseEvent(payload []byte, signature string) (*domain.PaymentEvent, error) {
	if m.ParseEventFunc != nil {
		return m.ParseEventFunc(payload, signature)
	}
	return nil, domain.ErrInvalidSignature
}

type memoryGuard struct {
	seen       map[string]bool
	claimErr   error
	releaseLog []string
}

func (g *memoryGuard) Claim(_ context.Context, eventID string) (bool, error) {
	if g.claimErr != nil {
		return false, g.claimErr
	}
	if g.seen == nil {
		g.seen = map[string]bool{}
	}
	if g.seen[eventID] {
		return false, nil
	}
	g.seen[eventID] = true
	return true, nil
}

func (g *memoryGuard) Release(_ context.Context, eventID string) error {
	delete(g.seen, eventID)
	g.releaseLog = append(g.releaseLog, eventID)
	return nil
}

type recordingMetrics struct {
	checkout     []string
	webhook      []string
	reservations int
}

func (m *recordingMetrics) RecordCheckoutSession(result string) {
	m.checkout = append(m.checkout, result)
}

func (m *recordingMetrics) RecordWebhookEvent(eventType, outcome string) {
	m.webhook = append(m.webhook, eventType+":"+outcome)
}

func (m *recordingMetrics) RecordReservationCreated() { m.reservations++ }
