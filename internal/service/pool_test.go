package service

import (
	"context"
	"testing"

	"github.com/palmbay/resort/api/internal/model"
	"github.com/palmbay/resort/api/internal/repository/memory"
	"github.com/stretchr/testify/require"
)

const guestCarol = "33333333-3333-4333-8333-333333333333"

func newPoolService(repo PoolRepository) *PoolService {
	return NewPoolService(PoolServiceConfig{Repo: repo})
}

func ticketReq(poolID string, adults, children int) *model.IssueTicketRequest {
	return &model.IssueTicketRequest{
		PoolID:   poolID,
		GuestID:  guestCarol,
		Date:     "2025-07-14",
		Adults:   adults,
		Children: children,
	}
}

func TestCreatePool_ValidatesCapacity(t *testing.T) {
	svc := newPoolService(memory.NewPoolStore())

	for _, capacity := range []int{0, -1, 10001} {
		_, err := svc.CreatePool(context.Background(), "Lagoon", capacity)
		if !model.IsCode(err, "INVALID_CAPACITY") {
			t.Errorf("capacity %d: expected INVALID_CAPACITY, got %v", capacity, err)
		}
	}
}

func TestIssueTicket_RejectsPartyOverCapacity(t *testing.T) {
	ctx := context.Background()
	svc := newPoolService(memory.NewPoolStore())

	pool, err := svc.CreatePool(ctx, "Lagoon", 5)
	require.NoError(t, err)

	_, err = svc.IssueTicket(ctx, ticketReq(pool.ID, 2, 1))
	require.NoError(t, err)

	// 3 places taken, 2 remain; a party of 3 is rejected whole.
	_, err = svc.IssueTicket(ctx, ticketReq(pool.ID, 2, 1))
	require.True(t, model.IsCode(err, model.CodeInsufficientCapacity), "got %v", err)

	// A party of 2 still fits.
	_, err = svc.IssueTicket(ctx, ticketReq(pool.ID, 2, 0))
	require.NoError(t, err)
}

func TestIssueTicket_CapacityIsPerDate(t *testing.T) {
	ctx := context.Background()
	svc := newPoolService(memory.NewPoolStore())

	pool, err := svc.CreatePool(ctx, "Lagoon", 3)
	require.NoError(t, err)

	_, err = svc.IssueTicket(ctx, ticketReq(pool.ID, 3, 0))
	require.NoError(t, err)

	nextDay := ticketReq(pool.ID, 3, 0)
	nextDay.Date = "2025-07-15"
	_, err = svc.IssueTicket(ctx, nextDay)
	require.NoError(t, err)
}

func TestIssueTicket_RejectsEmptyParty(t *testing.T) {
	ctx := context.Background()
	svc := newPoolService(memory.NewPoolStore())

	pool, err := svc.CreatePool(ctx, "Lagoon", 5)
	require.NoError(t, err)

	_, err = svc.IssueTicket(ctx, ticketReq(pool.ID, 0, 0))
	require.True(t, model.IsCode(err, "INVALID_HEADCOUNT"), "got %v", err)
}

func TestCancelTicket_ReleasesCapacity(t *testing.T) {
	ctx := context.Background()
	svc := newPoolService(memory.NewPoolStore())

	pool, err := svc.CreatePool(ctx, "Lagoon", 3)
	require.NoError(t, err)

	ticket, err := svc.IssueTicket(ctx, ticketReq(pool.ID, 3, 0))
	require.NoError(t, err)

	_, err = svc.IssueTicket(ctx, ticketReq(pool.ID, 1, 0))
	require.True(t, model.IsCode(err, model.CodeInsufficientCapacity), "got %v", err)

	_, err = svc.CancelTicket(ctx, ticket.ID)
	require.NoError(t, err)

	remaining, err := svc.CapacityRemaining(ctx, pool.ID, "2025-07-14")
	require.NoError(t, err)
	require.Equal(t, 0, remaining.Booked)
	require.Equal(t, 3, remaining.Available)

	_, err = svc.IssueTicket(ctx, ticketReq(pool.ID, 3, 0))
	require.NoError(t, err)
}

func TestRedeemTicket_KeepsCapacityBooked(t *testing.T) {
	ctx := context.Background()
	svc := newPoolService(memory.NewPoolStore())

	pool, err := svc.CreatePool(ctx, "Lagoon", 3)
	require.NoError(t, err)

	ticket, err := svc.IssueTicket(ctx, ticketReq(pool.ID, 2, 0))
	require.NoError(t, err)

	ticket, err = svc.RedeemTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.Equal(t, model.TicketStatusRedeemed, ticket.Status)
	require.NotNil(t, ticket.RedeemedAt)

	// A redeemed party still occupies its places for the day.
	remaining, err := svc.CapacityRemaining(ctx, pool.ID, "2025-07-14")
	require.NoError(t, err)
	require.Equal(t, 2, remaining.Booked)

	// Redeeming twice is rejected.
	_, err = svc.RedeemTicket(ctx, ticket.ID)
	require.True(t, model.IsCode(err, model.CodeInvalidStatus), "got %v", err)
}

func TestCancelTicket_RejectsRedeemedTicket(t *testing.T) {
	ctx := context.Background()
	svc := newPoolService(memory.NewPoolStore())

	pool, err := svc.CreatePool(ctx, "Lagoon", 5)
	require.NoError(t, err)
	ticket, err := svc.IssueTicket(ctx, ticketReq(pool.ID, 1, 0))
	require.NoError(t, err)
	_, err = svc.RedeemTicket(ctx, ticket.ID)
	require.NoError(t, err)

	_, err = svc.CancelTicket(ctx, ticket.ID)
	require.True(t, model.IsCode(err, model.CodeInvalidStatus), "got %v", err)
}

func TestExpireTickets_FlipsPastIssuedOnly(t *testing.T) {
	ctx := context.Background()
	svc := newPoolService(memory.NewPoolStore())

	pool, err := svc.CreatePool(ctx, "Lagoon", 10)
	require.NoError(t, err)

	stale, err := svc.IssueTicket(ctx, ticketReq(pool.ID, 1, 0))
	require.NoError(t, err)

	redeemed, err := svc.IssueTicket(ctx, ticketReq(pool.ID, 1, 0))
	require.NoError(t, err)
	_, err = svc.RedeemTicket(ctx, redeemed.ID)
	require.NoError(t, err)

	future := ticketReq(pool.ID, 1, 0)
	future.Date = "2025-07-20"
	kept, err := svc.IssueTicket(ctx, future)
	require.NoError(t, err)

	count, err := svc.ExpireTickets(ctx, "2025-07-16")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	expired, err := svc.GetTicket(ctx, stale.ID)
	require.NoError(t, err)
	require.Equal(t, model.TicketStatusExpired, expired.Status)

	untouched, err := svc.GetTicket(ctx, kept.ID)
	require.NoError(t, err)
	require.Equal(t, model.TicketStatusIssued, untouched.Status)
}
