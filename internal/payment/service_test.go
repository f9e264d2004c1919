package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"forum-service/internal/kafka"
)

// fakeRepo mimics Settle's contract: first call with a fresh intent id
// lands, replays report Duplicate. failNext makes the next Settle roll
// back without recording anything, like a dropped Postgres connection.
type fakeRepo struct {
	seen     map[string]*Payment
	upgrades []string
	failNext error
	calls    int
}

func newFakeRepo() *fakeRepo { return &fakeRepo{seen: map[string]*Payment{}} }

func (f *fakeRepo) Settle(p *Payment) (SettleResult, error) {
	f.calls++
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return SettleResult{}, err
	}
	if _, ok := f.seen[p.PaymentIntentID]; ok {
		return SettleResult{Duplicate: true}, nil
	}
	f.seen[p.PaymentIntentID] = p
	if p.Status != StatusSucceeded {
		return SettleResult{}, nil
	}
	f.upgrades = append(f.upgrades, p.Email+":"+p.MembershipType)
	return SettleResult{MembershipUpdated: true}, nil
}

func (f *fakeRepo) ListByEmail(string, int, int) ([]Payment, error) { return nil, nil }

type fakeIdem struct {
	keys map[string]bool
}

func (f *fakeIdem) PutNX(_ context.Context, key string, _ time.Duration) (bool, error) {
	if f.keys == nil {
		f.keys = map[string]bool{}
	}
	if f.keys[key] {
		return false, nil
	}
	f.keys[key] = true
	return true, nil
}

func (f *fakeIdem) Del(_ context.Context, key string) error {
	delete(f.keys, key)
	return nil
}

func succeededReq() RecordReq {
	return RecordReq{
		Amount:          999,
		Status:          "succeeded",
		PaymentIntentID: "pi_1",
		MembershipType:  "premium",
	}
}

func TestRecordSucceededUpgradesMembership(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, kafka.Nop{}, &fakeIdem{})

	resp, err := svc.Record(context.Background(), "a@b.com", succeededReq())
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if !resp.MembershipUpdated {
		t.Fatalf("resp = %+v, want membershipUpdated", resp)
	}
	if len(repo.upgrades) != 1 || repo.upgrades[0] != "a@b.com:premium" {
		t.Fatalf("upgrades = %v", repo.upgrades)
	}
}

func TestRecordReplayDoesNotDoubleApply(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, kafka.Nop{}, &fakeIdem{})

	if _, err := svc.Record(context.Background(), "a@b.com", succeededReq()); err != nil {
		t.Fatalf("first record: %v", err)
	}
	resp, err := svc.Record(context.Background(), "a@b.com", succeededReq())
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if resp.MembershipUpdated {
		t.Fatal("replay of the same paymentIntentId must not upgrade again")
	}
	if len(repo.upgrades) != 1 {
		t.Fatalf("upgrades = %v, want exactly one", repo.upgrades)
	}
}

func TestRecordReplaySurvivesIdemStoreDown(t *testing.T) {
	// No Redis dedupe at all: the repository's intent-id check alone
	// must stop the double credit.
	repo := newFakeRepo()
	svc := NewService(repo, nil, kafka.Nop{}, nil)

	if _, err := svc.Record(context.Background(), "a@b.com", succeededReq()); err != nil {
		t.Fatalf("first record: %v", err)
	}
	resp, err := svc.Record(context.Background(), "a@b.com", succeededReq())
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if resp.MembershipUpdated || len(repo.upgrades) != 1 {
		t.Fatalf("resp = %+v, upgrades = %v", resp, repo.upgrades)
	}
}

func TestRecordRetryLandsAfterFailedSettle(t *testing.T) {
	// A settle that rolls back must not leave the dedupe key behind:
	// the caller retries the same intent id and it has to reach the
	// transaction again, not bounce off as "already recorded".
	repo := newFakeRepo()
	repo.failNext = errors.New("connection reset")
	svc := NewService(repo, nil, kafka.Nop{}, &fakeIdem{})

	if _, err := svc.Record(context.Background(), "a@b.com", succeededReq()); err == nil {
		t.Fatal("first record must surface the settle error")
	}
	resp, err := svc.Record(context.Background(), "a@b.com", succeededReq())
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if !resp.MembershipUpdated {
		t.Fatalf("resp = %+v, want the retry to upgrade", resp)
	}
	if repo.calls != 2 {
		t.Fatalf("settle calls = %d, want the retry to reach the repository", repo.calls)
	}
	if len(repo.upgrades) != 1 || repo.upgrades[0] != "a@b.com:premium" {
		t.Fatalf("upgrades = %v", repo.upgrades)
	}
}

func TestRecordFailedStatusLeavesMembership(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, kafka.Nop{}, &fakeIdem{})

	req := succeededReq()
	req.Status = "failed"
	req.PaymentIntentID = "pi_2"
	resp, err := svc.Record(context.Background(), "a@b.com", req)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if resp.MembershipUpdated {
		t.Fatal("failed payment must not upgrade membership")
	}
	if _, ok := repo.seen["pi_2"]; !ok {
		t.Fatal("failed payment must still be recorded")
	}
	if len(repo.upgrades) != 0 {
		t.Fatalf("upgrades = %v", repo.upgrades)
	}
}
