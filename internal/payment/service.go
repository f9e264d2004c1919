package payment

import (
	"context"
	"log"
	"time"

	"forum-service/internal/idem"
	"forum-service/internal/kafka"
)

const idemTTL = 24 * time.Hour

type Service interface {
	Record(ctx context.Context, email string, in RecordReq) (RecordResp, error)
	CreateIntent(ctx context.Context, email string, in IntentReq) (*Intent, error)
	History(email string, limit, offset int) ([]Payment, error)
}

type service struct {
	repo   Repository
	client *Client
	events kafka.Writer
	dedupe idem.Store
}

func NewService(repo Repository, client *Client, events kafka.Writer, dedupe idem.Store) Service {
	return &service{repo: repo, client: client, events: events, dedupe: dedupe}
}

func (s *service) Record(ctx context.Context, email string, in RecordReq) (RecordResp, error) {
	// Redis fast path: a replay that already went through skips the
	// transaction entirely. Redis being down just means we fall through
	// to the unique-index check.
	key := "payment:" + in.PaymentIntentID
	if s.dedupe != nil {
		if fresh, err := s.dedupe.PutNX(ctx, key, idemTTL); err == nil && !fresh {
			return RecordResp{Message: "payment already recorded", MembershipUpdated: false}, nil
		}
	}

	res, err := s.repo.Settle(&Payment{
		Email:           email,
		Amount:          in.Amount,
		Currency:        in.Currency,
		Status:          in.Status,
		PaymentIntentID: in.PaymentIntentID,
		MembershipType:  in.MembershipType,
	})
	if err != nil {
		// Nothing committed, so the intent id must stay claimable or
		// the caller's retry would bounce off the fast path.
		if s.dedupe != nil {
			if derr := s.dedupe.Del(ctx, key); derr != nil {
				log.Printf("release idem key %s: %v", key, derr)
			}
		}
		return RecordResp{}, err
	}
	if res.Duplicate {
		return RecordResp{Message: "payment already recorded", MembershipUpdated: false}, nil
	}
	if !res.MembershipUpdated {
		return RecordResp{Message: "payment recorded", MembershipUpdated: false}, nil
	}

	if err := s.events.Emit(ctx, "membership.upgraded", map[string]any{
		"email": email, "tier": in.MembershipType, "payment_intent_id": in.PaymentIntentID,
	}); err != nil {
		log.Printf("emit membership.upgraded for %s: %v", in.PaymentIntentID, err)
	}
	return RecordResp{Message: "membership updated", MembershipUpdated: true}, nil
}

func (s *service) CreateIntent(ctx context.Context, email string, in IntentReq) (*Intent, error) {
	return s.client.CreateIntent(ctx, email, in.Amount, in.Currency)
}

func (s *service) History(email string, limit, offset int) ([]Payment, error) {
	return s.repo.ListByEmail(email, limit, offset)
}
