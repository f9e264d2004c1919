package payment

type RecordReq struct {
	Amount          int64  `json:"amount" validate:"required,gt=0"`
	Status          string `json:"status" validate:"required"`
	PaymentIntentID string `json:"paymentIntentId" validate:"required,max=64"`
	MembershipType  string `json:"membershipType" validate:"required_if=Status succeeded,omitempty,oneof=premium"`
	Currency        string `json:"currency" validate:"omitempty,len=3"`
}

type RecordResp struct {
	Message           string `json:"message"`
	MembershipUpdated bool   `json:"membershipUpdated"`
}

type IntentReq struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
}
