package models

// SubscriptionRecord is one phone's same-day subscription. CancelHold
// suppresses notifications without dropping the record, so the subscriber
// survives until the next daily reset.
type SubscriptionRecord struct {
	Phone      string   `json:"phone"`
	Vehicles   []string `json:"vehicles"`
	CancelHold bool     `json:"cancel_hold_until_09"`
	CreatedAt  string   `json:"created_at"`
}

func (r *SubscriptionRecord) Clone() *SubscriptionRecord {
	c := *r
	c.Vehicles = append([]string(nil), r.Vehicles...)
	return &c
}

func (r *SubscriptionRecord) HasVehicle(vehicle string) bool {
	for _, v := range r.Vehicles {
		if v == vehicle {
			return true
		}
	}
	return false
}

// SubscriberFile is the on-disk format of one day's subscriptions:
// a JSON object keyed by phone.
type SubscriberFile map[string]*SubscriptionRecord
