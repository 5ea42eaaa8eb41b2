package entity

import (
	"time"
)

type AccountType string

const (
	AccountTypeRetailer AccountType = "retailer"
	AccountTypeCustomer AccountType = "customer"
)

type User struct {
	ID          string      `json:"id" firestore:"id"`
	Email       string      `json:"email" firestore:"email"`
	DisplayName string      `json:"display_name,omitempty" firestore:"displayName,omitempty"`
	Phone       string      `json:"phone,omitempty" firestore:"phone,omitempty"`
	AccountType AccountType `json:"account_type" firestore:"accountType"`
	Status      string      `json:"status" firestore:"status"`

	EmailVerified bool `json:"email_verified" firestore:"emailVerified"`

	HasActiveSubscription bool       `json:"has_active_subscription" firestore:"hasActiveSubscription"`
	SubscriptionEndDate   *time.Time `json:"subscription_end_date,omitempty" firestore:"subscriptionEndDate,omitempty"`

	BusinessName string `json:"business_name,omitempty" firestore:"businessName,omitempty"`

	Preferences map[string]bool        `json:"preferences,omitempty" firestore:"preferences,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty" firestore:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) IsRetailer() bool {
	return u.AccountType == AccountTypeRetailer
}

func (u *User) IsCustomer() bool {
	return u.AccountType == AccountTypeCustomer
}

// SubscriptionActive checks the flag together with the end date when present.
func (u *User) SubscriptionActive(at time.Time) bool {
	if !u.HasActiveSubscription {
		return false
	}
	if u.SubscriptionEndDate != nil && at.After(*u.SubscriptionEndDate) {
		return false
	}
	return true
}
