package model

import (
	"encoding/json"
	"time"
)

// UserRecord is a row of the `users` collection. The dashboard only reads it.
type UserRecord struct {
	ID         int64     `json:"id" firestore:"id"`
	Name       string    `json:"name,omitempty" firestore:"name,omitempty"`
	Email      string    `json:"email,omitempty" firestore:"email,omitempty"`
	Location   *string   `json:"location" firestore:"location"`
	TotalSpend any       `json:"total_spend" firestore:"total_spend"`
	Status     string    `json:"status,omitempty" firestore:"status,omitempty"`
	CreatedAt  time.Time `json:"created_at" firestore:"created_at"`
}

// VendorRecord is a row of the `vendors` collection.
// VerificationStatus and OnboardingStatus are free text in the source data.
type VendorRecord struct {
	ID                 int64   `json:"id" firestore:"id"`
	Name               string  `json:"name,omitempty" firestore:"name,omitempty"`
	Location           *string `json:"location" firestore:"location"`
	Revenue            any     `json:"revenue" firestore:"revenue"`
	VerificationStatus string  `json:"verification_status,omitempty" firestore:"verification_status,omitempty"`
	OnboardingStatus   string  `json:"onboarding_status,omitempty" firestore:"onboarding_status,omitempty"`
	ProductCount       int     `json:"product_count" firestore:"product_count"`
	Rating             float64 `json:"rating" firestore:"rating"`
}

// OrderRecord is a row of the `orders` collection.
type OrderRecord struct {
	ID          int64      `json:"id" firestore:"id"`
	UserID      int64      `json:"user_id" firestore:"user_id"`
	Location    *string    `json:"location" firestore:"location"`
	TotalAmount any        `json:"total_amount" firestore:"total_amount"`
	Status      string     `json:"status,omitempty" firestore:"status,omitempty"`
	CreatedAt   time.Time  `json:"created_at" firestore:"created_at"`
	UserDetails UserDetail `json:"user_details" firestore:"-"`
}

// UserInfo is the subset of user fields joined onto an order.
type UserInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Location string `json:"location,omitempty"`
}

// UserDetailKind tells which shape a joined user relation arrived in.
type UserDetailKind int

const (
	UserDetailAbsent UserDetailKind = iota
	UserDetailSingle
	UserDetailMany
)

func (k UserDetailKind) String() string {
	switch k {
	case UserDetailSingle:
		return "single"
	case UserDetailMany:
		return "many"
	default:
		return "absent"
	}
}

// UserDetail is the user relation joined onto an order. Depending on the join
// fan-out the store returns nothing, a single object, or a list.
type UserDetail struct {
	kind  UserDetailKind
	items []UserInfo
}

// SingleUserDetail wraps one joined user.
func SingleUserDetail(info UserInfo) UserDetail {
	return UserDetail{kind: UserDetailSingle, items: []UserInfo{info}}
}

// ManyUserDetail wraps a joined list. An empty list is Absent.
func ManyUserDetail(infos []UserInfo) UserDetail {
	if len(infos) == 0 {
		return UserDetail{}
	}
	return UserDetail{kind: UserDetailMany, items: append([]UserInfo(nil), infos...)}
}

// NewUserDetail builds a UserDetail from a decoded JSON/Firestore value:
// nil, a map, or a slice of maps.
func NewUserDetail(v any) UserDetail {
	switch t := v.(type) {
	case nil:
		return UserDetail{}
	case UserInfo:
		return SingleUserDetail(t)
	case []UserInfo:
		return ManyUserDetail(t)
	case map[string]any:
		return SingleUserDetail(userInfoFromMap(t))
	case []any:
		infos := make([]UserInfo, 0, len(t))
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				infos = append(infos, userInfoFromMap(m))
			}
		}
		return ManyUserDetail(infos)
	case []map[string]any:
		infos := make([]UserInfo, 0, len(t))
		for _, m := range t {
			infos = append(infos, userInfoFromMap(m))
		}
		return ManyUserDetail(infos)
	default:
		return UserDetail{}
	}
}

func userInfoFromMap(m map[string]any) UserInfo {
	str := func(key string) string {
		if s, ok := m[key].(string); ok {
			return s
		}
		return ""
	}
	return UserInfo{Name: str("name"), Email: str("email"), Location: str("location")}
}

// Kind reports the shape the relation arrived in.
func (d UserDetail) Kind() UserDetailKind { return d.kind }

// First returns the first joined user, if any.
func (d UserDetail) First() (UserInfo, bool) {
	if len(d.items) == 0 {
		return UserInfo{}, false
	}
	return d.items[0], true
}

// FirstOrDefault returns the first joined user or the zero UserInfo.
func (d UserDetail) FirstOrDefault() UserInfo {
	info, _ := d.First()
	return info
}

// MarshalJSON renders the relation normalized to first-or-null.
func (d UserDetail) MarshalJSON() ([]byte, error) {
	info, ok := d.First()
	if !ok {
		return []byte("null"), nil
	}
	return json.Marshal(info)
}

// UnmarshalJSON accepts null, an object, or a list of objects.
func (d *UserDetail) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = NewUserDetail(raw)
	return nil
}
