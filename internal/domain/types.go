package domain

import "time"

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Can reports whether the user's role grants c. A nil user has no capabilities.
func (u *User) Can(c Capability) bool {
	if u == nil {
		return false
	}
	return u.Role.Can(c)
}

type Drink struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Size      string    `json:"size"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LocationType string

const (
	LocationPantry LocationType = "pantry"
	LocationCage   LocationType = "cage"
)

// LocationTypes lists the accepted storage location types in display order.
var LocationTypes = []LocationType{LocationPantry, LocationCage}

type StorageLocation struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Type        LocationType `json:"type"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// DrinkRef is the denormalized drink embedded in stock rows and logs.
type DrinkRef struct {
	Name     string `json:"name"`
	Size     string `json:"size"`
	Category string `json:"category"`
}

// LocationRef is the denormalized storage location embedded in stock rows and logs.
type LocationRef struct {
	Name string       `json:"name"`
	Type LocationType `json:"type"`
}

// UserRef is the denormalized actor embedded in stock logs.
type UserRef struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type StockStatus string

const (
	StatusLow StockStatus = "Low"
	StatusOK  StockStatus = "OK"
)

type StockItem struct {
	ID                int64       `json:"id"`
	DrinkID           int64       `json:"drinkId"`
	StorageLocationID int64       `json:"storageLocationId"`
	Quantity          int         `json:"quantity"`
	Threshold         int         `json:"threshold"`
	UpdatedAt         time.Time   `json:"updatedAt"`
	Drink             DrinkRef    `json:"Drink"`
	StorageLocation   LocationRef `json:"StorageLocation"`
}

// IsLow reports whether the item is at or below its reorder threshold.
func (s StockItem) IsLow() bool {
	return s.Quantity <= s.Threshold
}

func (s StockItem) Status() StockStatus {
	if s.IsLow() {
		return StatusLow
	}
	return StatusOK
}

type StockAction string

const (
	ActionIn  StockAction = "in"
	ActionOut StockAction = "out"
)

// ParseStockAction accepts "in" or "out".
func ParseStockAction(s string) (StockAction, bool) {
	switch StockAction(s) {
	case ActionIn, ActionOut:
		return StockAction(s), true
	default:
		return "", false
	}
}

type StockLog struct {
	ID              int64       `json:"id"`
	Action          StockAction `json:"action"`
	Quantity        int         `json:"quantity"`
	CreatedAt       time.Time   `json:"createdAt"`
	UserID          int64       `json:"userId"`
	User            UserRef     `json:"User"`
	Drink           DrinkRef    `json:"Drink"`
	StorageLocation LocationRef `json:"StorageLocation"`
}

type Pagination struct {
	TotalItems  int `json:"totalItems"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PerPage     int `json:"perPage"`
}
