package model

import "time"

// Review is the stored row. AccountID is the owning account; every mutation
// is scoped by both the review id and the owner id.
type Review struct {
	ID        int64
	Text      string
	Date      time.Time
	VehicleID int64
	AccountID int64
}

// VehicleReview is a review joined with its reviewer, as shown on a vehicle
// detail page.
type VehicleReview struct {
	ID        int64
	Text      string
	Date      time.Time
	FirstName string
	LastName  string
}

// ScreenName renders the reviewer as first initial plus last name.
func (r VehicleReview) ScreenName() string {
	if r.FirstName == "" {
		return r.LastName
	}
	return r.FirstName[:1] + r.LastName
}

// AccountReview is a review joined with its vehicle, as listed on the
// account management page and on the edit/delete confirmation views.
type AccountReview struct {
	ID           int64
	Text         string
	Date         time.Time
	VehicleID    int64
	AccountID    int64
	VehicleYear  int
	VehicleMake  string
	VehicleModel string
}

// VehicleTitle renders the reviewed vehicle's display name.
func (r AccountReview) VehicleTitle() string {
	return Vehicle{Year: r.VehicleYear, Make: r.VehicleMake, Model: r.VehicleModel}.Title()
}
