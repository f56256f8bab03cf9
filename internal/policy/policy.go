// Package policy contains pure access control decisions for the store
// manager API. Every function takes the caller (and, where relevant, the
// target resource) and returns a decision as an error; none of them
// performs I/O.
package policy

import (
	"errors"

	"github.com/oma0256/store-manager-api/internal/models"
)

var (
	// ErrMustBeAdmin is returned when an operation requires a store owner.
	ErrMustBeAdmin = errors.New("Please login as a store owner")
	// ErrMustBeAttendant is returned when an operation requires a store attendant.
	ErrMustBeAttendant = errors.New("Please login as a store attendant")
	// ErrNotYourSale is returned when an attendant asks for another attendant's sale.
	ErrNotYourSale = errors.New("You didn't make this sale")
	// ErrSeedAdminImmutable is returned on attempts to change the seed admin's rights.
	ErrSeedAdminImmutable = errors.New("The rights of the initial store owner cannot be changed")
)

// MustBeAdmin allows only store owners.
func MustBeAdmin(caller *models.User) error {
	if caller == nil || !caller.IsAdmin {
		return ErrMustBeAdmin
	}
	return nil
}

// MustBeAttendant allows only store attendants.
func MustBeAttendant(caller *models.User) error {
	if caller == nil || caller.IsAdmin {
		return ErrMustBeAttendant
	}
	return nil
}

// MayViewSale allows admins to view any sale and attendants to view
// only sales they made themselves.
func MayViewSale(caller *models.User, sale *models.Sale) error {
	if caller == nil {
		return ErrNotYourSale
	}
	if caller.IsAdmin || sale.AttendantID == caller.ID {
		return nil
	}
	return ErrNotYourSale
}

// MayToggleRights allows an admin to toggle another user's admin rights.
// The seed admin's rights are immutable.
func MayToggleRights(caller, target *models.User) error {
	if err := MustBeAdmin(caller); err != nil {
		return err
	}
	if target.ID == models.SeedAdminID {
		return ErrSeedAdminImmutable
	}
	return nil
}
