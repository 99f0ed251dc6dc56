// Package access decides whether an actor may toggle another account's
// active state or change another account's role, and applies the
// resulting mutation. The rules are an explicit table rather than a
// rank comparison because admin protections are asymmetric: nobody,
// other admins included, may touch an admin account.
package access

import (
	"errors"

	"authhub/auth-api/model"

	"gorm.io/gorm"
)

var (
	ErrAccessDenied = errors.New("you are not allowed to perform this action")
	ErrSelfTarget   = errors.New("you cannot act on your own account")
	ErrInvalidRole  = errors.New("invalid role selected")
)

// IsStaff reports whether the user may use the admin surface at all
func IsStaff(u *model.User) bool {
	return u.Active && (u.Role.IsStaff() || u.Role.IsSuperuser())
}

// CanToggleActive evaluates the activation policy without touching the
// database. Rule order matters:
//  1. nobody acts on their own account
//  2. moderators manage members only
//  3. admins cannot deactivate other admins
func CanToggleActive(actor, target *model.User) error {
	if !IsStaff(actor) {
		return ErrAccessDenied
	}

	if actor.ID == target.ID {
		return ErrSelfTarget
	}

	if actor.Role == model.RoleModerator && target.Role != model.RoleMember {
		return ErrAccessDenied
	}

	if actor.Role == model.RoleAdmin && target.Role == model.RoleAdmin {
		return ErrAccessDenied
	}

	return nil
}

// CanChangeRole evaluates the role change policy without touching the
// database. Only admins change roles, never their own, and accounts
// that already hold the admin role are immutable.
func CanChangeRole(actor, target *model.User, role model.Role) error {
	if !IsStaff(actor) || actor.Role != model.RoleAdmin {
		return ErrAccessDenied
	}

	if actor.ID == target.ID {
		return ErrSelfTarget
	}

	if target.Role == model.RoleAdmin {
		return ErrAccessDenied
	}

	if !role.Valid() {
		return ErrInvalidRole
	}

	return nil
}

// ToggleActive flips the target's active state if the policy allows
// it and returns the new state. The flip re-reads the target inside
// the transaction so concurrent toggles serialize cleanly.
func ToggleActive(db *gorm.DB, actor, target *model.User) (bool, error) {
	if err := CanToggleActive(actor, target); err != nil {
		return false, err
	}

	var newState bool

	err := db.Transaction(func(tx *gorm.DB) error {
		var fresh model.User

		if err := tx.Where("id = ?", target.ID).First(&fresh).Error; err != nil {
			return err
		}

		newState = !fresh.Active

		return tx.Model(&model.User{}).
			Where("id = ?", target.ID).
			Update("active", newState).
			Error
	})
	if err != nil {
		return false, err
	}

	target.Active = newState
	return newState, nil
}

// ChangeRole sets the target's role if the policy allows it. Staff and
// superuser capability follow the role automatically, so a single
// column update keeps everything consistent.
func ChangeRole(db *gorm.DB, actor, target *model.User, role model.Role) (model.Role, error) {
	if err := CanChangeRole(actor, target, role); err != nil {
		return "", err
	}

	if err := db.Model(&model.User{}).
		Where("id = ?", target.ID).
		Update("role", role).
		Error; err != nil {
		return "", err
	}

	target.Role = role
	return role, nil
}
