package authz

import (
	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/model"

	"github.com/google/uuid"
)

// Check is one authorization rule. It returns nil to allow or an
// *apierror.Error naming the reason for denial.
type Check func(id *Identity) error

// Authorize runs checks in order and returns the first denial.
func Authorize(id *Identity, checks ...Check) error {
	if id == nil {
		return apierror.Unauthenticated("Not authenticated")
	}
	for _, check := range checks {
		if err := check(id); err != nil {
			return err
		}
	}
	return nil
}

func ActiveRequired(id *Identity) error {
	if !id.IsActive {
		return apierror.E(apierror.KindInactiveEmployee, "Inactive employee")
	}
	return nil
}

func SuperuserRequired(id *Identity) error {
	if !id.IsSuperuser() {
		return apierror.E(apierror.KindInsufficientPrivilege, "The employee doesn't have enough privileges")
	}
	return nil
}

// TenantMatch denies access to rows owned by another enterprise. Superusers
// get no bypass.
func TenantMatch(enterpriseID uuid.UUID) Check {
	return func(id *Identity) error {
		if id.Enterprise.ID != enterpriseID {
			return apierror.E(apierror.KindCrossTenantAccess, "The resource belongs to another enterprise")
		}
		return nil
	}
}

func PermissionRequired(name model.PermissionName) Check {
	return func(id *Identity) error {
		if !id.HasPermission(name) {
			return apierror.E(apierror.KindInsufficientPrivilege, "Missing permission "+string(name))
		}
		return nil
	}
}

// CanDeleteEmployee applies the employee deletion rules after the tenant check.
func CanDeleteEmployee(actor *Identity, target *model.Employee) error {
	if err := Authorize(actor, TenantMatch(target.EnterpriseID)); err != nil {
		return err
	}
	if target.ID == actor.ID {
		return apierror.E(apierror.KindSelfDeletionForbidden, "You cannot delete yourself")
	}
	if target.Role != nil && target.Role.Name.IsSuperuser() {
		return apierror.E(apierror.KindProtectedAdminDeletion, "An employee with the ADMIN role cannot be deleted")
	}
	return nil
}

// CanDeleteWithSales blocks deletion of a parent row that still has sales.
func CanDeleteWithSales(resource string, sales int64) error {
	return CanDeleteWithChildren(resource, "sales", sales)
}

// CanDeleteWithChildren blocks deletion while n child rows still reference the resource.
func CanDeleteWithChildren(resource, children string, n int64) error {
	if n > 0 {
		return apierror.E(apierror.KindReferentialDeleteBlocked,
			"Cannot delete "+resource+" with associated "+children)
	}
	return nil
}
