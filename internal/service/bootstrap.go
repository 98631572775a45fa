package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MartinOstios/backend-posco/internal/config"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/repository"
	"github.com/MartinOstios/backend-posco/internal/security"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PermissionCatalog is the set of permissions provisioned at startup.
var PermissionCatalog = map[model.PermissionName]string{
	model.PermManageEmployees: "Create, update and delete employees",
	model.PermManageInventory: "Manage categories, products and stock",
	model.PermManageSales:     "Register clients, invoices and sales",
	model.PermViewReports:     "View stock movements and reports",
	model.PermManageSuppliers: "Manage suppliers",
}

// DefaultRolePermissions maps each role to the permissions it gets when first created.
// ADMIN gets the whole catalog.
var DefaultRolePermissions = map[model.RoleName][]model.PermissionName{
	model.RoleEmployee: {model.PermManageInventory, model.PermViewReports},
	model.RoleSeller:   {model.PermManageSales},
}

// Bootstrapper provisions the permission catalog, the fixed roles and,
// when configured, the first enterprise with its ADMIN employee.
// Every step is idempotent.
type Bootstrapper struct {
	tx          repository.TxManager
	perms       repository.PermissionRepository
	roles       repository.RoleRepository
	enterprises repository.EnterpriseRepository
	employees   repository.EmployeeRepository
}

func NewBootstrapper(
	tx repository.TxManager,
	perms repository.PermissionRepository,
	roles repository.RoleRepository,
	enterprises repository.EnterpriseRepository,
	employees repository.EmployeeRepository,
) *Bootstrapper {
	return &Bootstrapper{tx: tx, perms: perms, roles: roles, enterprises: enterprises, employees: employees}
}

func (b *Bootstrapper) Run(ctx context.Context, cfg *config.Config) error {
	return b.tx.RunInTx(ctx, func(txCtx context.Context) error {
		catalog, err := b.ensurePermissions(txCtx)
		if err != nil {
			return fmt.Errorf("bootstrap permissions: %w", err)
		}
		roles, err := b.ensureRoles(txCtx, catalog)
		if err != nil {
			return fmt.Errorf("bootstrap roles: %w", err)
		}
		if !cfg.BootstrapEnabled() {
			log.Info().Msg("bootstrap: first superuser not configured, skipping")
			return nil
		}
		if err := b.ensureSuperuser(txCtx, cfg, roles[model.RoleAdmin]); err != nil {
			return fmt.Errorf("bootstrap superuser: %w", err)
		}
		return nil
	})
}

func (b *Bootstrapper) ensurePermissions(ctx context.Context) (map[model.PermissionName]model.Permission, error) {
	out := make(map[model.PermissionName]model.Permission, len(PermissionCatalog))
	for name, desc := range PermissionCatalog {
		p, err := b.perms.FindByName(ctx, name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			p = &model.Permission{Name: name, Description: desc}
			if err = b.perms.Create(ctx, p); err == nil {
				log.Info().Str("permission", string(name)).Msg("bootstrap: permission created")
			}
		}
		if err != nil {
			return nil, err
		}
		out[name] = *p
	}
	return out, nil
}

func (b *Bootstrapper) ensureRoles(ctx context.Context, catalog map[model.PermissionName]model.Permission) (map[model.RoleName]*model.Role, error) {
	out := make(map[model.RoleName]*model.Role, len(model.RoleNames))
	for _, name := range model.RoleNames {
		role, err := b.roles.FindByName(ctx, name)
		if err == nil {
			out[name] = role
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		role = &model.Role{Name: name, Description: strings.ToLower(string(name)) + " role"}
		if err := b.roles.Create(ctx, role); err != nil {
			return nil, err
		}
		var perms []model.Permission
		if name.IsSuperuser() {
			for _, p := range catalog {
				perms = append(perms, p)
			}
		} else {
			for _, pn := range DefaultRolePermissions[name] {
				perms = append(perms, catalog[pn])
			}
		}
		if err := b.roles.ReplacePermissions(ctx, role, perms); err != nil {
			return nil, err
		}
		log.Info().Str("role", string(name)).Int("permissions", len(perms)).Msg("bootstrap: role created")
		out[name] = role
	}
	return out, nil
}

func (b *Bootstrapper) ensureSuperuser(ctx context.Context, cfg *config.Config, admin *model.Role) error {
	ent, err := b.enterprises.FindByTaxID(ctx, cfg.FirstEnterpriseNIT)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ent = &model.Enterprise{
			Name:     cfg.FirstEnterpriseName,
			TaxID:    cfg.FirstEnterpriseNIT,
			Email:    cfg.FirstEnterpriseEmail,
			Phone:    cfg.FirstEnterprisePhone,
			Currency: "COP",
		}
		err = b.enterprises.Create(ctx, ent)
	}
	if err != nil {
		return err
	}

	email := strings.ToLower(cfg.FirstSuperuser)
	_, err = b.employees.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := security.HashPassword(cfg.FirstSuperuserPassword)
	if err != nil {
		return err
	}
	emp := &model.Employee{
		Name:         "Admin",
		Lastname:     cfg.FirstEnterpriseName,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		EnterpriseID: ent.ID,
		RoleID:       admin.ID,
	}
	if err := b.employees.Create(ctx, emp); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("bootstrap: superuser created")
	return nil
}
