package model

import "github.com/google/uuid"

// All lists every persisted model, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Enterprise{},
		&Permission{},
		&Role{},
		&RoleHasPermission{},
		&Employee{},
		&Category{},
		&Supplier{},
		&Product{},
		&Client{},
		&Invoice{},
		&Sale{},
		&StockMovement{},
		&NotificationToken{},
		&PasswordResetToken{},
	}
}

// OwnerID returns the enterprise a scoped row belongs to.
func (e *Employee) OwnerID() uuid.UUID      { return e.EnterpriseID }
func (c *Category) OwnerID() uuid.UUID      { return c.EnterpriseID }
func (s *Supplier) OwnerID() uuid.UUID      { return s.EnterpriseID }
func (p *Product) OwnerID() uuid.UUID       { return p.EnterpriseID }
func (c *Client) OwnerID() uuid.UUID        { return c.EnterpriseID }
func (i *Invoice) OwnerID() uuid.UUID       { return i.EnterpriseID }
func (s *Sale) OwnerID() uuid.UUID          { return s.EnterpriseID }
func (m *StockMovement) OwnerID() uuid.UUID { return m.EnterpriseID }
