package service

import (
	"context"
	"sync"
	"time"

	"github.com/MartinOstios/backend-posco/internal/authz"
	"github.com/MartinOstios/backend-posco/internal/infra"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Fixtures ─────────────────────────────────────────────────────────────────

func actorIn(enterpriseID uuid.UUID, role model.RoleName, perms ...model.PermissionName) *authz.Identity {
	id := &authz.Identity{
		ID:         uuid.New(),
		Email:      "actor@posco.test",
		IsActive:   true,
		Enterprise: authz.EnterpriseRef{ID: enterpriseID, Name: "Tienda", TaxID: "900123"},
		Role:       authz.RoleRef{ID: uuid.New(), Name: role},
	}
	for _, p := range perms {
		id.Role.Permissions = append(id.Role.Permissions, authz.PermissionRef{ID: uuid.New(), Name: p})
	}
	return id
}

// ── TxManager ────────────────────────────────────────────────────────────────

// lockingTx serializes units of work, standing in for the row lock that
// FindForUpdate takes in Postgres. Nested calls join the outer unit.
type lockingTx struct{ mu sync.Mutex }

type inTxKey struct{}

func (t *lockingTx) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	if ctx.Value(inTxKey{}) != nil {
		return fn(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(context.WithValue(ctx, inTxKey{}, true))
}

var _ repository.TxManager = (*lockingTx)(nil)

// ── Products ─────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]model.Product
	sales    map[uuid.UUID]int64
}

func newStubProductRepo(ps ...model.Product) *stubProductRepo {
	r := &stubProductRepo{products: map[uuid.UUID]model.Product{}, sales: map[uuid.UUID]int64{}}
	for _, p := range ps {
		r.products[p.ID] = p
	}
	return r
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for _, other := range r.products {
		if other.EnterpriseID == p.EnterpriseID && other.BarCode == p.BarCode {
			return gorm.ErrDuplicatedKey
		}
	}
	r.products[p.ID] = *p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *stubProductRepo) FindForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *stubProductRepo) FindByBarCode(_ context.Context, enterpriseID uuid.UUID, barCode string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.EnterpriseID == enterpriseID && p.BarCode == barCode {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, enterpriseID uuid.UUID, f repository.ProductFilter, _ repository.Page) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Product
	for _, p := range r.products {
		if p.EnterpriseID != enterpriseID {
			continue
		}
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = *p
	return nil
}

func (r *stubProductRepo) UpdateStock(_ context.Context, id uuid.UUID, stock int, status model.ProductStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.products[id]
	p.Stock, p.Status = stock, status
	r.products[id] = p
	return nil
}

func (r *stubProductRepo) CountSales(_ context.Context, id uuid.UUID) (int64, error) {
	return r.sales[id], nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) stock(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Stock
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubCategoryRepo struct {
	rows     map[uuid.UUID]model.Category
	products map[uuid.UUID]int64
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	c.ID = uuid.New()
	r.rows[c.ID] = *c
	return nil
}
func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}
func (r *stubCategoryRepo) FindByName(_ context.Context, enterpriseID uuid.UUID, name string) (*model.Category, error) {
	for _, c := range r.rows {
		if c.EnterpriseID == enterpriseID && c.Name == name {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *stubCategoryRepo) ListByEnterprise(context.Context, uuid.UUID, repository.Page) ([]model.Category, error) {
	return nil, nil
}
func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.rows[c.ID] = *c
	return nil
}
func (r *stubCategoryRepo) CountProducts(_ context.Context, id uuid.UUID) (int64, error) {
	return r.products[id], nil
}
func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

type stubSupplierRepo struct {
	rows     map[uuid.UUID]model.Supplier
	products map[uuid.UUID]int64
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	s.ID = uuid.New()
	r.rows[s.ID] = *s
	return nil
}
func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}
func (r *stubSupplierRepo) ListByEnterprise(_ context.Context, enterpriseID uuid.UUID, _ repository.Page) ([]model.Supplier, error) {
	var out []model.Supplier
	for _, s := range r.rows {
		if s.EnterpriseID == enterpriseID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	r.rows[s.ID] = *s
	return nil
}
func (r *stubSupplierRepo) CountProducts(_ context.Context, id uuid.UUID) (int64, error) {
	return r.products[id], nil
}
func (r *stubSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

var _ repository.SupplierRepository = (*stubSupplierRepo)(nil)

type stubMovementRepo struct {
	mu   sync.Mutex
	rows []model.StockMovement
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = uuid.New()
	r.rows = append(r.rows, *m)
	return nil
}

func (r *stubMovementRepo) ListByProduct(_ context.Context, productID uuid.UUID, _ repository.Page) ([]model.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.StockMovement
	for _, m := range r.rows {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// ── Sales, invoices, clients ─────────────────────────────────────────────────

type stubSaleRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]model.Sale
}

func newStubSaleRepo() *stubSaleRepo { return &stubSaleRepo{rows: map[uuid.UUID]model.Sale{}} }

func (r *stubSaleRepo) Create(_ context.Context, s *model.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.rows[s.ID] = *s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r *stubSaleRepo) filter(keep func(model.Sale) bool) []model.Sale {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Sale
	for _, s := range r.rows {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func (r *stubSaleRepo) ListByEnterprise(_ context.Context, enterpriseID uuid.UUID, _ repository.Page) ([]model.Sale, error) {
	return r.filter(func(s model.Sale) bool { return s.EnterpriseID == enterpriseID }), nil
}

func (r *stubSaleRepo) ListByDateRange(_ context.Context, enterpriseID uuid.UUID, from, to time.Time, _ repository.Page) ([]model.Sale, error) {
	return r.filter(func(s model.Sale) bool {
		return s.EnterpriseID == enterpriseID && !s.SellDate.Before(from) && !s.SellDate.After(to)
	}), nil
}

func (r *stubSaleRepo) ListByClient(_ context.Context, clientID uuid.UUID, _ repository.Page) ([]model.Sale, error) {
	return r.filter(func(s model.Sale) bool { return s.ClientID == clientID }), nil
}

func (r *stubSaleRepo) ListByInvoice(_ context.Context, invoiceID uuid.UUID, _ repository.Page) ([]model.Sale, error) {
	return r.filter(func(s model.Sale) bool { return s.InvoiceID == invoiceID }), nil
}

func (r *stubSaleRepo) CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	list, _ := r.ListByClient(ctx, clientID, repository.Page{})
	return int64(len(list)), nil
}

func (r *stubSaleRepo) CountByInvoice(ctx context.Context, invoiceID uuid.UUID) (int64, error) {
	list, _ := r.ListByInvoice(ctx, invoiceID, repository.Page{})
	return int64(len(list)), nil
}

func (r *stubSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

type stubInvoiceRepo struct{ rows map[uuid.UUID]model.Invoice }

func (r *stubInvoiceRepo) Create(_ context.Context, inv *model.Invoice) error {
	inv.ID = uuid.New()
	inv.CreatedAt = time.Now()
	r.rows[inv.ID] = *inv
	return nil
}
func (r *stubInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &inv, nil
}
func (r *stubInvoiceRepo) FindWithSales(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	return r.FindByID(ctx, id)
}
func (r *stubInvoiceRepo) ListByEnterprise(context.Context, uuid.UUID, repository.Page) ([]model.Invoice, error) {
	return nil, nil
}
func (r *stubInvoiceRepo) ListByDateRange(context.Context, uuid.UUID, time.Time, time.Time, repository.Page) ([]model.Invoice, error) {
	return nil, nil
}
func (r *stubInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

var _ repository.InvoiceRepository = (*stubInvoiceRepo)(nil)

type stubClientRepo struct{ rows map[uuid.UUID]model.Client }

func (r *stubClientRepo) Create(_ context.Context, c *model.Client) error {
	c.ID = uuid.New()
	r.rows[c.ID] = *c
	return nil
}
func (r *stubClientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}
func (r *stubClientRepo) ListByEnterprise(_ context.Context, enterpriseID uuid.UUID, _ repository.Page) ([]model.Client, error) {
	var out []model.Client
	for _, c := range r.rows {
		if c.EnterpriseID == enterpriseID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *stubClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

var _ repository.ClientRepository = (*stubClientRepo)(nil)

// ── Employees and roles ──────────────────────────────────────────────────────

type stubEmployeeRepo struct {
	rows map[uuid.UUID]model.Employee
}

func newStubEmployeeRepo(es ...model.Employee) *stubEmployeeRepo {
	r := &stubEmployeeRepo{rows: map[uuid.UUID]model.Employee{}}
	for _, e := range es {
		r.rows[e.ID] = e
	}
	return r
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *model.Employee) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.rows[e.ID] = *e
	return nil
}
func (r *stubEmployeeRepo) FindWithAccess(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	e, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}
func (r *stubEmployeeRepo) FindByEmail(_ context.Context, email string) (*model.Employee, error) {
	for _, e := range r.rows {
		if e.Email == email {
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *stubEmployeeRepo) ListByEnterprise(_ context.Context, enterpriseID uuid.UUID, _ repository.Page) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range r.rows {
		if e.EnterpriseID == enterpriseID {
			out = append(out, e)
		}
	}
	return out, nil
}
func (r *stubEmployeeRepo) Update(_ context.Context, e *model.Employee) error {
	r.rows[e.ID] = *e
	return nil
}
func (r *stubEmployeeRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	e := r.rows[id]
	e.IsActive = active
	r.rows[id] = e
	return nil
}
func (r *stubEmployeeRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	e := r.rows[id]
	e.PasswordHash = hash
	r.rows[id] = e
	return nil
}
func (r *stubEmployeeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

var _ repository.EmployeeRepository = (*stubEmployeeRepo)(nil)

type stubRoleRepo struct{ rows map[uuid.UUID]model.Role }

func (r *stubRoleRepo) Create(_ context.Context, role *model.Role) error {
	role.ID = uuid.New()
	r.rows[role.ID] = *role
	return nil
}
func (r *stubRoleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Role, error) {
	role, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &role, nil
}
func (r *stubRoleRepo) FindByName(_ context.Context, name model.RoleName) (*model.Role, error) {
	for _, role := range r.rows {
		if role.Name == name {
			return &role, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *stubRoleRepo) List(context.Context, repository.Page) ([]model.Role, error) { return nil, nil }
func (r *stubRoleRepo) Permissions(_ context.Context, roleID uuid.UUID) ([]model.Permission, error) {
	return r.rows[roleID].Permissions, nil
}
func (r *stubRoleRepo) ReplacePermissions(_ context.Context, role *model.Role, perms []model.Permission) error {
	role.Permissions = perms
	r.rows[role.ID] = *role
	return nil
}

var _ repository.RoleRepository = (*stubRoleRepo)(nil)

// ── Password reset ───────────────────────────────────────────────────────────

type stubResetRepo struct{ rows []*model.PasswordResetToken }

func (r *stubResetRepo) Create(_ context.Context, t *model.PasswordResetToken) error {
	t.ID = uuid.New()
	r.rows = append(r.rows, t)
	return nil
}

func (r *stubResetRepo) InvalidateForEmail(_ context.Context, email string) error {
	for _, t := range r.rows {
		if t.Email == email {
			t.IsUsed = true
		}
	}
	return nil
}

func (r *stubResetRepo) FindValid(_ context.Context, email, code string, notBefore time.Time) (*model.PasswordResetToken, error) {
	for i := len(r.rows) - 1; i >= 0; i-- {
		t := r.rows[i]
		if t.Email == email && t.Token == code && !t.IsUsed && !t.CreatedAt.Before(notBefore) {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubResetRepo) Consume(_ context.Context, id uuid.UUID) (bool, error) {
	for _, t := range r.rows {
		if t.ID == id && !t.IsUsed {
			t.IsUsed = true
			return true, nil
		}
	}
	return false, nil
}

var _ repository.ResetTokenRepository = (*stubResetRepo)(nil)

type stubMailer struct {
	codes []string
	err   error
}

func (m *stubMailer) SendResetCode(_ context.Context, _, _, code string, _ time.Duration) error {
	m.codes = append(m.codes, code)
	return m.err
}

var _ ResetCodeMailer = (*stubMailer)(nil)

// ── Notifications ────────────────────────────────────────────────────────────

type stubTokenRepo struct{ rows map[uuid.UUID]model.NotificationToken }

func (r *stubTokenRepo) Create(_ context.Context, t *model.NotificationToken) error {
	t.ID = uuid.New()
	r.rows[t.ID] = *t
	return nil
}
func (r *stubTokenRepo) FindByID(_ context.Context, id uuid.UUID) (*model.NotificationToken, error) {
	t, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}
func (r *stubTokenRepo) FindActiveByToken(_ context.Context, token string) (*model.NotificationToken, error) {
	for _, t := range r.rows {
		if t.Token == token && t.Active {
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *stubTokenRepo) ListByUser(_ context.Context, userID uuid.UUID, activeOnly bool) ([]model.NotificationToken, error) {
	var out []model.NotificationToken
	for _, t := range r.rows {
		if t.UserID == userID && (!activeOnly || t.Active) {
			out = append(out, t)
		}
	}
	return out, nil
}
func (r *stubTokenRepo) Update(_ context.Context, t *model.NotificationToken) error {
	r.rows[t.ID] = *t
	return nil
}
func (r *stubTokenRepo) Deactivate(_ context.Context, ids ...uuid.UUID) error {
	for _, id := range ids {
		t := r.rows[id]
		t.Active = false
		r.rows[id] = t
	}
	return nil
}
func (r *stubTokenRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

var _ repository.NotificationTokenRepository = (*stubTokenRepo)(nil)

// stubPusher fails with reject[token] for every token listed in reject.
type stubPusher struct {
	sent   []infra.PushMessage
	reject map[string]error
}

func (p *stubPusher) Push(_ context.Context, msg infra.PushMessage) error {
	if err, ok := p.reject[msg.To]; ok {
		return err
	}
	p.sent = append(p.sent, msg)
	return nil
}

var _ Pusher = (*stubPusher)(nil)
