package service

import (
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/model"
)

func mapEnterprise(e model.Enterprise) dto.EnterpriseResponse {
	return dto.EnterpriseResponse{
		ID: e.ID, Name: e.Name, TaxID: e.TaxID, Email: e.Email,
		Phone: e.Phone, Currency: e.Currency, CreatedAt: e.CreatedAt,
	}
}

func mapPermission(p model.Permission) dto.PermissionResponse {
	return dto.PermissionResponse{ID: p.ID, Name: string(p.Name), Description: p.Description}
}

func mapRole(r model.Role) dto.RoleResponse {
	resp := dto.RoleResponse{
		ID:          r.ID,
		Name:        string(r.Name),
		Description: r.Description,
		Permissions: make([]dto.PermissionResponse, 0, len(r.Permissions)),
	}
	for _, p := range r.Permissions {
		resp.Permissions = append(resp.Permissions, mapPermission(p))
	}
	return resp
}

func mapCategory(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, EnterpriseID: c.EnterpriseID}
}

func mapSupplier(s model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID: s.ID, Name: s.Name, Email: s.Email, Phone: s.Phone, TaxID: s.TaxID, EnterpriseID: s.EnterpriseID,
	}
}

func mapProduct(p model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Status:           string(p.Status),
		Stock:            p.Stock,
		SupplierPrice:    p.SupplierPrice,
		PublicPrice:      p.PublicPrice,
		Thumbnail:        p.Thumbnail,
		BarCode:          p.BarCode,
		MinimalSafeStock: p.MinimalSafeStock,
		LowStock:         p.Stock <= p.MinimalSafeStock,
		Discount:         p.Discount,
		EnterpriseID:     p.EnterpriseID,
		CategoryID:       p.CategoryID,
		SupplierID:       p.SupplierID,
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	if p.Supplier != nil {
		resp.SupplierName = p.Supplier.Name
	}
	return resp
}

func mapMovement(m model.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID: m.ID, ProductID: m.ProductID, Kind: string(m.Kind), Delta: m.Delta,
		StockBefore: m.StockBefore, StockAfter: m.StockAfter, Reason: m.Reason,
		ReferenceID: m.ReferenceID, CreatedAt: m.CreatedAt,
	}
}

func mapClient(c model.Client) dto.ClientResponse {
	return dto.ClientResponse{ID: c.ID, Name: c.Name, EnterpriseID: c.EnterpriseID}
}

func mapInvoice(i model.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID: i.ID, PaymentMethod: string(i.PaymentMethod), TotalPrice: i.TotalPrice,
		EnterpriseID: i.EnterpriseID, CreatedAt: i.CreatedAt,
	}
}

func mapSale(s model.Sale) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:           s.ID,
		Quantity:     s.Quantity,
		Discount:     s.Discount,
		Price:        s.Price,
		SellDate:     s.SellDate.Format(dateLayout),
		TotalPrice:   s.TotalPrice,
		InvoiceID:    s.InvoiceID,
		ClientID:     s.ClientID,
		ProductID:    s.ProductID,
		EmployeeID:   s.EmployeeID,
		EnterpriseID: s.EnterpriseID,
	}
	if s.Product != nil {
		resp.ProductName = s.Product.Name
	}
	return resp
}

func mapToken(t model.NotificationToken) dto.NotificationTokenResponse {
	return dto.NotificationTokenResponse{
		ID: t.ID, Token: t.Token, DeviceName: t.DeviceName, Active: t.Active,
		UserID: t.UserID, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
}

// mapList applies fn to every row, always returning a non-nil slice.
func mapList[M any, R any](rows []M, fn func(M) R) []R {
	out := make([]R, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}
