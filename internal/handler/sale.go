package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fleetledger-backend/internal/domain"
	"fleetledger-backend/internal/server/authctx"
	"fleetledger-backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type SaleHandler struct {
	Service *service.SalesService
}

// RegisterSelfRoutes is mounted for every authenticated identity; callers
// below manager rank only ever see their own sales.
func (h SaleHandler) RegisterSelfRoutes(r chi.Router) {
	r.Get("/sales", h.list)
}

func (h SaleHandler) RegisterManageRoutes(r chi.Router) {
	r.Post("/sales", h.create)
	r.Get("/sales/export", h.export)
}

func (h SaleHandler) create(w http.ResponseWriter, r *http.Request) {
	identity := authctx.FromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		UserID        string          `json:"userId"`
		DriverID      string          `json:"driverId"`
		ChargeType    string          `json:"chargeType"`
		ChargeAmount  decimal.Decimal `json:"chargeAmount"`
		DueAmount     decimal.Decimal `json:"dueAmount"`
		DueCollection decimal.Decimal `json:"dueCollection"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	sale, err := h.Service.RecordSale(r.Context(), service.RecordSaleInput{
		UserID:        req.UserID,
		DriverID:      req.DriverID,
		ChargeType:    domain.ChargeType(req.ChargeType),
		ChargeAmount:  req.ChargeAmount,
		DueAmount:     req.DueAmount,
		DueCollection: req.DueCollection,
	}, *identity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saleJSON(*sale))
}

func (h SaleHandler) list(w http.ResponseWriter, r *http.Request) {
	identity := authctx.FromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID := r.URL.Query().Get("userId")
	if !service.MeetsRole(identity.Role, domain.RoleManager) {
		userID = identity.ID
	}

	sales, err := h.filteredSales(r, userID)
	if err != nil {
		if _, bad := err.(*badRequestError); bad {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeDomainError(w, err)
		return
	}

	resp := make([]map[string]any, 0, len(sales))
	for _, s := range sales {
		resp = append(resp, saleJSON(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h SaleHandler) export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	sales, err := h.filteredSales(r, r.URL.Query().Get("userId"))
	if err != nil {
		if _, bad := err.(*badRequestError); bad {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeDomainError(w, err)
		return
	}

	suffix := time.Now().Format("20060102_150405")
	switch format {
	case "csv":
		data, err := exportSalesCSV(sales)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "export failed")
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"sales_%s.csv\"", suffix))
		_, _ = w.Write(data)
	case "xlsx", "excel":
		data, err := exportSalesXLSX(sales)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "export failed")
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"sales_%s.xlsx\"", suffix))
		_, _ = w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use csv or xlsx)")
	}
}

// filteredSales applies the optional owner and date-range query filters.
func (h SaleHandler) filteredSales(r *http.Request, userID string) ([]domain.Sale, error) {
	startDate, err := parseDateQuery(r, "startDate")
	if err != nil {
		return nil, &badRequestError{"invalid startDate"}
	}
	endDate, err := parseDateQuery(r, "endDate")
	if err != nil {
		return nil, &badRequestError{"invalid endDate"}
	}
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return nil, &badRequestError{"startDate must be before endDate"}
	}

	sales, err := h.Service.ListSales(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	if startDate == nil && endDate == nil {
		return sales, nil
	}

	out := make([]domain.Sale, 0, len(sales))
	for _, s := range sales {
		if startDate != nil && s.CreatedAt.Before(*startDate) {
			continue
		}
		if endDate != nil && !s.CreatedAt.Before(endDate.AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func exportSalesCSV(sales []domain.Sale) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write([]string{
		"id", "user_id", "user_name", "driver_id", "driver_name",
		"charge_type", "charge_amount", "due_amount", "due_collection",
		"total_due", "created_at", "created_by",
	})
	for _, s := range sales {
		_ = w.Write([]string{
			s.ID,
			s.UserID,
			s.UserName,
			s.DriverID,
			s.DriverName,
			string(s.ChargeType),
			s.ChargeAmount.String(),
			s.DueAmount.String(),
			s.DueCollection.String(),
			s.TotalDue.String(),
			s.CreatedAt.UTC().Format(time.RFC3339),
			s.CreatedBy,
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportSalesXLSX(sales []domain.Sale) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Sales"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{
		"ID", "User ID", "User Name", "Driver ID", "Driver Name",
		"Charge Type", "Charge Amount", "Due Amount", "Due Collection",
		"Total Due", "Created At", "Created By",
	}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for rIdx, s := range sales {
		row := rIdx + 2
		values := []any{
			s.ID,
			s.UserID,
			s.UserName,
			s.DriverID,
			s.DriverName,
			string(s.ChargeType),
			s.ChargeAmount.String(),
			s.DueAmount.String(),
			s.DueCollection.String(),
			s.TotalDue.String(),
			s.CreatedAt.UTC().Format(time.RFC3339),
			s.CreatedBy,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "L1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func saleJSON(s domain.Sale) map[string]any {
	return map[string]any{
		"id":            s.ID,
		"userId":        s.UserID,
		"userName":      s.UserName,
		"driverId":      s.DriverID,
		"driverName":    s.DriverName,
		"chargeType":    string(s.ChargeType),
		"chargeAmount":  s.ChargeAmount.String(),
		"dueAmount":     s.DueAmount.String(),
		"dueCollection": s.DueCollection.String(),
		"totalDue":      s.TotalDue.String(),
		"createdAt":     s.CreatedAt.UTC().Format(time.RFC3339),
		"createdBy":     s.CreatedBy,
	}
}
