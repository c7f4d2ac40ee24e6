package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pratoria-backoffice-service/internal/middleware"
	"pratoria-backoffice-service/internal/report"
	"pratoria-backoffice-service/internal/storage"
	"pratoria-backoffice-service/pkg/response"

	"github.com/phpdave11/gofpdf"
	"golang.org/x/crypto/bcrypt"
)

type exportRequest struct {
	Period string `json:"period"`
	Pin    string `json:"pin"`
}

// BackofficeReportExport renders the current bundle as a PDF and uploads it
// to the object store. Requires the store's export PIN on top of the normal
// auth.
func (h *Handler) BackofficeReportExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok || authCtx.StoreID == nil {
		response.Error(w, http.StatusUnauthorized, "STORE_ID_REQUIRED", "Store ID not found")
		return
	}
	storeID := *authCtx.StoreID

	if h.Exports == nil {
		response.Error(w, http.StatusServiceUnavailable, "EXPORTS_DISABLED", "Report exports are not configured")
		return
	}

	var body exportRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	pinHash, err := h.Orders.ExportPINHash(ctx, storeID)
	if err != nil {
		h.Logger.Error("export pin lookup failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export report")
		return
	}
	if pinHash == "" {
		response.Error(w, http.StatusForbidden, "EXPORT_PIN_NOT_SET", "Configure an export PIN before exporting reports")
		return
	}
	pin := strings.TrimSpace(body.Pin)
	if pin == "" || bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(pin)) != nil {
		response.Error(w, http.StatusForbidden, "INVALID_PIN", "Export PIN is incorrect")
		return
	}

	period := report.ParsePeriodType(body.Period)
	now := time.Now()
	bundle, err := h.computeBundle(ctx, storeID, period, now)
	if err != nil {
		h.Logger.Error("export computation failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export report")
		return
	}
	if bundle.IsFallback {
		response.Error(w, http.StatusServiceUnavailable, "REPORT_UNAVAILABLE", "Report data is unavailable right now")
		return
	}

	pdfBytes, err := renderReportPDF(storeID, period, now, bundle)
	if err != nil {
		h.Logger.Error("export rendering failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export report")
		return
	}
	if int64(len(pdfBytes)) > h.Config.ExportMaxSizeBytes {
		response.Error(w, http.StatusInternalServerError, "EXPORT_TOO_LARGE", "Exported report exceeds the size limit")
		return
	}

	key := storage.ExportKey(storeID, string(period), now)
	url, err := h.Exports.PutObject(ctx, key, pdfBytes, "application/pdf")
	if err != nil {
		h.Logger.Error("export upload failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to store exported report")
		return
	}

	response.Success(w, map[string]any{
		"url":         url,
		"period":      string(period),
		"generatedAt": now.Format(time.RFC3339),
	})
}

// BackofficeReportExportList returns the keys of previously stored exports.
func (h *Handler) BackofficeReportExportList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok || authCtx.StoreID == nil {
		response.Error(w, http.StatusUnauthorized, "STORE_ID_REQUIRED", "Store ID not found")
		return
	}

	if h.Exports == nil {
		response.Error(w, http.StatusServiceUnavailable, "EXPORTS_DISABLED", "Report exports are not configured")
		return
	}

	keys, err := h.Exports.ListExports(ctx, *authCtx.StoreID)
	if err != nil {
		h.Logger.Error("export listing failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list exports")
		return
	}

	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		urls = append(urls, h.Exports.PublicURL(key))
	}
	response.Success(w, map[string]any{"exports": urls})
}

func renderReportPDF(storeID int64, period report.PeriodType, now time.Time, bundle report.ReportBundle) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Relatório de Vendas — %s", periodTitle(period))))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Loja %d · gerado em %s", storeID, now.Format("02/01/2006 15:04"))))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr("Indicadores"))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	writeKpiLine(pdf, tr, "Faturamento", bundle.Kpis.Revenue, true)
	writeKpiLine(pdf, tr, "Pedidos", bundle.Kpis.Orders, false)
	writeKpiLine(pdf, tr, "Ticket Médio", bundle.Kpis.TicketAverage, true)
	writeKpiLine(pdf, tr, "Taxa de Cancelamento", bundle.Kpis.CancellationRate, false)
	writeKpiLine(pdf, tr, "Clientes Únicos", bundle.Kpis.UniqueCustomers, false)
	pdf.Ln(6)

	writeBreakdownTable(pdf, tr, "Por Categoria", bundle.CategoryBreakdown)
	writeBreakdownTable(pdf, tr, "Por Forma de Pagamento", bundle.PaymentBreakdown)
	writeBreakdownTable(pdf, tr, "Mais Vendidos", bundle.TopProducts)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeKpiLine(pdf *gofpdf.Fpdf, tr func(string) string, label string, metric report.Metric, money bool) {
	value := fmt.Sprintf("%.2f", metric.Value)
	if money {
		value = "R$ " + value
	}
	pdf.CellFormat(60, 6, tr(label), "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, value, "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, fmt.Sprintf("%+.1f%%", metric.Variance), "", 1, "R", false, 0, "")
}

func writeBreakdownTable(pdf *gofpdf.Fpdf, tr func(string) string, title string, rows []report.BreakdownRow) {
	if len(rows) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr(title))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(70, 6, tr(row.Key), "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.Value), "", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", row.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.1f%%", row.Percentage), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func periodTitle(period report.PeriodType) string {
	switch period {
	case report.PeriodDaily:
		return "Diário"
	case report.PeriodMonthly:
		return "Mensal"
	default:
		return "Semanal"
	}
}
