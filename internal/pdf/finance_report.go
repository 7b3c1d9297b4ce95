package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/siaksi/siaksi-api/internal/domain"
)

// RenderFinanceReport produces the cash-book PDF for a period: a header,
// one table row per entry, and the totals block.
func RenderFinanceReport(from, to time.Time, entries []domain.FinanceEntry, summary domain.FinanceSummary) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Laporan Keuangan SIAKSI", false)
	doc.AddPage()

	doc.SetFont("Arial", "B", 16)
	doc.Cell(0, 10, "Laporan Keuangan")
	doc.Ln(8)

	doc.SetFont("Arial", "", 11)
	doc.Cell(0, 8, fmt.Sprintf("Periode %s - %s", from.Format("02 Jan 2006"), to.Format("02 Jan 2006")))
	doc.Ln(12)

	headers := []string{"Tanggal", "Jenis", "Keterangan", "Jumlah (Rp)"}
	widths := []float64{28, 25, 92, 45}

	doc.SetFont("Arial", "B", 10)
	doc.SetFillColor(230, 230, 230)
	for i, h := range headers {
		doc.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Arial", "", 10)
	for _, e := range entries {
		doc.CellFormat(widths[0], 7, e.Date.Format("02/01/2006"), "1", 0, "C", false, 0, "")
		doc.CellFormat(widths[1], 7, kindLabel(e.Kind), "1", 0, "C", false, 0, "")
		doc.CellFormat(widths[2], 7, e.Description, "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[3], 7, formatRupiah(e.Amount), "1", 0, "R", false, 0, "")
		doc.Ln(-1)
	}

	doc.Ln(4)
	doc.SetFont("Arial", "B", 10)
	totals := []struct {
		label  string
		amount int64
	}{
		{"Total Pemasukan", summary.TotalIncome},
		{"Total Pengeluaran", summary.TotalExpense},
		{"Saldo", summary.Balance},
	}
	for _, t := range totals {
		doc.CellFormat(widths[0]+widths[1]+widths[2], 7, t.label, "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[3], 7, formatRupiah(t.amount), "1", 0, "R", false, 0, "")
		doc.Ln(-1)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func kindLabel(kind string) string {
	if kind == domain.FinanceIncome {
		return "Masuk"
	}

	return "Keluar"
}

// formatRupiah renders 1234567 as "1.234.567".
func formatRupiah(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%d", amount)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}

	if negative {
		return "-" + string(out)
	}

	return string(out)
}
