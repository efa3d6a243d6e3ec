package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator — interface para facilitar mock nos testes
type Generator interface {
	GenerateSettlementReport(data SettlementReportData) (string, error)
}

type SettlementRow struct {
	FullName string
	CpfCnpj  string
	PagoPor  string
	PagoEm   time.Time
}

type SettlementReportData struct {
	Rows     []SettlementRow
	Filename string // sem caminho; vazio gera um nome com a data
}

// ReportGenerator escreve os PDFs em RootDir.
type ReportGenerator struct {
	RootDir  string
	FontPath string // TTF com acentuação, ex. assets/fonts/DejaVuSans.ttf
	fontName string
}

func NewReportGenerator(rootDir, fontPath string) *ReportGenerator {
	return &ReportGenerator{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: "DejaVu",
	}
}

func (g *ReportGenerator) GenerateSettlementReport(data SettlementReportData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("repasses_%s.pdf", time.Now().Format("2006-01-02"))
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Relatório de Repasses", false)
	doc.SetAuthor("IndicaMais", false)
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)

	g.addUTF8Font(doc)
	doc.AddPage()

	doc.SetFont(g.fontName, "B", 18)
	doc.CellFormat(0, 10, "RELATÓRIO DE REPASSES", "", 1, "C", false, 0, "")

	doc.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("Gerado em %s — %d pagamentos", time.Now().Format("02.01.2006"), len(data.Rows))
	doc.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(doc)

	doc.SetFont(g.fontName, "B", 11)
	doc.CellFormat(70, 8, "Lead", "1", 0, "L", false, 0, "")
	doc.CellFormat(40, 8, "CPF/CNPJ", "1", 0, "L", false, 0, "")
	doc.CellFormat(35, 8, "Pago por", "1", 0, "L", false, 0, "")
	doc.CellFormat(25, 8, "Pago em", "1", 1, "L", false, 0, "")

	doc.SetFont(g.fontName, "", 10)
	for _, row := range data.Rows {
		pagoEm := ""
		if !row.PagoEm.IsZero() {
			pagoEm = row.PagoEm.Format("02.01.2006")
		}
		doc.CellFormat(70, 7, row.FullName, "1", 0, "L", false, 0, "")
		doc.CellFormat(40, 7, row.CpfCnpj, "1", 0, "L", false, 0, "")
		doc.CellFormat(35, 7, row.PagoPor, "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 7, pagoEm, "1", 1, "L", false, 0, "")
	}

	if err := doc.OutputFileAndClose(absPath); err != nil {
		return "", fmt.Errorf("write settlement report: %w", err)
	}
	return absPath, nil
}

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	dir := filepath.Join(g.RootDir, "reports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(filename)), nil
}

// addUTF8Font registra a fonte TTF quando configurada; sem ela caímos no
// Helvetica embutido (sem acentos corretos, mas o PDF sai).
func (g *ReportGenerator) addUTF8Font(doc *gofpdf.Fpdf) {
	if g.FontPath == "" {
		g.fontName = "Helvetica"
		return
	}
	if _, err := os.Stat(g.FontPath); err != nil {
		g.fontName = "Helvetica"
		return
	}
	doc.AddUTF8Font(g.fontName, "", g.FontPath)
	doc.AddUTF8Font(g.fontName, "B", g.FontPath)
}

func (g *ReportGenerator) hr(doc *gofpdf.Fpdf) {
	doc.Ln(3)
	x, y := doc.GetXY()
	doc.Line(x, y, 190, y)
	doc.Ln(5)
}
