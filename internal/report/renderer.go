// Package report lays out branded PDF reports for tax-credit simulations.
// Pagination is explicit: content blocks reserve their height up front and a
// page-start hook repeats banner and watermark, so no block is ever split
// across a page boundary.
package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/sirupsen/logrus"

	"github.com/uniquecreditos/taxsim-service/internal/apperrors"
	"github.com/uniquecreditos/taxsim-service/internal/calculation"
	"github.com/uniquecreditos/taxsim-service/internal/letterhead"
	"github.com/uniquecreditos/taxsim-service/internal/models"
	"github.com/uniquecreditos/taxsim-service/internal/utils"
)

const (
	pageWidth     = 210.0
	pageHeight    = 297.0
	marginLeft    = 15.0
	marginRight   = 15.0
	marginTop     = 12.0
	contentWidth  = pageWidth - marginLeft - marginRight
	bannerHeight  = 34.0
	footerReserve = 30.0
)

// GeneratedFile is a finished report ready for download or email delivery.
type GeneratedFile struct {
	FileName    string
	Content     []byte
	ContentType string
}

// Renderer builds report PDFs against the current letterhead. Each call
// allocates the next report number; the sequence advances even when the
// caller discards the file.
type Renderer struct {
	letterhead *letterhead.Store
	secret     string
	log        *logrus.Logger

	now func() time.Time
}

// NewRenderer initializes a report renderer. secret feeds the footer
// validation codes.
func NewRenderer(lh *letterhead.Store, secret string, log *logrus.Logger) *Renderer {
	return &Renderer{
		letterhead: lh,
		secret:     secret,
		log:        log,
		now:        time.Now,
	}
}

var kindTitles = map[models.ReportKind]string{
	models.ReportExecutive:  "Relatório Executivo",
	models.ReportDetailed:   "Análise Detalhada",
	models.ReportProjection: "Projeção Anual",
	models.ReportCustom:     "Relatório Personalizado",
}

// Render builds the full simulation report. narrative may be nil when the AI
// assistant is disabled; the numeric sections render either way.
func (r *Renderer) Render(kind models.ReportKind, input models.SimulationInput, result models.SimulationResult, narrative *models.GeneratedNarrative) (*GeneratedFile, error) {
	title, ok := kindTitles[kind]
	if !ok {
		return nil, &apperrors.ReportGenerationError{Err: fmt.Errorf("tipo de relatório desconhecido: %s", kind)}
	}

	cfg := r.letterhead.Config()
	number, err := r.letterhead.AllocateNextReportNumber()
	if err != nil {
		return nil, &apperrors.ReportGenerationError{Err: err}
	}
	issuedAt := r.now()

	b := r.newBuilder(cfg, number, issuedAt)

	b.sectionTitle(title)
	company := strings.TrimSpace(input.CompanyName)
	if company == "" {
		company = "Empresa consultada"
	}
	b.subtitle(fmt.Sprintf("%s  |  Tributos: %s  |  Período: %d meses",
		company, taxTypesLine(input), input.PeriodMonths))

	b.kpiBoxes(result)
	b.beforeAfter(result)

	if err := b.charts(result, cfg.Theme); err != nil {
		return nil, &apperrors.ReportGenerationError{Err: err}
	}

	b.valueProposition()
	b.finalCallout(result)

	if kind == models.ReportDetailed && narrative != nil {
		b.narrativeSection(narrative)
	}

	content, err := b.output()
	if err != nil {
		return nil, &apperrors.ReportGenerationError{Err: err}
	}

	r.log.Infof("report rendered (kind=%s number=%s pages=%d bytes=%d)",
		kind, number, b.pdf.PageCount(), len(content))
	return &GeneratedFile{
		FileName:    reportFileName(number, kind, company, issuedAt),
		Content:     content,
		ContentType: "application/pdf",
	}, nil
}

// RenderCustom builds a report whose body is free text, word-wrapped over as
// many pages as needed under the same banner, watermark and footers.
func (r *Renderer) RenderCustom(text, fileName string) (*GeneratedFile, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &apperrors.ReportGenerationError{Err: fmt.Errorf("texto do relatório vazio")}
	}

	cfg := r.letterhead.Config()
	number, err := r.letterhead.AllocateNextReportNumber()
	if err != nil {
		return nil, &apperrors.ReportGenerationError{Err: err}
	}
	issuedAt := r.now()

	b := r.newBuilder(cfg, number, issuedAt)
	b.sectionTitle(kindTitles[models.ReportCustom])

	b.pdf.SetFont("Helvetica", "", 10)
	b.pdf.SetTextColor(51, 65, 85)
	for _, paragraph := range strings.Split(text, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			b.pdf.Ln(3)
			continue
		}
		b.pdf.MultiCell(contentWidth, 5, b.tr(paragraph), "", "L", false)
		b.pdf.Ln(1)
	}

	content, err := b.output()
	if err != nil {
		return nil, &apperrors.ReportGenerationError{Err: err}
	}

	if fileName = utils.SanitizeFileName(strings.TrimSuffix(fileName, ".pdf")); fileName == "" {
		fileName = fmt.Sprintf("%s_%s_%s", number, models.ReportCustom, issuedAt.Format("2006-01-02"))
	}
	return &GeneratedFile{
		FileName:    fileName + ".pdf",
		Content:     content,
		ContentType: "application/pdf",
	}, nil
}

// builder carries one in-progress document plus everything the page-start and
// footer hooks need.
type builder struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	cfg      models.LetterheadConfig
	number   string
	issuedAt time.Time
	secret   string
	log      *logrus.Logger

	logoName string
	logoType string
	images   int
}

func (r *Renderer) newBuilder(cfg models.LetterheadConfig, number string, issuedAt time.Time) *builder {
	pdf := fpdf.New("P", "mm", "A4", "")
	b := &builder{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		cfg:      cfg,
		number:   number,
		issuedAt: issuedAt,
		secret:   r.secret,
		log:      r.log,
	}

	pdf.SetTitle(fmt.Sprintf("Relatório %s", number), true)
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, footerReserve)
	pdf.AliasNbPages("{nb}")

	b.registerLogo()
	pdf.SetHeaderFuncMode(b.pageStart, false)
	pdf.SetFooterFunc(b.footer)
	pdf.AddPage()
	return b
}

// registerLogo decodes the stored logo when it is a raster format fpdf can
// embed. SVG logos stay valid in the letterhead store but fall back to the
// text watermark and a logo-less banner.
func (b *builder) registerLogo() {
	logo := b.cfg.Logo
	if logo == nil {
		return
	}
	switch logo.MimeType {
	case "image/png":
		b.logoType = "PNG"
	case "image/jpeg", "image/jpg":
		b.logoType = "JPG"
	default:
		return
	}

	data, err := base64.StdEncoding.DecodeString(logo.ImageData)
	if err != nil {
		b.log.Warnf("stored logo is not valid base64, rendering without it: %v", err)
		b.logoType = ""
		return
	}
	b.logoName = "letterhead-logo"
	b.pdf.RegisterImageOptionsReader(b.logoName, fpdf.ImageOptions{ImageType: b.logoType}, bytes.NewReader(data))
}

// pageStart paints the banner and watermark, then parks the cursor below the
// banner. Runs on every page, including those opened by automatic breaks.
func (b *builder) pageStart() {
	pr, pg, pb := rgb(b.cfg.Theme.PrimaryColor, 59, 130, 246)
	sr, sg, sb := rgb(b.cfg.Theme.SecondaryColor, 100, 116, 139)

	// Accent strip.
	b.pdf.SetFillColor(pr, pg, pb)
	b.pdf.Rect(0, 0, pageWidth, 2.5, "F")

	textX := marginLeft
	if b.logoName != "" {
		b.pdf.ImageOptions(b.logoName, marginLeft, 8, 22, 0, false, fpdf.ImageOptions{ImageType: b.logoType}, 0, "")
		textX += 26
	}

	b.pdf.SetXY(textX, 8)
	b.pdf.SetFont("Helvetica", "B", 14)
	b.pdf.SetTextColor(pr, pg, pb)
	b.pdf.CellFormat(110, 7, b.tr(b.cfg.LegalName), "", 2, "L", false, 0, "")

	b.pdf.SetFont("Helvetica", "", 8)
	b.pdf.SetTextColor(sr, sg, sb)
	b.pdf.SetX(textX)
	b.pdf.CellFormat(110, 4, b.tr("CNPJ: "+b.cfg.TaxID), "", 2, "L", false, 0, "")
	b.pdf.SetX(textX)
	b.pdf.CellFormat(110, 4, b.tr(addressLine(b.cfg.Address)), "", 2, "L", false, 0, "")
	b.pdf.SetX(textX)
	b.pdf.CellFormat(110, 4, b.tr(contactLine(b.cfg.Contact)), "", 2, "L", false, 0, "")

	b.pdf.SetXY(pageWidth-marginRight-55, 8)
	b.pdf.SetFont("Helvetica", "B", 10)
	b.pdf.SetTextColor(pr, pg, pb)
	b.pdf.CellFormat(55, 5, b.tr("Relatório Nº "+b.number), "", 2, "R", false, 0, "")
	b.pdf.SetFont("Helvetica", "", 8)
	b.pdf.SetTextColor(sr, sg, sb)
	b.pdf.SetX(pageWidth - marginRight - 55)
	b.pdf.CellFormat(55, 4, "Emitido em: "+b.issuedAt.Format("02/01/2006 15:04"), "", 2, "R", false, 0, "")

	b.pdf.SetDrawColor(226, 232, 240)
	b.pdf.Line(marginLeft, bannerHeight-4, pageWidth-marginRight, bannerHeight-4)

	b.watermark()
	b.pdf.SetXY(marginLeft, bannerHeight)
}

func (b *builder) watermark() {
	if !b.cfg.Theme.ShowWatermark {
		return
	}

	if b.logoName != "" {
		b.pdf.SetAlpha(0.06, "Normal")
		b.pdf.ImageOptions(b.logoName, (pageWidth-130)/2, (pageHeight-130)/2, 130, 0, false, fpdf.ImageOptions{ImageType: b.logoType}, 0, "")
		b.pdf.SetAlpha(1, "Normal")
		return
	}

	words := strings.Fields(b.cfg.LegalName)
	if len(words) > 2 {
		words = words[:2]
	}
	mark := b.tr(strings.ToUpper(strings.Join(words, " ")))

	b.pdf.SetFont("Helvetica", "B", 58)
	b.pdf.SetTextColor(148, 163, 184)
	b.pdf.SetAlpha(0.08, "Normal")
	b.pdf.TransformBegin()
	b.pdf.TransformRotate(45, pageWidth/2, pageHeight/2)
	b.pdf.Text(pageWidth/2-b.pdf.GetStringWidth(mark)/2, pageHeight/2, mark)
	b.pdf.TransformEnd()
	b.pdf.SetAlpha(1, "Normal")
}

// footer stamps identity, page counter and validation code. The total page
// count is unknown while pages are being laid out; the {nb} alias is replaced
// once at output time.
func (b *builder) footer() {
	code := utils.ValidationCode(b.number, b.issuedAt, b.secret)

	b.pdf.SetY(-(footerReserve - 6))
	b.pdf.SetDrawColor(226, 232, 240)
	b.pdf.Line(marginLeft, b.pdf.GetY(), pageWidth-marginRight, b.pdf.GetY())
	b.pdf.Ln(1.5)

	b.pdf.SetFont("Helvetica", "", 7)
	b.pdf.SetTextColor(100, 116, 139)
	b.pdf.CellFormat(contentWidth/2, 4, b.tr(b.cfg.LegalName+" | CNPJ "+b.cfg.TaxID), "", 0, "L", false, 0, "")
	// The translator leaves the ASCII {nb} alias intact, so the page-count
	// substitution still finds it at output time.
	b.pdf.CellFormat(contentWidth/2, 4, b.tr(fmt.Sprintf("Página %d de {nb}", b.pdf.PageNo())), "", 1, "R", false, 0, "")

	b.pdf.CellFormat(contentWidth/2, 4, b.tr("Código de validação: "+code), "", 0, "L", false, 0, "")
	b.pdf.CellFormat(contentWidth/2, 4, b.tr(contactLine(b.cfg.Contact)), "", 1, "R", false, 0, "")

	b.pdf.SetFont("Helvetica", "I", 6.5)
	b.pdf.CellFormat(contentWidth, 3.5, b.tr("Documento gerado eletronicamente para fins de simulação. Os valores apresentados não constituem garantia de resultado."), "", 1, "C", false, 0, "")
}

// reserve opens a new page when fewer than h millimeters remain above the
// footer area, so the next block never straddles pages.
func (b *builder) reserve(h float64) {
	if b.pdf.GetY()+h > pageHeight-footerReserve {
		b.pdf.AddPage()
	}
}

func (b *builder) sectionTitle(title string) {
	pr, pg, pb := rgb(b.cfg.Theme.PrimaryColor, 59, 130, 246)
	b.reserve(12)
	b.pdf.SetFont("Helvetica", "B", 16)
	b.pdf.SetTextColor(pr, pg, pb)
	b.pdf.CellFormat(contentWidth, 9, b.tr(title), "", 1, "L", false, 0, "")
	b.pdf.Ln(1)
}

func (b *builder) subtitle(text string) {
	b.pdf.SetFont("Helvetica", "", 9)
	b.pdf.SetTextColor(100, 116, 139)
	b.pdf.CellFormat(contentWidth, 5, b.tr(text), "", 1, "L", false, 0, "")
	b.pdf.Ln(3)
}

func (b *builder) heading(text string) {
	b.reserve(10)
	b.pdf.SetFont("Helvetica", "B", 11)
	b.pdf.SetTextColor(30, 41, 59)
	b.pdf.CellFormat(contentWidth, 7, b.tr(text), "", 1, "L", false, 0, "")
	b.pdf.Ln(1)
}

// kpiBoxes draws the four headline metrics side by side.
func (b *builder) kpiBoxes(result models.SimulationResult) {
	savingsPercent := "N/D"
	if result.SavingsPercentDefined {
		savingsPercent = utils.FormatPercent(result.SavingsPercent)
	}
	roiText := "N/D"
	if roi, ok := calculation.AnnualizedROI(result); ok {
		roiText = utils.FormatPercent(roi)
	}

	boxes := []struct{ label, value string }{
		{"Economia Mensal", utils.FormatBRL(result.MonthlySavings)},
		{"Economia Total", utils.FormatBRL(result.TotalSavings)},
		{"Economia sobre Tributos", savingsPercent},
		{"ROI Anualizado", roiText},
	}

	const gap = 4.0
	boxWidth := (contentWidth - gap*float64(len(boxes)-1)) / float64(len(boxes))
	const boxHeight = 20.0

	b.reserve(boxHeight + 6)
	pr, pg, pb := rgb(b.cfg.Theme.PrimaryColor, 59, 130, 246)
	top := b.pdf.GetY()
	for i, box := range boxes {
		x := marginLeft + float64(i)*(boxWidth+gap)
		b.pdf.SetFillColor(241, 245, 249)
		b.pdf.SetDrawColor(226, 232, 240)
		b.pdf.Rect(x, top, boxWidth, boxHeight, "FD")

		b.pdf.SetXY(x+2, top+3)
		b.pdf.SetFont("Helvetica", "", 7.5)
		b.pdf.SetTextColor(100, 116, 139)
		b.pdf.CellFormat(boxWidth-4, 4, b.tr(box.label), "", 2, "L", false, 0, "")

		b.pdf.SetX(x + 2)
		b.pdf.SetFont("Helvetica", "B", 12)
		b.pdf.SetTextColor(pr, pg, pb)
		b.pdf.CellFormat(boxWidth-4, 8, b.tr(box.value), "", 0, "L", false, 0, "")
	}
	b.pdf.SetXY(marginLeft, top+boxHeight+6)
}

// beforeAfter compares the current monthly tax bill against the proposed one.
func (b *builder) beforeAfter(result models.SimulationResult) {
	const boxHeight = 24.0
	b.reserve(boxHeight + 6)

	halfWidth := (contentWidth - 4) / 2
	top := b.pdf.GetY()

	drawBox := func(x float64, label, value, note string, valueR, valueG, valueB int) {
		b.pdf.SetFillColor(248, 250, 252)
		b.pdf.SetDrawColor(226, 232, 240)
		b.pdf.Rect(x, top, halfWidth, boxHeight, "FD")

		b.pdf.SetXY(x+3, top+3)
		b.pdf.SetFont("Helvetica", "B", 9)
		b.pdf.SetTextColor(30, 41, 59)
		b.pdf.CellFormat(halfWidth-6, 5, b.tr(label), "", 2, "L", false, 0, "")

		b.pdf.SetX(x + 3)
		b.pdf.SetFont("Helvetica", "B", 14)
		b.pdf.SetTextColor(valueR, valueG, valueB)
		b.pdf.CellFormat(halfWidth-6, 8, b.tr(value), "", 2, "L", false, 0, "")

		b.pdf.SetX(x + 3)
		b.pdf.SetFont("Helvetica", "", 7.5)
		b.pdf.SetTextColor(100, 116, 139)
		b.pdf.CellFormat(halfWidth-6, 4, b.tr(note), "", 0, "L", false, 0, "")
	}

	drawBox(marginLeft, "Cenário atual", utils.FormatBRL(result.MonthlyAmount)+"/mês",
		"Tributos pagos integralmente em espécie", 220, 38, 38)
	drawBox(marginLeft+halfWidth+4, "Cenário proposto", utils.FormatBRL(result.NewMonthlyTotal)+"/mês",
		fmt.Sprintf("Economia de %s por mês", utils.FormatBRL(result.MonthlySavings)), 22, 163, 74)

	b.pdf.SetXY(marginLeft, top+boxHeight+6)
}

// charts rasterizes and embeds the composition donut and the cumulative
// savings bars. A chart with nothing positive to plot comes back nil and is
// replaced by a placeholder note; the report still renders.
func (b *builder) charts(result models.SimulationResult, theme models.Theme) error {
	donut, err := monthlyCompositionChart(result, theme)
	if err != nil {
		return err
	}
	bars, err := cumulativeSavingsChart(result, theme)
	if err != nil {
		return err
	}

	b.heading("Composição do valor mensal")
	if donut == nil {
		b.chartPlaceholder()
	} else {
		b.reserve(78)
		b.embedPNG(donut, (pageWidth-75)/2, 75)
		b.pdf.Ln(4)
	}

	months := result.PeriodMonths
	if months > 12 {
		months = 12
	}
	b.heading(fmt.Sprintf("Economia acumulada (%d meses)", months))
	if bars == nil {
		b.chartPlaceholder()
	} else {
		b.reserve(72)
		b.embedPNG(bars, marginLeft, contentWidth)
		b.pdf.Ln(4)
	}
	return nil
}

func (b *builder) chartPlaceholder() {
	b.reserve(8)
	b.pdf.SetFont("Helvetica", "I", 8.5)
	b.pdf.SetTextColor(100, 116, 139)
	b.pdf.CellFormat(contentWidth, 5, b.tr("Sem valores positivos para exibir"), "", 1, "L", false, 0, "")
	b.pdf.Ln(3)
}

func (b *builder) embedPNG(png []byte, x, width float64) {
	b.images++
	name := fmt.Sprintf("chart-%d", b.images)
	b.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	b.pdf.ImageOptions(name, x, b.pdf.GetY(), width, 0, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

func (b *builder) valueProposition() {
	bullets := []string{
		"Sem investimento inicial: os honorários incidem apenas sobre a economia realizada",
		"Operação 100% amparada pela legislação tributária vigente",
		"Acompanhamento mensal por especialistas em recuperação de créditos",
		"Redução imediata do desembolso de caixa com tributos",
	}

	b.heading("Por que funciona")
	b.reserve(float64(len(bullets))*6 + 4)
	b.pdf.SetFont("Helvetica", "", 9)
	b.pdf.SetTextColor(51, 65, 85)
	for _, bullet := range bullets {
		b.pdf.CellFormat(5, 5.5, "-", "", 0, "R", false, 0, "")
		b.pdf.MultiCell(contentWidth-5, 5.5, b.tr(bullet), "", "L", false)
	}
	b.pdf.Ln(3)
}

func (b *builder) finalCallout(result models.SimulationResult) {
	const calloutHeight = 18.0
	b.reserve(calloutHeight + 4)

	pr, pg, pb := rgb(b.cfg.Theme.PrimaryColor, 59, 130, 246)
	top := b.pdf.GetY()
	b.pdf.SetFillColor(pr, pg, pb)
	b.pdf.Rect(marginLeft, top, contentWidth, calloutHeight, "F")

	b.pdf.SetXY(marginLeft, top+5)
	b.pdf.SetFont("Helvetica", "B", 13)
	b.pdf.SetTextColor(255, 255, 255)
	b.pdf.CellFormat(contentWidth, 8, b.tr(fmt.Sprintf("Economia total de %s em %d meses",
		utils.FormatBRL(result.TotalSavings), result.PeriodMonths)), "", 0, "C", false, 0, "")

	b.pdf.SetXY(marginLeft, top+calloutHeight+4)
}

// narrativeSection renders the specialist commentary of the detailed report:
// up to three summary fragments as bullets, up to three numbered
// recommendations.
func (b *builder) narrativeSection(narrative *models.GeneratedNarrative) {
	b.heading("Análise do especialista")

	fragments := make([]string, 0, 3)
	for _, fragment := range strings.Split(narrative.Summary, ".") {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		fragments = append(fragments, fragment)
		if len(fragments) == 3 {
			break
		}
	}

	b.pdf.SetFont("Helvetica", "", 9)
	b.pdf.SetTextColor(51, 65, 85)
	for _, fragment := range fragments {
		b.reserve(6)
		b.pdf.CellFormat(5, 5.5, "-", "", 0, "R", false, 0, "")
		b.pdf.MultiCell(contentWidth-5, 5.5, b.tr(fragment+"."), "", "L", false)
	}
	b.pdf.Ln(2)

	recommendations := narrative.Recommendations
	if len(recommendations) > 3 {
		recommendations = recommendations[:3]
	}
	if len(recommendations) > 0 {
		b.reserve(float64(len(recommendations))*6 + 8)
		b.pdf.SetFont("Helvetica", "B", 9.5)
		b.pdf.SetTextColor(30, 41, 59)
		b.pdf.CellFormat(contentWidth, 6, b.tr("Recomendações"), "", 1, "L", false, 0, "")
		b.pdf.SetFont("Helvetica", "", 9)
		b.pdf.SetTextColor(51, 65, 85)
		for i, rec := range recommendations {
			b.pdf.CellFormat(7, 5.5, fmt.Sprintf("%d.", i+1), "", 0, "R", false, 0, "")
			b.pdf.MultiCell(contentWidth-7, 5.5, b.tr(rec), "", "L", false)
		}
	}
}

func (b *builder) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, err
	}
	if err := b.pdf.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func reportFileName(number string, kind models.ReportKind, company string, issuedAt time.Time) string {
	fragment := utils.SanitizeFileName(company)
	if fragment == "" {
		fragment = "Empresa"
	}
	return fmt.Sprintf("%s_%s_%s_%s.pdf", number, kind, fragment, issuedAt.Format("2006-01-02"))
}

func taxTypesLine(input models.SimulationInput) string {
	if len(input.TaxTypes) == 0 {
		return "PIS/COFINS"
	}
	return strings.Join(input.TaxTypes, ", ")
}

func addressLine(a models.Address) string {
	line := fmt.Sprintf("%s, %s", a.Street, a.Number)
	if a.Complement != "" {
		line += " - " + a.Complement
	}
	return fmt.Sprintf("%s - %s/%s - CEP %s", line, a.City, a.State, a.Zip)
}

func contactLine(c models.Contact) string {
	parts := []string{}
	if c.Phone != "" {
		parts = append(parts, c.Phone)
	}
	if c.Email != "" {
		parts = append(parts, c.Email)
	}
	if c.Website != "" {
		parts = append(parts, c.Website)
	}
	return strings.Join(parts, " | ")
}

// rgb parses "#rrggbb" theme colors; malformed values fall back to the given
// default channel values.
func rgb(hex string, dr, dg, db int) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return dr, dg, db
	}
	var r, g, bl int
	if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &bl); err != nil {
		return dr, dg, db
	}
	return r, g, bl
}
