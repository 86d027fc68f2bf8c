package exporter

import (
	"context"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"assetpulse/internal/presentation"
	"assetpulse/pkg/contracts/domain"
)

// WritePDF streams a one-page summary report of the snapshot.
func (e *Exporter) WritePDF(ctx context.Context, w io.Writer, snapshot *domain.MetricSnapshot) error {
	e.logger.InfoContext(ctx, "exporting snapshot as PDF")

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Relatório de inventário"))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Gerado em %s · fonte %s",
		snapshot.GeneratedAt.Format("2006-01-02 15:04"), snapshot.Source.Path)))
	pdf.Ln(12)
	pdf.SetTextColor(50, 50, 50)

	drawSection := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(200, 200, 200)
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(50, 50, 50)
		for _, line := range lines {
			pdf.MultiCell(190, 5, tr(line), "", "L", false)
		}
		pdf.Ln(6)
	}

	drawSection("Resumo", []string{
		fmt.Sprintf("Patrimônio total: %s (%s)",
			presentation.FormatBRL(snapshot.TotalSpend), presentation.FormatCount(snapshot.ItemCount)),
		fmt.Sprintf("Rastreabilidade: %s sem responsável ou número de inventário (%s)",
			presentation.FormatPercent(snapshot.Traceability.GapRatio),
			presentation.FormatCount(snapshot.Traceability.GapCount)),
		fmt.Sprintf("Acessórios de baixo custo: %s em %s (%s do gasto total)",
			presentation.FormatBRL(snapshot.Accessories.Total),
			presentation.FormatCount(snapshot.Accessories.Items),
			presentation.FormatPercent(snapshot.Accessories.ShareOfSpend)),
	})

	var refLines []string
	for _, f := range snapshot.Reference {
		refLines = append(refLines, fmt.Sprintf("%s: referência %s/ano (%s) · planilha %s",
			f.Label,
			presentation.FormatBRL(f.Reference),
			presentation.FormatCount(f.Items),
			presentation.FormatBRL(f.RawTotal)))
	}
	drawSection("Depreciação de referência", refLines)

	var catLines []string
	for _, c := range snapshot.Categories {
		catLines = append(catLines, fmt.Sprintf("%s: %s (%s)",
			c.Label, presentation.FormatBRL(c.Total), presentation.FormatCount(c.Items)))
	}
	drawSection("Gasto por categoria", catLines)

	var prioLines []string
	for _, p := range snapshot.Priorities.Breakdown {
		prioLines = append(prioLines, fmt.Sprintf("%s: %s (%s)",
			p.Label, presentation.FormatBRL(p.Total), presentation.FormatCount(p.Items)))
	}
	drawSection("Prioridade de investimento", prioLines)

	var centerLines []string
	for _, c := range snapshot.CostCenters.Centers {
		centerLines = append(centerLines, fmt.Sprintf("%s: %s (%s)",
			c.Center, presentation.FormatBRL(c.Total), presentation.FormatCount(c.Items)))
	}
	drawSection("Centros de custo", centerLines)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write PDF: %w", err)
	}
	return nil
}
