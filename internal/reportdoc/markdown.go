package reportdoc

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"fairaudit/domain/fairness"
)

// Renderer turns a fairness report into a human-readable compliance
// document: markdown for archival, HTML for the web surface.
type Renderer struct{}

// NewRenderer creates a report renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Markdown renders the full compliance document
func (r *Renderer) Markdown(report *fairness.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Fairness Audit Report\n\n")
	fmt.Fprintf(&b, "- **Report ID**: %s\n", report.ID)
	fmt.Fprintf(&b, "- **Generated**: %s\n", report.GeneratedAt.Time().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- **Process**: %s / %s\n", report.Context.ProcessType, report.Context.PipelineStage)
	fmt.Fprintf(&b, "- **Sample size**: %d candidates\n", report.SampleSize)
	fmt.Fprintf(&b, "- **Attributes audited**: %s\n", strings.Join(report.Attributes, ", "))
	fmt.Fprintf(&b, "- **Calculation version**: %s\n\n", report.CalculationVersion)

	fmt.Fprintf(&b, "## Overall Assessment\n\n")
	fmt.Fprintf(&b, "**Fairness score: %.3f** — status **%s**\n\n", report.OverallScore, report.Compliance)

	if len(report.Warnings) > 0 {
		fmt.Fprintf(&b, "### Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Metrics\n\n")
	fmt.Fprintf(&b, "| Metric | Score | Tier | Notes |\n")
	fmt.Fprintf(&b, "|---|---|---|---|\n")
	for _, m := range report.Metrics {
		if m.Failed {
			fmt.Fprintf(&b, "| %s | — | failed | %s |\n", m.Metric, m.FailureReason)
			continue
		}
		fmt.Fprintf(&b, "| %s | %.3f | %s | %s |\n", m.Metric, m.Score, m.Tier, m.Interpretation)
	}
	b.WriteString("\n")

	r.writeBiasIndicators(&b, report)
	r.writeStatisticalTests(&b, report)

	fmt.Fprintf(&b, "## Recommendations\n\n")
	for i, rec := range report.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}
	b.WriteString("\n")

	if len(report.MethodNotes) > 0 {
		fmt.Fprintf(&b, "## Method Notes\n\n")
		for _, n := range report.MethodNotes {
			fmt.Fprintf(&b, "- %s\n", n)
		}
	}

	return b.String()
}

// HTML renders the compliance document as standalone HTML
func (r *Renderer) HTML(report *fairness.Report) []byte {
	md := []byte(r.Markdown(report))

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.Tables)
	doc := p.Parse(md)

	renderer := html.NewRenderer(html.RendererOptions{
		Title: fmt.Sprintf("Fairness Audit %s", report.ID),
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer)
}

func (r *Renderer) writeBiasIndicators(b *strings.Builder, report *fairness.Report) {
	total := 0
	for _, m := range report.Metrics {
		total += len(m.BiasIndicators)
	}
	if total == 0 {
		return
	}

	fmt.Fprintf(b, "## Bias Indicators\n\n")
	for _, m := range report.Metrics {
		for _, ind := range m.BiasIndicators {
			fmt.Fprintf(b, "- [%s] %s (similarity %.2f)\n", m.Metric, ind.Description, ind.Similarity)
		}
	}
	b.WriteString("\n")
}

func (r *Renderer) writeStatisticalTests(b *strings.Builder, report *fairness.Report) {
	fmt.Fprintf(b, "## Statistical Tests\n\n")
	fmt.Fprintf(b, "Correction: %s (α=%.3f, corrected α=%.4f); overall significant: %t\n\n",
		report.StatisticalTests.CorrectionMethod,
		report.StatisticalTests.Alpha,
		report.StatisticalTests.CorrectedAlpha,
		report.StatisticalTests.OverallSignificant)

	fmt.Fprintf(b, "| Test | Attribute | Statistic | p-value | Note |\n")
	fmt.Fprintf(b, "|---|---|---|---|---|\n")
	for _, t := range report.StatisticalTests.Results {
		note := t.Note
		if t.Inconclusive {
			note = "inconclusive: " + note
		}
		fmt.Fprintf(b, "| %s | %s | %.4f | %.4f | %s |\n", t.TestName, t.Attribute, t.Statistic, t.PValue, note)
	}
	b.WriteString("\n")
}
