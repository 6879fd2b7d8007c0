package pdfreport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/2beens/gymreports/internal/fonts"
	"github.com/2beens/gymreports/internal/telemetry/tracing"
	"github.com/2beens/gymreports/pkg"

	"github.com/go-pdf/fpdf"
	log "github.com/sirupsen/logrus"
)

const fontFamily = "ReportFont"

var ErrFontUnavailable = errors.New("report font unavailable")

type ComposerParams struct {
	OutputDir string
	// Font must cover the report's character set; Compose fails without it.
	Font     *fonts.Font
	FontPath string
	Now      func() time.Time
}

type ComposeParams struct {
	PatientID       string
	Recommendations []string
	DashboardPath   string
}

type Composer struct {
	outputDir string
	font      *fonts.Font
	fontPath  string
	now       func() time.Time
}

func NewComposer(params ComposerParams) *Composer {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Composer{
		outputDir: params.OutputDir,
		font:      params.Font,
		fontPath:  params.FontPath,
		now:       now,
	}
}

// Compose lays out the two page report and writes it into the output dir.
func (c *Composer) Compose(ctx context.Context, params ComposeParams) (_ string, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "pdfreport.compose")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if c.font == nil {
		return "", fmt.Errorf("%w: %s", ErrFontUnavailable, c.fontPath)
	}

	now := c.now()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(now)
	pdf.AddUTF8FontFromBytes(fontFamily, "", c.font.Bytes())
	pdf.AddUTF8FontFromBytes(fontFamily, "B", c.font.Bytes())

	pdf.SetHeaderFunc(func() {
		pdf.SetFont(fontFamily, "B", 16)
		pdf.CellFormat(0, 10, "個人化健康報告 - "+params.PatientID, "", 1, "C", false, 0, "")
		pdf.SetFont(fontFamily, "", 10)
		pdf.CellFormat(0, 8, "報告生成時間："+now.Format(time.DateTime), "", 1, "C", false, 0, "")
		pdf.Ln(10)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("第 %d 頁", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 10, "您的個人化健康建議", "", 1, "", false, 0, "")
	pdf.SetFont(fontFamily, "", 12)
	pdf.Ln(5)
	for _, line := range params.Recommendations {
		pdf.MultiCell(0, 8, line, "", "", false)
		pdf.Ln(2)
	}

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 10, "附錄：健康數據視覺化圖表", "", 1, "C", false, 0, "")
	pdf.Ln(5)
	if pkg.FileExists(params.DashboardPath) {
		pdf.ImageOptions(params.DashboardPath, 10, pdf.GetY(), 190, 0, true, fpdf.ImageOptions{ReadDpi: true}, 0, "")
	} else {
		log.Warnf("pdf report for [%s]: dashboard image [%s] missing, appendix left empty", params.PatientID, params.DashboardPath)
	}

	if err := pdf.Error(); err != nil {
		return "", fmt.Errorf("layout pdf: %w", err)
	}

	if err := os.MkdirAll(c.outputDir, 0o750); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(c.outputDir, pkg.ArtifactName("health_report", params.PatientID, now, "pdf"))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}

	log.Debugf("pdf report for [%s] saved to %s", params.PatientID, path)
	return path, nil
}
