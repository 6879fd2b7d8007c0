package dashboard

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/2beens/gymreports/internal/fonts"
	"github.com/2beens/gymreports/internal/healthdata"
	"github.com/2beens/gymreports/internal/telemetry/tracing"
	"github.com/2beens/gymreports/pkg"

	"github.com/fogleman/gg"
	log "github.com/sirupsen/logrus"
)

const (
	Width  = 1800
	Height = 1200

	titleHeight = 90
	cols        = 3
	rows        = 2
)

var palette = struct {
	Primary   string
	Secondary string
	Info      string
	Danger    string
	Normal    string
	Caution   string
	Grid      string
	Text      string
}{
	Primary:   "#2E86AB",
	Secondary: "#A23B72",
	Info:      "#6A994E",
	Danger:    "#FF6B6B",
	Normal:    "#4ECDC4",
	Caution:   "#FFE66D",
	Grid:      "#DDDDDD",
	Text:      "#222222",
}

type ComposerParams struct {
	OutputDir string
	// Font used for all labels; the bundled Go font when nil.
	Font *fonts.Font
	// Rand drives the simulated trend; seeded from the clock when nil.
	Rand *rand.Rand
	Now  func() time.Time
}

type Composer struct {
	outputDir string
	font      *fonts.Font
	now       func() time.Time

	randMu sync.Mutex
	rand   *rand.Rand
}

func NewComposer(params ComposerParams) *Composer {
	f := params.Font
	if f == nil {
		log.Warn("dashboard: no font configured, falling back to the bundled go font")
		f = fonts.GoRegular()
	}
	rng := params.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Composer{
		outputDir: params.OutputDir,
		font:      f,
		now:       now,
		rand:      rng,
	}
}

// Compose renders the six panel dashboard for rec into a PNG file and returns its path.
func (c *Composer) Compose(ctx context.Context, rec healthdata.Record) (_ string, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "dashboard.compose")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := c.now()

	c.randMu.Lock()
	trend := SyntheticTrend(c.rand, rec, now)
	c.randMu.Unlock()

	img, err := c.Render(rec, trend)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(c.outputDir, 0o750); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(c.outputDir, pkg.ArtifactName("dashboard", rec.PatientID, now, "png"))
	if err := img.SavePNG(path); err != nil {
		return "", fmt.Errorf("save dashboard png: %w", err)
	}

	log.Debugf("dashboard for [%s] saved to %s", rec.PatientID, path)
	return path, nil
}

// Render draws the dashboard into a new context without touching the filesystem.
func (c *Composer) Render(rec healthdata.Record, trend []TrendPoint) (*gg.Context, error) {
	dc := gg.NewContext(Width, Height)
	dc.SetHexColor("#FFFFFF")
	dc.Clear()

	r := &renderer{dc: dc, font: c.font}
	if err := r.setFace(30); err != nil {
		return nil, err
	}
	dc.SetHexColor(palette.Text)
	dc.DrawStringAnchored(rec.PatientID+" 健康數據儀表板", Width/2, titleHeight/2, 0.5, 0.5)

	score := healthdata.ComputeHealthScore(rec)
	draws := []func(*renderer, panel) error{
		func(r *renderer, p panel) error { return drawHeartRateGauge(r, p, rec.HeartRate) },
		func(r *renderer, p panel) error { return drawBMI(r, p, rec.BMI) },
		func(r *renderer, p panel) error { return drawBloodPressure(r, p, rec.BloodPressure) },
		func(r *renderer, p panel) error { return drawExercise(r, p, rec.ExerciseDuration) },
		func(r *renderer, p panel) error { return drawTrend(r, p, trend) },
		func(r *renderer, p panel) error { return drawRadar(r, p, score) },
	}

	cellW := float64(Width) / cols
	cellH := float64(Height-titleHeight) / rows
	for i, draw := range draws {
		col, row := i%cols, i/cols
		p := panel{
			X: float64(col) * cellW,
			Y: titleHeight + float64(row)*cellH,
			W: cellW,
			H: cellH,
		}
		dc.Push()
		r.frame(p)
		err := draw(r, p)
		dc.Pop()
		if err != nil {
			return nil, fmt.Errorf("panel %d: %w", i+1, err)
		}
	}

	return dc, nil
}

// panel is one grid cell of the dashboard, in pixels
type panel struct {
	X, Y, W, H float64
}

const (
	panelTitleH = 50
	panelPad    = 40
)

// plot returns the drawable area below the panel title
func (p panel) plot() panel {
	return panel{
		X: p.X + panelPad*1.5,
		Y: p.Y + panelTitleH + panelPad/2,
		W: p.W - panelPad*3,
		H: p.H - panelTitleH - panelPad*2,
	}
}

func (p panel) centerX() float64 { return p.X + p.W/2 }
func (p panel) centerY() float64 { return p.Y + p.H/2 }

type renderer struct {
	dc   *gg.Context
	font *fonts.Font
}

func (r *renderer) setFace(points float64) error {
	face, err := r.font.Face(points)
	if err != nil {
		return err
	}
	r.dc.SetFontFace(face)
	return nil
}

func (r *renderer) title(p panel, text string) error {
	if err := r.setFace(24); err != nil {
		return err
	}
	r.dc.SetHexColor(palette.Text)
	r.dc.DrawStringAnchored(text, p.centerX(), p.Y+panelTitleH/2+10, 0.5, 0.5)
	return nil
}

func (r *renderer) label(text string, x, y, ax, ay, points float64, hexColor string) error {
	if err := r.setFace(points); err != nil {
		return err
	}
	r.dc.SetHexColor(hexColor)
	r.dc.DrawStringAnchored(text, x, y, ax, ay)
	return nil
}

// message draws a panel holding only a centered notice
func (r *renderer) message(p panel, title, text string) error {
	if err := r.title(p, title); err != nil {
		return err
	}
	return r.label(text, p.centerX(), p.centerY(), 0.5, 0.5, 22, palette.Text)
}

func (r *renderer) frame(p panel) {
	r.dc.SetHexColor("#888888")
	r.dc.SetLineWidth(1.5)
	r.dc.DrawRectangle(p.X, p.Y, p.W, p.H)
	r.dc.Stroke()
}

func (r *renderer) dashedLine(x1, y1, x2, y2, width float64, hexColor string) {
	r.dc.SetHexColor(hexColor)
	r.dc.SetLineWidth(width)
	r.dc.SetDash(12, 8)
	r.dc.DrawLine(x1, y1, x2, y2)
	r.dc.Stroke()
	r.dc.SetDash()
}

// scale maps v from [min,max] onto [from,to]
func scale(v, min, max, from, to float64) float64 {
	return from + (v-min)/(max-min)*(to-from)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
