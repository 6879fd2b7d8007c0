package dashboard

import (
	"errors"
	"fmt"
	"math"

	"github.com/2beens/gymreports/internal/healthdata"
)

const (
	bpSysMin = 80.0
	bpSysMax = 200.0
	bpDiaMin = 50.0
	bpDiaMax = 120.0
)

type bpZone struct {
	Label          string
	SysFrom, SysTo float64
	DiaFrom, DiaTo float64
	Color          string
}

var bpZones = []bpZone{
	{Label: "理想", SysFrom: 0, SysTo: 120, DiaFrom: 0, DiaTo: 80, Color: "#51CF66"},
	{Label: "正常", SysFrom: 120, SysTo: 130, DiaFrom: 80, DiaTo: 85, Color: "#A9E0A9"},
	{Label: "偏高", SysFrom: 130, SysTo: 140, DiaFrom: 85, DiaTo: 90, Color: "#FFD43B"},
	{Label: "高血壓", SysFrom: 140, SysTo: 200, DiaFrom: 90, DiaTo: 120, Color: "#FF6B6B"},
}

// BloodPressureNotice returns the text shown instead of the chart when the
// reading cannot be plotted, or "" when it can.
func BloodPressureNotice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, healthdata.ErrBloodPressureMissing):
		return "血壓數據無效"
	default:
		return "血壓格式錯誤"
	}
}

func drawBloodPressure(r *renderer, p panel, raw *string) error {
	bp, err := healthdata.ParseBloodPressure(raw)
	if notice := BloodPressureNotice(err); notice != "" {
		return r.message(p, "血壓分析", notice)
	}

	if err := r.title(p, "血壓分析圖"); err != nil {
		return err
	}

	dc := r.dc
	area := p.plot()
	area.X += 30
	area.W -= 110
	area.H -= 10

	toX := func(sys float64) float64 {
		return scale(clamp(sys, bpSysMin, bpSysMax), bpSysMin, bpSysMax, area.X, area.X+area.W)
	}
	toY := func(dia float64) float64 {
		return scale(clamp(dia, bpDiaMin, bpDiaMax), bpDiaMin, bpDiaMax, area.Y+area.H, area.Y)
	}

	for i, z := range bpZones {
		x0, x1 := toX(z.SysFrom), toX(z.SysTo)
		y0, y1 := toY(z.DiaTo), toY(z.DiaFrom)
		dc.SetHexColor(z.Color + "66")
		dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
		dc.Fill()

		// legend on the right
		ly := area.Y + float64(i)*30
		dc.SetHexColor(z.Color)
		dc.DrawRectangle(area.X+area.W+14, ly, 18, 18)
		dc.Fill()
		if err := r.label(z.Label, area.X+area.W+38, ly+9, 0, 0.5, 16, palette.Text); err != nil {
			return err
		}
	}

	dc.SetHexColor("#888888")
	dc.SetLineWidth(1)
	dc.DrawRectangle(area.X, area.Y, area.W, area.H)
	dc.Stroke()

	for sys := bpSysMin; sys <= bpSysMax; sys += 20 {
		if err := r.label(fmt.Sprintf("%.0f", sys), toX(sys), area.Y+area.H+6, 0.5, 1, 14, palette.Text); err != nil {
			return err
		}
	}
	for dia := bpDiaMin; dia <= bpDiaMax; dia += 10 {
		if err := r.label(fmt.Sprintf("%.0f", dia), area.X-6, toY(dia), 1, 0.5, 14, palette.Text); err != nil {
			return err
		}
	}
	if err := r.label("收縮壓 (mmHg)", area.centerX(), p.Y+p.H-10, 0.5, 0, 16, palette.Text); err != nil {
		return err
	}

	x, y := toX(float64(bp.Systolic)), toY(float64(bp.Diastolic))
	drawStar(r, x, y, 18)
	return r.label(fmt.Sprintf("您的血壓: %d/%d", bp.Systolic, bp.Diastolic), x, y-24, 0.5, 1, 16, "#FF0000")
}

func drawStar(r *renderer, cx, cy, outer float64) {
	dc := r.dc
	inner := outer * 0.45
	dc.NewSubPath()
	for i := 0; i < 10; i++ {
		rad := outer
		if i%2 == 1 {
			rad = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		dc.LineTo(cx+rad*math.Cos(a), cy+rad*math.Sin(a))
	}
	dc.ClosePath()
	dc.SetHexColor("#FF0000")
	dc.FillPreserve()
	dc.SetHexColor("#000000")
	dc.SetLineWidth(2)
	dc.Stroke()
}
