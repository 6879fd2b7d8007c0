package dashboard

import (
	"fmt"
	"math"

	"github.com/2beens/gymreports/internal/healthdata"
)

const GaugeMax = 220.0

type band struct {
	From, To float64
	Color    string
	Label    string
}

var heartRateBands = []band{
	{From: 0, To: 60, Color: palette.Danger},
	{From: 60, To: 100, Color: palette.Normal},
	{From: 100, To: 160, Color: palette.Caution},
	{From: 160, To: GaugeMax, Color: palette.Danger},
}

// GaugeAngle maps a heart rate onto the gauge sweep, in degrees counter-clockwise
// from the right. 0 bpm points left (180°), 220 bpm and above points right (0°).
func GaugeAngle(v float64) float64 {
	return 180 - clamp(v, 0, GaugeMax)/GaugeMax*180
}

func drawHeartRateGauge(r *renderer, p panel, hr *float64) error {
	if err := r.title(p, "心率 (BPM)"); err != nil {
		return err
	}

	dc := r.dc
	cx := p.centerX()
	cy := p.Y + p.H*0.78
	radius := math.Min(p.W*0.38, p.H*0.55)
	ring := radius * 0.2

	dc.SetLineWidth(ring)
	for _, b := range heartRateBands {
		// screen angles run clockwise, the upper half is [π, 2π]
		start := math.Pi + b.From/GaugeMax*math.Pi
		end := math.Pi + b.To/GaugeMax*math.Pi
		dc.SetHexColor(b.Color)
		dc.DrawArc(cx, cy, radius-ring/2, start, end)
		dc.Stroke()
	}

	for _, tick := range []float64{0, 60, 100, 160, 220} {
		a := GaugeAngle(tick) * math.Pi / 180
		x := cx + (radius+18)*math.Cos(a)
		y := cy - (radius+18)*math.Sin(a)
		if err := r.label(fmt.Sprintf("%.0f", tick), x, y, 0.5, 0.5, 16, palette.Text); err != nil {
			return err
		}
	}

	v := healthdata.Float(hr, 0)
	if v <= 0 {
		return r.label("N/A", cx, cy-radius*0.45, 0.5, 0.5, 36, palette.Text)
	}

	a := GaugeAngle(v) * math.Pi / 180
	dc.SetHexColor("#000000")
	dc.SetLineWidth(6)
	dc.DrawLine(cx, cy, cx+radius*0.9*math.Cos(a), cy-radius*0.9*math.Sin(a))
	dc.Stroke()
	dc.DrawCircle(cx, cy, 10)
	dc.Fill()

	return r.label(fmt.Sprintf("%d", int(v)), cx, cy-radius*0.45, 0.5, 0.5, 36, palette.Text)
}
