package dashboard

import (
	"fmt"
	"math"

	"github.com/2beens/gymreports/internal/healthdata"
)

var radarRings = []float64{20, 40, 60, 80, 100}

// radarPoint returns the position of axis i (of n) at value v in [0,100];
// the first axis points up and the rest follow clockwise.
func radarPoint(cx, cy, radius float64, i, n int, v float64) (float64, float64) {
	a := -math.Pi/2 + float64(i)*2*math.Pi/float64(n)
	rad := radius * clamp(v, 0, 100) / 100
	return cx + rad*math.Cos(a), cy + rad*math.Sin(a)
}

func drawRadar(r *renderer, p panel, score healthdata.HealthScore) error {
	if !score.Computable || len(score.Scores) == 0 {
		return r.message(p, "綜合健康評分", "無足夠數據評分")
	}
	if err := r.title(p, "綜合健康評分"); err != nil {
		return err
	}

	dc := r.dc
	n := len(score.Scores)
	cx := p.centerX()
	cy := p.Y + panelTitleH + (p.H-panelTitleH)/2
	radius := math.Min(p.W, p.H-panelTitleH)*0.5 - 60

	dc.SetLineWidth(1)
	for _, ring := range radarRings {
		dc.SetHexColor(palette.Grid)
		dc.NewSubPath()
		for i := 0; i <= n; i++ {
			x, y := radarPoint(cx, cy, radius, i%n, n, ring)
			dc.LineTo(x, y)
		}
		dc.Stroke()
		x, y := radarPoint(cx, cy, radius, 0, n, ring)
		if err := r.label(fmt.Sprintf("%.0f", ring), x+4, y, 0, 0.5, 12, "#888888"); err != nil {
			return err
		}
	}

	for i, s := range score.Scores {
		x, y := radarPoint(cx, cy, radius, i, n, 100)
		dc.SetHexColor(palette.Grid)
		dc.DrawLine(cx, cy, x, y)
		dc.Stroke()

		lx, ly := radarPoint(cx, cy, radius+30, i, n, 100)
		if err := r.label(s.Label, lx, ly, 0.5, 0.5, 18, palette.Text); err != nil {
			return err
		}
	}

	dc.NewSubPath()
	for i, s := range score.Scores {
		x, y := radarPoint(cx, cy, radius, i, n, s.Value)
		dc.LineTo(x, y)
	}
	dc.ClosePath()
	dc.SetHexColor(palette.Info + "40")
	dc.FillPreserve()
	dc.SetHexColor(palette.Info)
	dc.SetLineWidth(3)
	dc.Stroke()
	for i, s := range score.Scores {
		x, y := radarPoint(cx, cy, radius, i, n, s.Value)
		dc.DrawCircle(x, y, 5)
		dc.Fill()
	}

	dc.SetHexColor("#FFFF0080")
	dc.DrawRoundedRectangle(cx-60, cy-30, 120, 60, 10)
	dc.Fill()
	if err := r.label("綜合評分", cx, cy-12, 0.5, 0.5, 18, palette.Text); err != nil {
		return err
	}
	return r.label(fmt.Sprintf("%.1f", score.Average), cx, cy+14, 0.5, 0.5, 20, palette.Text)
}
