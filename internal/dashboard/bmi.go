package dashboard

import (
	"fmt"

	"github.com/2beens/gymreports/internal/healthdata"
)

const (
	BMIAxisMin = 10.0
	BMIAxisMax = 40.0
)

var bmiBands = []band{
	{From: 0, To: 18.5, Color: "#74C0FC", Label: "過輕"},
	{From: 18.5, To: 24, Color: "#51CF66", Label: "正常"},
	{From: 24, To: 27, Color: "#FFD43B", Label: "過重"},
	{From: 27, To: 50, Color: "#FF6B6B", Label: "肥胖"},
}

// BMIMarkerX returns the marker position as a fraction of the BMI axis width.
// Values outside the axis stick to its edges.
func BMIMarkerX(bmi float64) float64 {
	return (clamp(bmi, BMIAxisMin, BMIAxisMax) - BMIAxisMin) / (BMIAxisMax - BMIAxisMin)
}

func drawBMI(r *renderer, p panel, bmi *float64) error {
	if err := r.title(p, "BMI 分析圖"); err != nil {
		return err
	}

	dc := r.dc
	area := p.plot()
	area.X += 40
	area.W -= 40
	rowH := area.H / float64(len(bmiBands))

	axisX := func(v float64) float64 {
		return area.X + BMIMarkerX(v)*area.W
	}

	dc.SetLineWidth(1)
	for v := BMIAxisMin; v <= BMIAxisMax; v += 5 {
		x := axisX(v)
		dc.SetHexColor(palette.Grid)
		dc.DrawLine(x, area.Y, x, area.Y+area.H)
		dc.Stroke()
		if err := r.label(fmt.Sprintf("%.0f", v), x, area.Y+area.H+6, 0.5, 1, 16, palette.Text); err != nil {
			return err
		}
	}

	for i, b := range bmiBands {
		// categories listed bottom-up like a horizontal bar chart
		y := area.Y + area.H - float64(i+1)*rowH
		x0, x1 := axisX(b.From), axisX(b.To)
		dc.SetHexColor(b.Color)
		dc.DrawRectangle(x0, y+rowH*0.2, x1-x0, rowH*0.6)
		dc.Fill()
		if err := r.label(b.Label, area.X-10, y+rowH/2, 1, 0.5, 18, palette.Text); err != nil {
			return err
		}
	}

	if err := r.label("BMI 數值", area.centerX(), p.Y+p.H-12, 0.5, 0, 16, palette.Text); err != nil {
		return err
	}

	v := healthdata.Float(bmi, 0)
	if v <= 0 {
		return nil
	}
	x := axisX(v)
	r.dashedLine(x, area.Y, x, area.Y+area.H, 4, "#FF0000")
	return r.label(fmt.Sprintf("%.1f", v), x, area.Y-4, 0.5, 0, 20, "#FF0000")
}
