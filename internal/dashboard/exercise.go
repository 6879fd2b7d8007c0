package dashboard

import (
	"fmt"
	"math"

	"github.com/2beens/gymreports/internal/healthdata"
)

const (
	ExerciseMinimum = 150.0
	ExerciseIdeal   = 300.0
)

func drawExercise(r *renderer, p panel, minutes *float64) error {
	if err := r.title(p, "每週運動時間分析"); err != nil {
		return err
	}

	bars := []struct {
		label string
		value float64
		color string
	}{
		{"最低標準", ExerciseMinimum, "#FFD43B"},
		{"理想目標", ExerciseIdeal, "#4ECDC4"},
		{"當週運動", healthdata.Float(minutes, 0), palette.Primary},
	}

	top := ExerciseIdeal * 1.2
	for _, b := range bars {
		top = math.Max(top, b.value*1.15)
	}

	dc := r.dc
	area := p.plot()
	area.X += 20
	area.W -= 20
	toY := func(v float64) float64 {
		return scale(math.Max(v, 0), 0, top, area.Y+area.H, area.Y)
	}

	slot := area.W / float64(len(bars))
	for i, b := range bars {
		x := area.X + float64(i)*slot + slot*0.2
		w := slot * 0.6
		y := toY(b.value)
		dc.SetHexColor(b.color + "CC")
		dc.DrawRectangle(x, y, w, area.Y+area.H-y)
		dc.Fill()
		if err := r.label(fmt.Sprintf("%d 分鐘", int(b.value)), x+w/2, y-6, 0.5, 0, 16, palette.Text); err != nil {
			return err
		}
		if err := r.label(b.label, x+w/2, area.Y+area.H+8, 0.5, 1, 16, palette.Text); err != nil {
			return err
		}
	}

	refs := []struct {
		value float64
		label string
		color string
	}{
		{ExerciseMinimum, "WHO 最低建議", "#FF0000"},
		{ExerciseIdeal, "WHO 理想目標", "#008000"},
	}
	for _, ref := range refs {
		y := toY(ref.value)
		r.dashedLine(area.X, y, area.X+area.W, y, 2, ref.color)
		if err := r.label(ref.label, area.X+area.W, y-4, 1, 0, 14, ref.color); err != nil {
			return err
		}
	}

	dc.SetHexColor("#000000")
	dc.SetLineWidth(1.5)
	dc.DrawLine(area.X, area.Y+area.H, area.X+area.W, area.Y+area.H)
	dc.Stroke()
	return nil
}
