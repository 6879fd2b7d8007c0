package dashboard

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/2beens/gymreports/internal/healthdata"
)

const (
	TrendDays = 30

	defaultHeartRate = 75.0
	defaultWeight    = 70.0
)

type TrendPoint struct {
	Day       time.Time
	HeartRate float64
	Weight    float64
}

// SyntheticTrend simulates the last 30 days around the submitted values.
// The data is illustrative only; nothing historical is read.
func SyntheticTrend(rng *rand.Rand, rec healthdata.Record, now time.Time) []TrendPoint {
	hrBase := defaultHeartRate
	if healthdata.Present(rec.HeartRate) {
		hrBase = *rec.HeartRate
	}
	wBase := defaultWeight
	if healthdata.Present(rec.Weight) {
		wBase = *rec.Weight
	}

	points := make([]TrendPoint, 0, TrendDays)
	for d := TrendDays; d > 0; d-- {
		points = append(points, TrendPoint{
			Day:       now.AddDate(0, 0, -d),
			HeartRate: math.Max(50, hrBase+rng.NormFloat64()*5),
			Weight:    math.Max(40, wBase+rng.NormFloat64()*0.5),
		})
	}
	return points
}

func drawTrend(r *renderer, p panel, points []TrendPoint) error {
	if err := r.title(p, "30 天健康趨勢"); err != nil {
		return err
	}
	if len(points) == 0 {
		return r.label("N/A", p.centerX(), p.centerY(), 0.5, 0.5, 22, palette.Text)
	}

	dc := r.dc
	area := p.plot()
	area.X += 20
	area.W -= 50

	hrLo, hrHi := valueRange(points, func(tp TrendPoint) float64 { return tp.HeartRate })
	wLo, wHi := valueRange(points, func(tp TrendPoint) float64 { return tp.Weight })

	toX := func(i int) float64 {
		if len(points) == 1 {
			return area.centerX()
		}
		return scale(float64(i), 0, float64(len(points)-1), area.X, area.X+area.W)
	}

	dc.SetHexColor("#888888")
	dc.SetLineWidth(1)
	dc.DrawRectangle(area.X, area.Y, area.W, area.H)
	dc.Stroke()

	series := []struct {
		value  func(TrendPoint) float64
		lo, hi float64
		color  string
	}{
		{func(tp TrendPoint) float64 { return tp.HeartRate }, hrLo, hrHi, palette.Primary},
		{func(tp TrendPoint) float64 { return tp.Weight }, wLo, wHi, palette.Secondary},
	}
	for _, s := range series {
		dc.SetHexColor(s.color)
		dc.SetLineWidth(3)
		dc.NewSubPath()
		for i, tp := range points {
			dc.LineTo(toX(i), scale(s.value(tp), s.lo, s.hi, area.Y+area.H, area.Y))
		}
		dc.Stroke()
		for i, tp := range points {
			dc.DrawCircle(toX(i), scale(s.value(tp), s.lo, s.hi, area.Y+area.H, area.Y), 3.5)
			dc.Fill()
		}
	}

	labels := []struct {
		text             string
		x, y, ax, ay, pt float64
		color            string
	}{
		{fmt.Sprintf("%.0f", hrHi), area.X - 6, area.Y, 1, 0.5, 14, palette.Primary},
		{fmt.Sprintf("%.0f", hrLo), area.X - 6, area.Y + area.H, 1, 0.5, 14, palette.Primary},
		{fmt.Sprintf("%.1f", wHi), area.X + area.W + 6, area.Y, 0, 0.5, 14, palette.Secondary},
		{fmt.Sprintf("%.1f", wLo), area.X + area.W + 6, area.Y + area.H, 0, 0.5, 14, palette.Secondary},
		{points[0].Day.Format("01-02"), area.X, area.Y + area.H + 8, 0, 1, 14, palette.Text},
		{points[len(points)-1].Day.Format("01-02"), area.X + area.W, area.Y + area.H + 8, 1, 1, 14, palette.Text},
		{"心率 (BPM)", area.X + 10, area.Y + 12, 0, 0.5, 16, palette.Primary},
		{"體重 (kg)", area.X + 10, area.Y + 36, 0, 0.5, 16, palette.Secondary},
		{"日期", area.centerX(), p.Y + p.H - 10, 0.5, 0, 16, palette.Text},
	}
	for _, l := range labels {
		if err := r.label(l.text, l.x, l.y, l.ax, l.ay, l.pt, l.color); err != nil {
			return err
		}
	}
	return nil
}

// valueRange returns a padded [lo, hi] covering all values
func valueRange(points []TrendPoint, value func(TrendPoint) float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, tp := range points {
		v := value(tp)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	pad := math.Max((hi-lo)*0.1, 1)
	return lo - pad, hi + pad
}
