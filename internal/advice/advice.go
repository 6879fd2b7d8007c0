package advice

import (
	"fmt"

	"github.com/2beens/gymreports/internal/healthdata"
)

const GeneralAdvice = "5. 通用建議：規律作息，均衡飲食。"

// Recommendations returns the five numbered advice lines for a record.
func Recommendations(rec healthdata.Record) []string {
	return []string{
		heartRate(rec.HeartRate),
		bmi(rec.BMI),
		bloodPressure(rec.BloodPressure),
		exercise(rec.ExerciseDuration),
		GeneralAdvice,
	}
}

func heartRate(hr *float64) string {
	switch v := healthdata.Float(hr, 0); {
	case v == 0:
		return "1. 您的靜息心率未提供"
	case v > 100:
		return "1. 您的靜息心率偏高，建議增加有氧運動並注意休息與壓力管理。"
	case v < 60:
		return "1. 您的靜息心率偏低，若伴隨頭暈或疲倦請諮詢醫師。"
	default:
		return "1. 您的靜息心率在理想範圍，請繼續保持。"
	}
}

func bmi(b *float64) string {
	v := healthdata.Float(b, 0)
	if v == 0 {
		return "2. 您的BMI未提供"
	}
	switch healthdata.BMICategory(v) {
	case healthdata.BMIUnderweight:
		return "2. 您的BMI過低，建議增加營養攝取並搭配肌力訓練。"
	case healthdata.BMINormal:
		return "2. 您的BMI正常，請維持目前的飲食與運動習慣。"
	case healthdata.BMIOverweight:
		return "2. 您的BMI過重，建議控制熱量攝取並增加運動量。"
	default:
		return "2. 您的BMI肥胖，建議諮詢專業人士制定減重計畫。"
	}
}

func bloodPressure(s *string) string {
	bp, err := healthdata.ParseBloodPressure(s)
	if err != nil {
		return "3. 血壓資料未提供或格式錯誤"
	}
	switch bp.Category() {
	case healthdata.BPIdeal:
		return "3. 您的血壓理想，請繼續保持。"
	case healthdata.BPElevated:
		return "3. 您的血壓偏高，建議減少鈉攝取並規律運動。"
	default:
		return "3. 您的血壓屬於高血壓範圍，建議盡快諮詢醫師。"
	}
}

func exercise(minutes *float64) string {
	m := healthdata.Float(minutes, 0)
	prefix := fmt.Sprintf("4. 本週運動時間(%d分鐘)", int(m))
	switch {
	case m < 150:
		return prefix + "不足，建議每週至少 150 分鐘中等強度運動。"
	case m <= 300:
		return prefix + "達標，請繼續保持。"
	default:
		return prefix + "充足，請注意適度休息避免過度訓練。"
	}
}
