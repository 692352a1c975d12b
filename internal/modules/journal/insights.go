package journal

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/dkoutsos/tradescope/internal/domain"
)

// EmotionInsight is the per-emotion statistics block for the mindset view.
type EmotionInsight struct {
	Emotion   string  `json:"emotion"`
	Entries   int     `json:"entries"`
	TotalPnL  float64 `json:"total_pnl"`
	MeanPnL   float64 `json:"mean_pnl"`
	StdDevPnL float64 `json:"stddev_pnl"`
}

// EmotionInsights computes per-emotion PnL statistics, ordered by total PnL
// descending so the most profitable state of mind tops the table. Entries
// without PnL or emotions are skipped, as in MoodBreakdown.
func EmotionInsights(entries []domain.JournalEntry) []EmotionInsight {
	samples := map[string][]float64{}
	for _, entry := range entries {
		if entry.PnL == nil || len(entry.Emotions) == 0 {
			continue
		}
		for _, emotion := range entry.Emotions {
			samples[emotion] = append(samples[emotion], *entry.PnL)
		}
	}

	out := make([]EmotionInsight, 0, len(samples))
	for emotion, pnls := range samples {
		insight := EmotionInsight{
			Emotion: emotion,
			Entries: len(pnls),
			MeanPnL: stat.Mean(pnls, nil),
		}
		for _, v := range pnls {
			insight.TotalPnL += v
		}
		if len(pnls) > 1 {
			insight.StdDevPnL = stat.StdDev(pnls, nil)
		}
		out = append(out, insight)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPnL != out[j].TotalPnL {
			return out[i].TotalPnL > out[j].TotalPnL
		}
		return out[i].Emotion < out[j].Emotion
	})

	return out
}
