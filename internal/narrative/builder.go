// Package narrative renders an analysis result as a step-by-step action
// checklist. It is pure formatting: everything it prints is derived from
// values already computed upstream.
package narrative

import (
	"fmt"
	"strconv"
	"strings"

	"ChartSense/internal/domain/models"
)

const volumeSurgeRatio = 1.5

// Build returns the ten-step strategy text for one analysis.
func Build(snap models.IndicatorSnapshot, sig models.Signal, levels models.StrategyLevels, capital *float64, plan *models.PositionPlan) string {
	var b strings.Builder

	section(&b, "STEP 1. Is this stock worth a look today?")
	switch {
	case sig.Score >= 3:
		line(&b, " -> It qualifies as a same-day entry candidate under the current rule set.")
	case sig.Score == 2:
		line(&b, " -> The pattern is not bad but sits in a gray zone. Watching, or a small probe entry, fits best.")
	default:
		line(&b, " -> Trend, volume and RSI conditions do not line up well enough. Staying out is the safer call today.")
	}

	blank(&b)
	section(&b, "STEP 2. Trend summary")
	if snap.Close > snap.MA20 {
		line(&b, " - Price is above the 20-day average, so the medium-term trend is healthy.")
	} else {
		line(&b, " - Price is below the 20-day average, so the medium-term trend is on the weak side.")
	}
	if snap.MA5 > snap.MA20 {
		line(&b, " - The 5-day average is above the 20-day average, so the short-term trend points up as well.")
	} else {
		line(&b, " - The 5-day average is below the 20-day average, so the short-term trend is still weak.")
	}
	if float64(snap.VolumeToday) > float64(snap.VolumePrev)*volumeSurgeRatio {
		line(&b, " - Volume jumped versus the previous session, which suggests money is flowing in.")
	} else {
		line(&b, " - Volume is not much larger than the previous session, so demand is not strong yet.")
	}
	switch {
	case snap.RSI == nil:
		line(&b, " - RSI could not be determined from the available history.")
	case *snap.RSI >= 45 && *snap.RSI <= 60:
		line(&b, " - RSI sits in the 45-60 band: neither overheated nor washed out.")
	case *snap.RSI > 70:
		line(&b, " - RSI is near overheated territory (70+); a pullback after the recent run is possible.")
	case *snap.RSI < 30:
		line(&b, " - RSI is near oversold territory (30-); a short-term bounce is possible but the trend needs confirmation.")
	}

	blank(&b)
	section(&b, "STEP 3. Recommended action for today")
	switch {
	case sig.Score >= 3:
		line(&b, " -> Entry is on the table, but only together with scaled buying and a pre-set stop.")
	case sig.Score == 2:
		line(&b, " -> Partial entry or watching is appropriate. Avoid pushing the position size.")
	default:
		line(&b, " -> Watching is recommended over opening a new position today.")
	}

	blank(&b)
	section(&b, "STEP 4. Entry points (example)")
	line(&b, " - 1st buy: consider a scaled entry between the current price and the 5-day average.")
	line(&b, " - 2nd buy: add on a shallow dip (around -1%) after the first buy.")
	line(&b, " - 3rd buy: add only after confirming the trend is still intact on a further rise or retest.")

	blank(&b)
	section(&b, "STEP 5. Maximum amount to commit to this stock (example basis)")
	if capital != nil && plan != nil && plan.SharesTotal > 0 {
		line(&b, " - Capital entered: about "+won(*capital))
		line(&b, " - Maximum for this stock (assuming 10% of capital): about "+won(plan.Budget))
		line(&b, " - Total shares affordable at the current price: about "+comma(plan.SharesTotal)+" shares")
		line(&b, " - Standard scaled entry (40% / 30% / 30%):")
		for i, t := range plan.Tranches {
			line(&b, fmt.Sprintf("    * leg %d: %s shares (about %s)", i+1, comma(t.Shares), won(t.Amount)))
		}
	} else {
		line(&b, " - No capital was entered, so the amount and share-count breakdown is skipped.")
		line(&b, " - Re-run the query with a capital figure to get a concrete position plan.")
	}

	blank(&b)
	section(&b, "STEP 6. Stop loss (example)")
	line(&b, " - Stop: about -3% from the current price (around "+won(levels.StopLoss)+")")
	line(&b, " - Decide the stop before buying, and exit without second-guessing when it is hit.")

	blank(&b)
	section(&b, "STEP 7. Profit taking (example)")
	line(&b, " - 1st target: +5% from the current price (around "+won(levels.TP1)+")")
	line(&b, " - 2nd target: +7% from the current price (around "+won(levels.TP2)+")")
	line(&b, " - Locking in part of a gain early helps keep the rest of the trade calm.")

	blank(&b)
	section(&b, "STEP 8. Checkpoints while holding")
	line(&b, " - If RSI pushes above 70 into overheated territory, consider partial profit taking or trimming.")
	line(&b, " - If price breaks the 5-day average on rising volume, switch to defensive handling.")
	line(&b, " - If even the 20-day average gives way, the medium-term trend is damaged; closing most of the position is usually right.")

	blank(&b)
	section(&b, "STEP 9. Exit scenario")
	line(&b, " - When the target zone (+5~7%) is reached, take the exit as planned instead of stretching for more.")
	line(&b, " - When the stop is reached, the original rule outranks the hope that it will come back.")

	blank(&b)
	section(&b, "STEP 10. Review")
	line(&b, " - After the trade, compare the entry and exit against today's plan and write a one-line review.")
	line(&b, " - This system is a decision aid; the final call and the responsibility stay with you.")

	return strings.TrimRight(b.String(), "\n")
}

func section(b *strings.Builder, s string) { b.WriteString(s); b.WriteByte('\n') }
func line(b *strings.Builder, s string)    { b.WriteString(s); b.WriteByte('\n') }
func blank(b *strings.Builder)             { b.WriteByte('\n') }

// won renders a price or amount as a whole-won figure with digit grouping.
func won(v float64) string {
	return comma(int64(v+0.5)) + " KRW"
}

// comma groups an integer with thousands separators.
func comma(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
