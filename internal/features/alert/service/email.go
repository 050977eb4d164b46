package service

import (
	"fmt"
	"html"
	"strings"
	"time"

	"slotbot-backend/internal/common/unsubscribe"
	"slotbot-backend/internal/features/alert/models"
	casinomodels "slotbot-backend/internal/features/casino/models"
)

// renderAlertEmail builds the subject and HTML body for one recipient. Links
// are absolute against the site base URL; the unsubscribe link carries the
// recipient's reversible token.
func renderAlertEmail(alert *models.Alert, casino *casinomodels.Casino, rcpt *models.RecipientUser, baseURL string) (string, string) {
	base := strings.TrimRight(baseURL, "/")

	subject := "New slot alert"
	if alert.Slot != "" {
		subject = fmt.Sprintf("New slot alert: %s", alert.Slot)
	} else if alert.CasinoName != "" {
		subject = fmt.Sprintf("New alert from %s", alert.CasinoName)
	}

	playURL := fmt.Sprintf("%s/out/%s", base, alert.ID)
	unsubURL := fmt.Sprintf("%s/api/unsubscribe?token=%s", base, unsubscribe.Encode(rcpt.UserID, time.Now()))

	var b strings.Builder
	b.WriteString(`<div style="font-family:sans-serif;max-width:600px;margin:0 auto">`)
	b.WriteString(`<h2>`)
	b.WriteString(html.EscapeString(subject))
	b.WriteString(`</h2>`)

	if casino != nil && casino.Logo != "" {
		fmt.Fprintf(&b, `<img src="%s" alt="%s" style="max-height:60px"/>`,
			html.EscapeString(absoluteURL(base, casino.Logo)), html.EscapeString(casino.Name))
	}
	if alert.SlotImage != "" {
		fmt.Fprintf(&b, `<img src="%s" alt="%s" style="max-width:100%%"/>`,
			html.EscapeString(absoluteURL(base, alert.SlotImage)), html.EscapeString(alert.Slot))
	}

	b.WriteString(`<p>`)
	b.WriteString(html.EscapeString(alert.Message))
	b.WriteString(`</p>`)

	figures := collectFigures(alert)
	if len(figures) > 0 {
		b.WriteString(`<table style="border-collapse:collapse">`)
		for _, f := range figures {
			fmt.Fprintf(&b, `<tr><td style="padding:4px 12px 4px 0"><b>%s</b></td><td>%s</td></tr>`,
				html.EscapeString(f[0]), html.EscapeString(f[1]))
		}
		b.WriteString(`</table>`)
	}

	fmt.Fprintf(&b, `<p><a href="%s" style="display:inline-block;padding:12px 24px;background:#e2001a;color:#fff;text-decoration:none;border-radius:4px">Play now</a></p>`, playURL)
	fmt.Fprintf(&b, `<p style="font-size:12px;color:#888">Don't want these emails? <a href="%s">Unsubscribe</a>.</p>`, unsubURL)
	b.WriteString(`</div>`)

	return subject, b.String()
}

func collectFigures(alert *models.Alert) [][2]string {
	var figures [][2]string
	add := func(label string, value *float64, suffix string) {
		if value != nil {
			figures = append(figures, [2]string{label, trimFloat(*value) + suffix})
		}
	}
	add("Max potential", alert.MaxPotential, "x")
	add("Recommended bet", alert.RecommendedBet, "")
	add("Stop limit", alert.StopLimit, "")
	add("Target win", alert.TargetWin, "")
	add("Max win", alert.MaxWin, "")
	add("RTP", alert.RTP, "%")
	return figures
}

func trimFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func absoluteURL(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

