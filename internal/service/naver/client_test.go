package naver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func row(date, close, open, high, low, volume string) string {
	return fmt.Sprintf(`<tr>
		<td align="center"><span class="tah p10 gray03">%s</span></td>
		<td class="num"><span class="tah p11">%s</span></td>
		<td class="num"><span class="tah p11 red02">100</span></td>
		<td class="num"><span class="tah p11">%s</span></td>
		<td class="num"><span class="tah p11">%s</span></td>
		<td class="num"><span class="tah p11">%s</span></td>
		<td class="num"><span class="tah p11">%s</span></td>
	</tr>`, date, close, open, high, low, volume)
}

func page(rows ...string) string {
	body := `<html><body><table class="type2" summary="">
		<tr><th>date</th><th>close</th><th>diff</th><th>open</th><th>high</th><th>low</th><th>volume</th></tr>
		<tr><td colspan="7" height="8"></td></tr>`
	for _, r := range rows {
		body += r
	}
	return body + `</table></body></html>`
}

func TestDailyBarsParsesAndSorts(t *testing.T) {
	// Naver serves newest rows first; the client must return ascending.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("code"); got != "005930" {
			t.Errorf("code query = %q", got)
		}
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, page(
				row("2025.03.05", "72,000", "71,000", "72,500", "70,800", "12,345,678"),
				row("2025.03.04", "71,200", "70,500", "71,500", "70,100", "9,000,000"),
			))
		case "2":
			fmt.Fprint(w, page(
				row("2025.03.04", "71,200", "70,500", "71,500", "70,100", "9,000,000"),
				row("2025.03.03", "70,400", "70,000", "70,900", "69,800", "8,100,000"),
			))
		default:
			fmt.Fprint(w, page())
		}
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRetry(0, 0))
	bars, err := c.DailyBars(context.Background(), "005930", 3)
	if err != nil {
		t.Fatalf("DailyBars: %v", err)
	}

	if len(bars) != 3 {
		t.Fatalf("got %d bars, want 3 (overlap deduped)", len(bars))
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i-1].Date.Before(bars[i].Date) {
			t.Fatalf("bars not ascending at %d: %v >= %v", i, bars[i-1].Date, bars[i].Date)
		}
	}

	first := bars[0]
	if first.Date != time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC) {
		t.Errorf("first date = %v", first.Date)
	}
	last := bars[2]
	if last.Close != 72_000 || last.Open != 71_000 || last.High != 72_500 || last.Low != 70_800 {
		t.Errorf("unexpected OHLC on last bar: %+v", last)
	}
	if last.Volume != 12_345_678 {
		t.Errorf("volume = %d", last.Volume)
	}
}

func TestDailyBarsSkipsMalformedRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page(
			row("2025.03.05", "72,000", "71,000", "72,500", "70,800", "12,345,678"),
			row("not-a-date", "72,000", "71,000", "72,500", "70,800", "1"),
			row("2025.03.04", "", "70,500", "71,500", "70,100", "9,000,000"),
		))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRetry(0, 0))
	bars, err := c.DailyBars(context.Background(), "005930", 1)
	if err != nil {
		t.Fatalf("DailyBars: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("got %d bars, want 1 valid row", len(bars))
	}
}

func TestDailyBarsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page())
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRetry(0, 0))
	if _, err := c.DailyBars(context.Background(), "000000", 2); !errors.Is(err, ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
}

func TestDailyBarsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRetry(0, 0))
	if _, err := c.DailyBars(context.Background(), "005930", 1); !errors.Is(err, ErrDownloadFailed) {
		t.Errorf("expected ErrDownloadFailed, got %v", err)
	}
}

func TestDailyBarsUnreachableHost(t *testing.T) {
	c := NewClient(WithBaseURL("http://127.0.0.1:1"), WithRetry(0, 0), WithTimeout(200*time.Millisecond))
	if _, err := c.DailyBars(context.Background(), "005930", 1); !errors.Is(err, ErrDownloadFailed) {
		t.Errorf("expected ErrDownloadFailed, got %v", err)
	}
}
