// Package naver fetches daily KOSPI/KOSDAQ price history from the Naver
// Finance daily-quote pages. There is no official API; the client scrapes
// the same HTML table the website renders.
package naver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"ChartSense/internal/domain/models"
	"ChartSense/pkg/logger"
)

const (
	defaultBaseURL = "https://finance.naver.com"
	defaultPages   = 15
	defaultTimeout = 5 * time.Second
	defaultRetries = 2
	defaultBackoff = 500 * time.Millisecond

	// A browser User-Agent is required; the default Go client string
	// gets an empty page back.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

	dateLayout = "2006.01.02"
)

var (
	ErrEmptyData      = errors.New("no price rows returned")
	ErrDownloadFailed = errors.New("price download failed")
)

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

func WithRetry(max int, backoff time.Duration) Option {
	return func(c *Client) {
		if max >= 0 {
			c.http.SetRetryCount(max)
		}
		if backoff > 0 {
			c.http.SetRetryWaitTime(backoff)
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.http.SetHeader("User-Agent", ua)
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// Client scrapes daily OHLCV bars. Safe for concurrent use.
type Client struct {
	http    *resty.Client
	baseURL string
	log     *logger.Logger
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    resty.New(),
		baseURL: defaultBaseURL,
	}
	c.http.SetTimeout(defaultTimeout)
	c.http.SetRetryCount(defaultRetries)
	c.http.SetRetryWaitTime(defaultBackoff)
	c.http.SetHeader("User-Agent", defaultUserAgent)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DailyBars fetches pages 1..pages of the daily quote table for the given
// 6-digit item code and returns the bars sorted by date ascending. One
// page holds at most ten trading days.
func (c *Client) DailyBars(ctx context.Context, code string, pages int) ([]models.Bar, error) {
	if pages <= 0 {
		pages = defaultPages
	}

	seen := make(map[time.Time]struct{})
	var bars []models.Bar

	for page := 1; page <= pages; page++ {
		url := fmt.Sprintf("%s/item/sise_day.nhn?code=%s&page=%d", c.baseURL, code, page)

		resp, err := c.http.R().SetContext(ctx).Get(url)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrDownloadFailed, page, err)
		}
		if resp.StatusCode() != 200 {
			return nil, fmt.Errorf("%w: page %d: HTTP %d", ErrDownloadFailed, page, resp.StatusCode())
		}

		pageBars, err := parseDailyTable(resp.String())
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrDownloadFailed, page, err)
		}

		for _, b := range pageBars {
			if _, dup := seen[b.Date]; dup {
				continue
			}
			seen[b.Date] = struct{}{}
			bars = append(bars, b)
		}

		if c.log != nil {
			c.log.Debug("fetched daily quote page",
				logger.String("code", code),
				logger.Int("page", page),
				logger.Int("rows", len(pageBars)),
			)
		}
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: code %s", ErrEmptyData, code)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// parseDailyTable extracts bars from one sise_day page. Row cells are
// date, close, change, open, high, low, volume; spacer and header rows
// have no value cells and are skipped.
func parseDailyTable(html string) ([]models.Bar, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var bars []models.Bar
	doc.Find("table.type2 tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td span.tah")
		if cells.Length() != 7 {
			return
		}

		texts := make([]string, 0, 7)
		cells.Each(func(_ int, cell *goquery.Selection) {
			texts = append(texts, strings.TrimSpace(cell.Text()))
		})

		date, err := time.Parse(dateLayout, texts[0])
		if err != nil {
			return
		}
		closePrice, err1 := parsePrice(texts[1])
		openPrice, err2 := parsePrice(texts[3])
		highPrice, err3 := parsePrice(texts[4])
		lowPrice, err4 := parsePrice(texts[5])
		volume, err5 := parseVolume(texts[6])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			return
		}

		bars = append(bars, models.Bar{
			Date:   date,
			Open:   openPrice,
			High:   highPrice,
			Low:    lowPrice,
			Close:  closePrice,
			Volume: volume,
		})
	})

	return bars, nil
}

func parsePrice(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

func parseVolume(s string) (int64, error) {
	return strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
}
