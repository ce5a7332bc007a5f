package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"StockSight/internal/domain/models"
	xhttp "StockSight/pkg/http"
	"StockSight/pkg/util"
)

const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client reads daily bars from the Yahoo Finance v8 chart endpoint.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New builds a client on top of an xhttp.Client. An empty baseURL uses DefaultBaseURL.
func New(baseURL string, httpClient *xhttp.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol   string `json:"symbol"`
				Currency string `json:"currency"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *chartError `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// noData reports provider answers that mean "nothing for this symbol/range".
func (e *chartError) noData() bool {
	return e != nil && (e.Code == "Not Found" || strings.Contains(strings.ToLower(e.Description), "no data found"))
}

// FetchDaily returns bars for [start, end), sorted by date. Rows without a
// close are dropped. Unknown symbols and empty ranges give an empty slice.
func (c *Client) FetchDaily(ctx context.Context, symbol string, start, end time.Time) ([]models.PriceBar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol))

	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    u,
		QueryParams: map[string][]string{
			"interval": {"1d"},
			"period1":  {strconv.FormatInt(start.Unix(), 10)},
			"period2":  {strconv.FormatInt(end.Unix(), 10)},
			"events":   {"history"},
		},
	}, &resp)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			var body chartResponse
			if json.Unmarshal(se.Body, &body) == nil && body.Chart.Error.noData() {
				return []models.PriceBar{}, nil
			}
		}
		return nil, fmt.Errorf("yahoo fetch %s: %w", symbol, err)
	}

	if resp.Chart.Error != nil {
		if resp.Chart.Error.noData() {
			return []models.PriceBar{}, nil
		}
		return nil, fmt.Errorf("yahoo api error: %s", resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Timestamp) == 0 {
		return []models.PriceBar{}, nil
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: %s response has no quote block", symbol)
	}
	q := result.Indicators.Quote[0]

	bars := make([]models.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, h, l, cl := at(q.Open, i), at(q.High, i), at(q.Low, i), at(q.Close, i)
		if cl == nil {
			continue // holidays, halted sessions and the unfinished current day
		}
		bars = append(bars, models.PriceBar{
			Date:   util.Day(time.Unix(ts, 0).UTC()),
			Open:   val(o),
			High:   val(h),
			Low:    val(l),
			Close:  val(cl),
			Volume: val(at(q.Volume, i)),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func at(vs []*float64, i int) *float64 {
	if i < len(vs) {
		return vs[i]
	}
	return nil
}

func val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
