// internal/service/metals.go
package service

import (
    "encoding/json"
    "fmt"
    "log"
    "math"
    "net/http"
    "strconv"
    "strings"
    "sync"
    "time"
)

// MetalPrice is a per-gram price in local (INR) and reference (USD)
// currency.
type MetalPrice struct {
    INR float64 `json:"inr"`
    USD float64 `json:"usd"`
}

type MetalPrices struct {
    Gold      MetalPrice `json:"gold"`
    Silver    MetalPrice `json:"silver"`
    Timestamp string     `json:"timestamp"`
}

// goldAPIResponse is the relevant slice of a goldapi.io payload.
type goldAPIResponse struct {
    PriceGram24K float64 `json:"price_gram_24k"`
}

// Prices are cached for an hour to stay inside the goldapi.io free tier
// (300 requests/month).
const metalsCacheDuration = time.Hour

// Approximate conversion used for the USD columns.
const usdToINR = 83.5

const goldAPIBaseURL = "https://www.goldapi.io/api"

// MetalsService fetches live gold/silver prices with an in-process cache
// and a constant fallback table. FetchPrices never fails: a missing API
// key or an upstream error degrades to the fallback, not to an error.
type MetalsService struct {
    APIKey  string
    BaseURL string           // defaults to goldapi.io
    Client  *http.Client     // defaults to http.DefaultClient
    Now     func() time.Time // injectable clock for freshness checks

    mu        sync.Mutex
    cached    *MetalPrices
    lastFetch time.Time
}

func (m *MetalsService) now() time.Time {
    if m.Now != nil {
        return m.Now()
    }
    return time.Now()
}

func (m *MetalsService) httpClient() *http.Client {
    if m.Client != nil {
        return m.Client
    }
    return http.DefaultClient
}

func (m *MetalsService) baseURL() string {
    if m.BaseURL != "" {
        return m.BaseURL
    }
    return goldAPIBaseURL
}

// FetchPrices returns the cached prices when they are younger than the
// freshness window, otherwise fetches live prices, falling back to the
// constant table on any failure.
func (m *MetalsService) FetchPrices() *MetalPrices {
    m.mu.Lock()
    defer m.mu.Unlock()

    if m.cached != nil && m.now().Sub(m.lastFetch) < metalsCacheDuration {
        log.Println("Using cached metal prices")
        return m.cached
    }

    if m.APIKey == "" {
        log.Println("No GOLD_API_KEY found, using fallback prices")
        return m.fallbackPrices()
    }

    log.Println("Fetching live metal prices from GoldAPI.io...")

    goldPerGram, err := m.fetchGramPrice("XAU")
    if err != nil {
        log.Println("Error fetching metal prices:", err)
        return m.fallbackPrices()
    }
    silverPerGram, err := m.fetchGramPrice("XAG")
    if err != nil {
        log.Println("Error fetching metal prices:", err)
        return m.fallbackPrices()
    }

    m.cached = &MetalPrices{
        Gold: MetalPrice{
            INR: round2(goldPerGram),
            USD: round2(goldPerGram / usdToINR),
        },
        Silver: MetalPrice{
            INR: round2(silverPerGram),
            USD: round2(silverPerGram / usdToINR),
        },
        Timestamp: m.now().UTC().Format(time.RFC3339),
    }
    m.lastFetch = m.now()
    log.Printf("✅ Live metal prices fetched: %+v\n", m.cached)
    return m.cached
}

func (m *MetalsService) fetchGramPrice(symbol string) (float64, error) {
    req, err := http.NewRequest(http.MethodGet, m.baseURL()+"/"+symbol+"/INR", nil)
    if err != nil {
        return 0, err
    }
    req.Header.Set("x-access-token", m.APIKey)

    resp, err := m.httpClient().Do(req)
    if err != nil {
        return 0, err
    }
    defer resp.Body.Close()

    if resp.StatusCode != http.StatusOK {
        return 0, fmt.Errorf("API request failed: %s", resp.Status)
    }

    var data goldAPIResponse
    if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
        return 0, err
    }
    return data.PriceGram24K, nil
}

// fallbackPrices is the constant table used when the live fetch is
// unavailable. Not written to the cache: the next call retries the API.
func (m *MetalsService) fallbackPrices() *MetalPrices {
    return &MetalPrices{
        Gold:      MetalPrice{USD: 85.20, INR: 7114},
        Silver:    MetalPrice{USD: 1.00, INR: 84},
        Timestamp: m.now().UTC().Format(time.RFC3339),
    }
}

func round2(v float64) float64 {
    return math.Round(v*100) / 100
}

// FormatPrice renders a price for display: ₹ with Indian digit grouping,
// or $ with two decimals.
func FormatPrice(price float64, currency string) string {
    if currency == "USD" {
        return fmt.Sprintf("$%.2f", price)
    }
    return "₹" + groupINR(price)
}

// groupINR formats with en-IN grouping: last three digits, then pairs
// (12,34,567). Fraction digits are kept only when present.
func groupINR(v float64) string {
    s := strconv.FormatFloat(round2(v), 'f', -1, 64)
    intPart, fracPart, _ := strings.Cut(s, ".")

    neg := strings.HasPrefix(intPart, "-")
    intPart = strings.TrimPrefix(intPart, "-")

    if len(intPart) > 3 {
        head := intPart[:len(intPart)-3]
        tail := intPart[len(intPart)-3:]
        var groups []string
        for len(head) > 2 {
            groups = append([]string{head[len(head)-2:]}, groups...)
            head = head[:len(head)-2]
        }
        if head != "" {
            groups = append([]string{head}, groups...)
        }
        intPart = strings.Join(append(groups, tail), ",")
    }

    out := intPart
    if fracPart != "" {
        out += "." + fracPart
    }
    if neg {
        out = "-" + out
    }
    return out
}

// MetalPricesHTML renders the market-price block inserted for
// {{metal_prices}}. Gold is quoted per 10 grams, silver per kilogram.
func MetalPricesHTML(p *MetalPrices) string {
    gold10g := math.Round(p.Gold.INR * 10)
    silver1kg := math.Round(p.Silver.INR * 1000)

    return fmt.Sprintf(`
    <div style="background: #f8f9fa; padding: 30px; margin: 0;">
      <h3 style="color: #1a1a2e; font-size: 12px; text-transform: uppercase; letter-spacing: 2px; margin: 0 0 20px 0; text-align: center;">Live Market Prices</h3>
      <table width="100%%" cellpadding="0" cellspacing="0" border="0">
        <tr>
          <td width="50%%" style="padding: 8px;">
            <div style="background: linear-gradient(135deg, #1a1a2e 0%%, #16213e 100%%); border-radius: 16px; padding: 25px 20px; text-align: center;">
              <div style="color: #f39c12; font-size: 28px; margin-bottom: 8px;">🥇</div>
              <div style="color: #888; font-size: 11px; text-transform: uppercase; letter-spacing: 1px;">Gold 24K</div>
              <div style="color: #fff; font-size: 22px; font-weight: 700; margin: 8px 0 4px;">%s</div>
              <div style="color: #666; font-size: 10px;">per 10 grams</div>
            </div>
          </td>
          <td width="50%%" style="padding: 8px;">
            <div style="background: linear-gradient(135deg, #1a1a2e 0%%, #16213e 100%%); border-radius: 16px; padding: 25px 20px; text-align: center;">
              <div style="color: #c0c0c0; font-size: 28px; margin-bottom: 8px;">🥈</div>
              <div style="color: #888; font-size: 11px; text-transform: uppercase; letter-spacing: 1px;">Silver</div>
              <div style="color: #fff; font-size: 22px; font-weight: 700; margin: 8px 0 4px;">%s</div>
              <div style="color: #666; font-size: 10px;">per 1 kg</div>
            </div>
          </td>
        </tr>
      </table>
    </div>
`, FormatPrice(gold10g, "INR"), FormatPrice(silver1kg, "INR"))
}
