package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Fatal777/ApplyX-sub001/internal/domain/listing"
)

// Client fetches one page of raw listings from the scraping pipeline. The
// pipeline owns all HTML/DOM work; this client only speaks its JSON API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

type rawSalary struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type rawListing struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Skills      []string   `json:"skills"`
	Salary      *rawSalary `json:"salary,omitempty"`
	SourceURL   string     `json:"source_url"`
	Portal      string     `json:"portal"`
}

type listingsResponse struct {
	Listings []rawListing `json:"listings"`
}

func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// FetchListings retrieves the raw postings for one (portal, page). Records
// arrive without IDs; ingestion assigns content hashes. Malformed individual
// records are skipped, not fatal.
func (c *Client) FetchListings(ctx context.Context, portal listing.Portal, page int) ([]listing.JobListing, error) {
	if c == nil || c.client == nil {
		return nil, fmt.Errorf("nil scraper client")
	}

	params := url.Values{}
	params.Set("portal", portal.String())
	params.Set("page", strconv.Itoa(page))
	endpoint := c.baseURL + "/listings?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scraper GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		if c.logger != nil {
			c.logger.Printf("[Scraper] Fetch error endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, bodyStr)
		}
		return nil, fmt.Errorf("scraper returned %d: %s", resp.StatusCode, bodyStr)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var decoded listingsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	out := make([]listing.JobListing, 0, len(decoded.Listings))
	for _, r := range decoded.Listings {
		if strings.TrimSpace(r.Title) == "" {
			continue
		}
		item := listing.JobListing{
			Title:       r.Title,
			Company:     r.Company,
			Location:    r.Location,
			Description: r.Description,
			Skills:      r.Skills,
			SourceURL:   r.SourceURL,
			Portal:      portal,
		}
		if r.Salary != nil {
			item.Salary = &listing.SalaryRange{Min: r.Salary.Min, Max: r.Salary.Max}
		}
		out = append(out, item)
	}
	return out, nil
}
