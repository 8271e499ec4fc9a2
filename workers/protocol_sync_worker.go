package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"protocol-wars-engine/models"
)

// TVLSyncClient pulls fresh TVL figures for the protocol grid from an
// external feed and mirrors them into the protocols table. The feed is
// optional: without TVL_FEED_URL the grid keeps its seeded numbers.
type TVLSyncClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	DB         *gorm.DB
}

// NewTVLSyncClient returns nil when TVL_FEED_URL is unset.
func NewTVLSyncClient(db *gorm.DB) *TVLSyncClient {
	baseURL := os.Getenv("TVL_FEED_URL")
	if baseURL == "" {
		log.Println("ℹ️ TVL_FEED_URL not set, protocol TVL sync disabled")
		return nil
	}
	token := os.Getenv("TVL_FEED_TOKEN")

	return &TVLSyncClient{
		BaseURL: baseURL,
		Token:   token,
		DB:      db,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// feedEntry is the feed's wire shape for a single protocol.
type feedEntry struct {
	Name string  `json:"name"`
	Type string  `json:"type"`
	TVL  float64 `json:"tvl"`
}

func (c *TVLSyncClient) GetChangedProtocols(ctx context.Context, since time.Time) ([]feedEntry, error) {
	since = since.UTC()

	u, err := url.Parse(fmt.Sprintf("%s/api/v1/protocols", c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed URL: %w", err)
	}

	q := u.Query()
	q.Set("since", since.Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.Token != "" {
		req.Header.Set("X-Service-Token", c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call TVL feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("TVL feed returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Protocols []feedEntry `json:"protocols"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode TVL feed response: %w", err)
	}

	return response.Protocols, nil
}

// PollProtocolTVL mirrors feed updates into the protocols table until ctx is
// cancelled. Only name, type and tvl are touched — trait blocks and ownership
// stay under the engine's control.
func PollProtocolTVL(ctx context.Context, client *TVLSyncClient, pollInterval time.Duration) {
	if client == nil {
		return
	}

	log.Println("Starting protocol TVL polling...")
	lastSyncTime := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Protocol TVL polling stopped.")
			return
		case <-ticker.C:
			logTime := time.Now().UTC()

			entries, err := client.GetChangedProtocols(ctx, lastSyncTime)
			if err != nil {
				log.Printf("❌ Error polling TVL feed: %v", err)
				continue
			}

			count := len(entries)
			if count == 0 {
				continue
			}

			protocols := make([]models.Protocol, 0, count)
			for _, e := range entries {
				if e.Name == "" {
					continue
				}
				protocols = append(protocols, models.Protocol{
					ID:   slug.Make(e.Name),
					Name: e.Name,
					Type: e.Type,
					TVL:  int64(e.TVL),
				})
			}
			if len(protocols) == 0 {
				continue
			}

			if err := client.DB.Clauses(
				clause.OnConflict{
					Columns: []clause.Column{{Name: "id"}},
					DoUpdates: clause.AssignmentColumns([]string{
						"name",
						"type",
						"tvl",
						"updated_at",
					}),
				},
			).Create(&protocols).Error; err != nil {
				log.Printf("❌ Failed to upsert %d protocol(s): %v", len(protocols), err)
				// Retry the same window next tick.
				continue
			}

			lastSyncTime = logTime
			log.Printf("✅ Synced TVL for %d protocol(s).", len(protocols))
		}
	}
}
