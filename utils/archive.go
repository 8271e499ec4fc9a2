// utils/archive.go
package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"protocol-wars-engine/models"
)

// ReportArchive persists battle reports to R2 so players can replay old
// battles and support can audit disputed outcomes.
type ReportArchive struct {
	client *s3.Client
	bucket string
}

// NewReportArchive builds an archive from the R2 env vars. Returns nil
// (archival disabled) when CLOUDFLARE_ACCOUNT_ID is unset.
func NewReportArchive() (*ReportArchive, error) {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	if accountID == "" {
		log.Println("ℹ️ R2 not configured, battle report archival disabled")
		return nil, nil
	}
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_ACCESS_KEY_SECRET")
	bucket := os.Getenv("R2_BUCKET_NAME")
	if bucket == "" {
		return nil, fmt.Errorf("R2_BUCKET_NAME is required when CLOUDFLARE_ACCOUNT_ID is set")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
				}, nil
			}),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	return &ReportArchive{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// StoreBattleReport writes the full report as JSON under
// battles/<playerID>/<recordID>.json.
func (a *ReportArchive) StoreBattleReport(playerID string, report models.BattleReport) error {
	if a == nil {
		return nil
	}

	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode battle report: %w", err)
	}

	key := fmt.Sprintf("battles/%s/%s.json", playerID, report.Record.ID)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload battle report: %w", err)
	}
	return nil
}
