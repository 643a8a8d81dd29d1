package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/postguard/internal/common"
	"github.com/dmitrijs2005/postguard/internal/logging"
	sc "github.com/dmitrijs2005/postguard/internal/server/config"
	"github.com/dmitrijs2005/postguard/internal/server/models"
	"github.com/dmitrijs2005/postguard/internal/server/sessions"
	"github.com/jonboulle/clockwork"
)

const exportLinkValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return s3.NewPresignClient(c).PresignGetObject(ctx, in, optFns...)
	}
)

type ExportResult struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}

type exportedPost struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	PostedAt  time.Time `json:"posted_at"`
	Sentiment string    `json:"sentiment"`
	Relevance string    `json:"relevance"`
}

type exportDocument struct {
	Email         string         `json:"email"`
	ExportedAt    time.Time      `json:"exported_at"`
	PositiveCount int            `json:"positive_count"`
	NegativeCount int            `json:"negative_count"`
	Posts         []exportedPost `json:"posts"`
}

// ExportService uploads an account's history to S3-compatible storage and
// hands back a presigned download link.
type ExportService struct {
	registry *sessions.Registry
	config   *sc.Config
	clock    clockwork.Clock
	logger   logging.Logger
}

func NewExportService(reg *sessions.Registry, cfg *sc.Config, clock clockwork.Clock, l logging.Logger) *ExportService {
	return &ExportService{registry: reg, config: cfg, clock: clock, logger: l.With("module", "export")}
}

func (s *ExportService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

func exportKey(accountID string, at time.Time) string {
	return fmt.Sprintf("exports/%s/%d.json", accountID, at.Unix())
}

// Export writes the session's history as JSON and returns a GET link valid
// for fifteen minutes. It fails with common.ErrExportDisabled when no bucket
// is configured.
func (s *ExportService) Export(ctx context.Context, sessionID string) (*ExportResult, error) {
	if !s.config.ExportEnabled() {
		return nil, common.ErrExportDisabled
	}

	var snapshot *models.Session
	err := s.registry.Do(sessionID, func(sess *models.Session) error {
		snapshot = sess.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	doc := exportDocument{
		Email:         snapshot.Email,
		ExportedAt:    now,
		PositiveCount: snapshot.PositiveCount,
		NegativeCount: snapshot.NegativeCount,
		Posts:         make([]exportedPost, 0, len(snapshot.History)),
	}
	for _, p := range snapshot.History {
		doc.Posts = append(doc.Posts, exportedPost{
			ID:        p.ID,
			Text:      p.Text,
			PostedAt:  p.PostedAt,
			Sentiment: string(p.Sentiment),
			Relevance: string(p.Relevance),
		})
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating s3 client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := exportKey(snapshot.AccountID, now)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("error uploading export: %w", err)
	}

	req, err := presignGetObject(client, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(exportLinkValidity))
	if err != nil {
		return nil, fmt.Errorf("error presigning export: %w", err)
	}

	s.logger.Info(ctx, "history exported", "email", snapshot.Email, "key", key, "posts", len(doc.Posts))
	return &ExportResult{Key: key, URL: req.URL, ExpiresAt: now.Add(exportLinkValidity)}, nil
}
