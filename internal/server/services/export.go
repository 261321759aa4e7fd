package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/oklog/ulid/v2"

	"github.com/dmitrijs2005/echojournal/internal/journal"
	"github.com/dmitrijs2005/echojournal/internal/logging"
	sc "github.com/dmitrijs2005/echojournal/internal/server/config"
)

// ErrExportDisabled is returned when exports are not configured.
var ErrExportDisabled = errors.New("export is not configured")

const presignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	newExportID = func() string { return ulid.Make().String() }
)

// Export is the document written to object storage.
type Export struct {
	UserID     string                 `json:"userId"`
	ExportedAt time.Time              `json:"exportedAt"`
	Entries    []journal.JournalEntry `json:"entries"`
}

// ExportResult locates a finished export.
type ExportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ExportService writes a user's journal to S3-compatible storage and hands
// out a presigned download link.
type ExportService struct {
	store  journal.Store
	config *sc.Config
	logger logging.Logger
	now    func() time.Time
}

func NewExportService(store journal.Store, config *sc.Config, logger logging.Logger) *ExportService {
	return &ExportService{
		store:  store,
		config: config,
		logger: logger.With("module", "export"),
		now:    time.Now,
	}
}

// ExportKey is the object key of an export.
func ExportKey(userID, id string) string {
	return fmt.Sprintf("exports/%s/%s.json", url.PathEscape(userID), id)
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

// Export uploads all entries of userID and returns the object key and a
// presigned GET URL.
func (s *ExportService) Export(ctx context.Context, userID string) (ExportResult, error) {
	if !s.config.ExportEnabled {
		return ExportResult{}, ErrExportDisabled
	}

	all, err := s.store.GetEntries(ctx, userID)
	if err != nil {
		return ExportResult{}, err
	}

	body, err := json.MarshalIndent(Export{UserID: userID, ExportedAt: s.now().UTC(), Entries: all}, "", "  ")
	if err != nil {
		return ExportResult{}, err
	}

	client, err := s.getClient(ctx)
	if err != nil {
		s.logger.Error(ctx, "s3 client failed", "error", err)
		return ExportResult{}, unavailable(err)
	}

	bucket := s.config.S3Bucket
	key := ExportKey(userID, newExportID())

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		s.logger.Error(ctx, "export upload failed", "key", key, "error", err)
		return ExportResult{}, unavailable(err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		s.logger.Error(ctx, "presign failed", "key", key, "error", err)
		return ExportResult{}, unavailable(err)
	}

	s.logger.Info(ctx, "journal exported", "user_id", userID, "key", key, "entries", len(all))
	return ExportResult{Key: key, URL: req.URL}, nil
}
