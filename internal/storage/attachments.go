package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tasklet/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Presigner is the subset of the S3 presign client the attachment
// store uses.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

var _ Presigner = (*s3.PresignClient)(nil)

// AttachmentStore issues time-limited upload URLs for item attachments
// and derives their public object URLs. Objects are keyed by the item
// identifier; ownership is not checked here but by the caller setting
// the attachment reference through the owner-scoped repository.
type AttachmentStore struct {
	presigner Presigner
	bucket    string
	ttl       time.Duration
	logger    *slog.Logger
}

func NewAttachmentStore(presigner Presigner, bucket string, ttl time.Duration, logger *slog.Logger) *AttachmentStore {
	return &AttachmentStore{
		presigner: presigner,
		bucket:    bucket,
		ttl:       ttl,
		logger:    logger,
	}
}

// PresignUpload returns a signed URL permitting a single PUT of the
// attachment object for todoID, valid for the configured duration.
func (s *AttachmentStore) PresignUpload(ctx context.Context, todoID string) (string, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(todoID),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		s.logger.Error("upload url presign failed", "todo_id", todoID, "error", err)
		return "", fmt.Errorf("%w: presign upload: %v", domain.ErrStorageUnavailable, err)
	}

	s.logger.Info("upload url generated", "todo_id", todoID, "expires_in", s.ttl)
	return req.URL, nil
}

// ObjectURL returns the deterministic public URL of the attachment
// object for todoID.
func (s *AttachmentStore) ObjectURL(todoID string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, todoID)
}
