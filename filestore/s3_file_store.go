package filestore

import (
	"io"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3FileStore struct {
	bucket   string
	uploader *s3manager.Uploader
	svc      *s3.S3

	// publicUrlPrefix is prepended to keys by PublicUrl, typically a CDN
	// distribution in front of the bucket. When empty, the plain bucket
	// endpoint is used.
	publicUrlPrefix string
}

func NewS3FileStore(bucket string, publicUrlPrefix string) (*S3FileStore, error) {
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String("us-west-1"),
	})
	if err != nil {
		return nil, err
	}

	return &S3FileStore{
		bucket:          bucket,
		uploader:        s3manager.NewUploader(sess),
		svc:             s3.New(session.Must(sess, err)),
		publicUrlPrefix: publicUrlPrefix,
	}, nil
}

func (s *S3FileStore) Store(key string, body io.Reader, contentType string) error {
	_, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *S3FileStore) PublicUrl(key string) string {
	if s.publicUrlPrefix != "" {
		return s.publicUrlPrefix + key
	}
	return "https://" + s.bucket + ".s3.amazonaws.com/" + key
}

func (s *S3FileStore) SignedUrl(key string, ttl time.Duration) (string, error) {
	req, _ := s.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return req.Presign(ttl)
}

func (s *S3FileStore) CleanUp() {
	// do nothing for s3
}
