package sink

import (
	"bytes"
	"context"
	"image"
	"path"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// ObjectConfig addresses an S3 compatible bucket.
type ObjectConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// Object uploads PNG files into an S3 compatible bucket.
type Object struct {
	client *minio.Client
	bucket string
	region string
	prefix string

	mu    sync.Mutex
	ready bool
}

// NewObject validates cfg and creates the client. No request is made until
// the first Save.
func NewObject(cfg ObjectConfig) (*Object, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, errors.New("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "init s3 client")
	}
	return &Object{
		client: client,
		bucket: bucket,
		region: region,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// Key is the object key name is stored under.
func (o *Object) Key(name string) string {
	if o.prefix == "" {
		return name
	}
	return path.Join(o.prefix, name)
}

func (o *Object) ensureBucket(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ready {
		return nil
	}
	if err := o.checkBucket(ctx); err != nil {
		return err
	}
	o.ready = true
	return nil
}

func (o *Object) checkBucket(ctx context.Context) error {
	exists, err := o.client.BucketExists(ctx, o.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return o.client.MakeBucket(ctx, o.bucket, minio.MakeBucketOptions{Region: o.region})
}

// Save uploads img as a PNG object.
func (o *Object) Save(ctx context.Context, name string, img image.Image) error {
	if name == "" {
		return errors.New("object name is required")
	}
	data, err := encode(img)
	if err != nil {
		return err
	}
	if err := o.ensureBucket(ctx); err != nil {
		return errors.Wrapf(err, "ensure bucket %s", o.bucket)
	}
	_, err = o.client.PutObject(ctx, o.bucket, o.Key(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "image/png",
	})
	return errors.Wrapf(err, "uploading %s", o.Key(name))
}
