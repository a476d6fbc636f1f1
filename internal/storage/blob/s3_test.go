package blob

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	got  *s3.PutObjectInput
	body string
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.got = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Put(t *testing.T) {
	p := &fakePutter{}
	store := NewS3Store(p, "developer-portfolio", "us-east-1", "")

	err := store.Put(context.Background(), "u1/shot.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "developer-portfolio", aws.ToString(p.got.Bucket))
	assert.Equal(t, "u1/shot.png", aws.ToString(p.got.Key))
	assert.Equal(t, "image/png", aws.ToString(p.got.ContentType))
	assert.Equal(t, int64(9), aws.ToInt64(p.got.ContentLength))
	assert.Equal(t, "png-bytes", p.body)

	p.err = errors.New("access denied")
	err = store.Put(context.Background(), "u1/shot.png", strings.NewReader("x"), 1, "")
	assert.ErrorContains(t, err, "access denied")
}

func TestS3Store_PublicURL(t *testing.T) {
	store := NewS3Store(&fakePutter{}, "developer-portfolio", "eu-west-1", "")
	assert.Equal(t, "https://developer-portfolio.s3.eu-west-1.amazonaws.com/u1/a%20b.png", store.PublicURL("u1/a b.png"))

	store = NewS3Store(&fakePutter{}, "developer-portfolio", "eu-west-1", "https://cdn.example.com/portfolio/")
	assert.Equal(t, "https://cdn.example.com/portfolio/u1/x.png", store.PublicURL("u1/x.png"))
}

func TestObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	key := ObjectKey("user-1", "Screen Shot.PNG", now)
	assert.Regexp(t, regexp.MustCompile(`^user-1/1700000000123-[0-9a-f]{8}\.png$`), key)

	assert.NotEqual(t, key, ObjectKey("user-1", "Screen Shot.PNG", now))
	assert.Regexp(t, `^1700000000123-[0-9a-f]{8}\.bin$`, ObjectKey("", "noext", now))
}
