package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	puts    []string
	deletes []string
	body    string
	putErr  error
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	f.puts = append(f.puts, *in.Key)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage_UploadAndDelete(t *testing.T) {
	objects := &fakeObjects{}
	s := newS3Storage(objects, "media", "eu-west-1", "https://cdn.test/")

	url, err := s.Upload(context.Background(), "products", "Cover.PNG", "image/png", strings.NewReader("png"), 3)
	require.NoError(t, err)
	require.Len(t, objects.puts, 1)
	assert.True(t, strings.HasPrefix(objects.puts[0], "products/"))
	assert.True(t, strings.HasSuffix(objects.puts[0], ".png"))
	assert.Equal(t, "https://cdn.test/"+objects.puts[0], url)
	assert.Equal(t, "png", objects.body)

	assert.True(t, s.IsManagedURL(url))
	require.NoError(t, s.Delete(context.Background(), url))
	assert.Equal(t, objects.puts, objects.deletes)
}

func TestS3Storage_UploadFailure(t *testing.T) {
	s := newS3Storage(&fakeObjects{putErr: errors.New("denied")}, "media", "eu-west-1", "")
	_, err := s.Upload(context.Background(), "users", "a.jpg", "image/jpeg", strings.NewReader("x"), 1)
	assert.Error(t, err)
}

func TestS3Storage_IsManagedURL(t *testing.T) {
	direct := newS3Storage(&fakeObjects{}, "media", "eu-west-1", "")
	assert.True(t, direct.IsManagedURL("https://media.s3.eu-west-1.amazonaws.com/users/a.png"))
	assert.False(t, direct.IsManagedURL("https://elsewhere.test/users/a.png"))
	assert.False(t, direct.IsManagedURL("not a url"))
	assert.False(t, direct.IsManagedURL(""))

	prefixed := newS3Storage(&fakeObjects{}, "media", "eu-west-1", "https://cdn.test/critics")
	assert.True(t, prefixed.IsManagedURL("https://cdn.test/critics/products/a.gif"))
	assert.False(t, prefixed.IsManagedURL("https://cdn.test/other/products/a.gif"))

	assert.ErrorIs(t, prefixed.Delete(context.Background(), "https://elsewhere.test/a.png"), ErrNotManaged)
}

func TestValidateImage(t *testing.T) {
	const max = 2048 * 1024

	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		wantErr     error
	}{
		{"Jpeg", "a.jpeg", "image/jpeg", 100, nil},
		{"Jpg upper case", "A.JPG", "image/jpeg", 100, nil},
		{"Png with params", "a.png", "image/png; charset=binary", 100, nil},
		{"Gif", "a.gif", "image/gif", max, nil},
		{"Too large", "a.gif", "image/gif", max + 1, ErrImageTooLarge},
		{"Webp", "a.webp", "image/webp", 100, ErrUnsupportedImageType},
		{"Mismatched type", "a.png", "text/plain", 100, ErrUnsupportedImageType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(tt.filename, tt.contentType, tt.size, max)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
