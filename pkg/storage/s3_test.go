package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockS3Client struct {
	mock.Mock
}

func (m *mockS3Client) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *mockS3Client) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *mockS3Client) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *mockS3Client) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func (m *mockS3Client) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}

func keyIs(key string) interface{} {
	return mock.MatchedBy(func(in interface{}) bool {
		switch v := in.(type) {
		case *s3.PutObjectInput:
			return aws.ToString(v.Key) == key
		case *s3.HeadObjectInput:
			return aws.ToString(v.Key) == key
		case *s3.GetObjectInput:
			return aws.ToString(v.Key) == key
		case *s3.DeleteObjectInput:
			return aws.ToString(v.Key) == key
		}
		return false
	})
}

func TestS3Write(t *testing.T) {
	client := new(mockS3Client)
	store := NewS3WithClient(client, "photos", "/uploads/")

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return aws.ToString(in.Bucket) == "photos" &&
			aws.ToString(in.Key) == "uploads/a.jpg" &&
			aws.ToString(in.ContentType) == "image/jpeg" &&
			string(body) == "bytes"
	})).Return(&s3.PutObjectOutput{}, nil)

	// A non-seekable reader is buffered before upload.
	loc, err := store.Write(context.Background(), "a.jpg", io.MultiReader(strings.NewReader("bytes")))
	require.NoError(t, err)
	assert.Equal(t, "s3://photos/uploads/a.jpg", loc)
	client.AssertExpectations(t)
}

func TestS3WriteFailure(t *testing.T) {
	client := new(mockS3Client)
	store := NewS3WithClient(client, "photos", "")
	client.On("PutObject", mock.Anything, keyIs("a.jpg")).Return(nil, errors.New("unavailable"))

	_, err := store.Write(context.Background(), "a.jpg", strings.NewReader("bytes"))
	assert.ErrorContains(t, err, "unavailable")
}

func TestS3ExistsAndDelete(t *testing.T) {
	ctx := context.Background()
	client := new(mockS3Client)
	store := NewS3WithClient(client, "photos", "")

	client.On("HeadObject", mock.Anything, keyIs("here.jpg")).Return(&s3.HeadObjectOutput{}, nil)
	client.On("HeadObject", mock.Anything, keyIs("gone.jpg")).Return(nil, &types.NotFound{})
	client.On("DeleteObject", mock.Anything, keyIs("here.jpg")).Return(&s3.DeleteObjectOutput{}, nil)

	ok, err := store.Exists(ctx, "gone.jpg")
	require.NoError(t, err)
	assert.False(t, ok)

	removed, err := store.Delete(ctx, "gone.jpg")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = store.Delete(ctx, "here.jpg")
	require.NoError(t, err)
	assert.True(t, removed)
	client.AssertNumberOfCalls(t, "DeleteObject", 1)
}

func TestS3Open(t *testing.T) {
	ctx := context.Background()
	client := new(mockS3Client)
	store := NewS3WithClient(client, "photos", "")

	client.On("GetObject", mock.Anything, keyIs("a.jpg")).
		Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("bytes"))}, nil)
	client.On("GetObject", mock.Anything, keyIs("b.jpg")).Return(nil, &types.NoSuchKey{})

	rc, err := store.Open(ctx, "a.jpg")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "bytes", string(data))

	_, err = store.Open(ctx, "b.jpg")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestS3List(t *testing.T) {
	client := new(mockS3Client)
	store := NewS3WithClient(client, "photos", "uploads")

	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return in.ContinuationToken == nil
	})).Return(&s3.ListObjectsV2Output{
		Contents:              []types.Object{{Key: aws.String("uploads/b.jpg")}},
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("next"),
	}, nil)
	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.ContinuationToken) == "next"
	})).Return(&s3.ListObjectsV2Output{
		Contents: []types.Object{{Key: aws.String("uploads/a.jpg")}, {Key: aws.String("uploads/nested/c.jpg")}},
	}, nil)

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, names)
}
