package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMinioClient struct {
	mock.Mock
}

func (m *mockMinioClient) PutObject(ctx context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(bucket, object, size, opts.ContentType)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *mockMinioClient) GetObject(ctx context.Context, bucket, object string, opts minio.GetObjectOptions) (*minio.Object, error) {
	args := m.Called(bucket, object)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*minio.Object), args.Error(1)
}

func (m *mockMinioClient) StatObject(ctx context.Context, bucket, object string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(bucket, object)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

func (m *mockMinioClient) RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error {
	args := m.Called(bucket, object)
	return args.Error(0)
}

func (m *mockMinioClient) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	args := m.Called(bucket, opts.Prefix)
	return args.Get(0).(<-chan minio.ObjectInfo)
}

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

var noSuchKey = minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}

func TestMinioWrite(t *testing.T) {
	client := new(mockMinioClient)
	store := NewMinioWithClient(client, "photos", "")

	client.On("PutObject", "photos", "a.png", int64(-1), "image/png").Return(minio.UploadInfo{}, nil)

	loc, err := store.Write(context.Background(), "a.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "s3://photos/a.png", loc)

	_, err = store.Write(context.Background(), "../a.png", strings.NewReader("png"))
	assert.ErrorIs(t, err, ErrInvalidName)
	client.AssertNumberOfCalls(t, "PutObject", 1)
}

func TestMinioExistsAndDelete(t *testing.T) {
	ctx := context.Background()
	client := new(mockMinioClient)
	store := NewMinioWithClient(client, "photos", "p")

	client.On("StatObject", "photos", "p/here.jpg").Return(minio.ObjectInfo{Key: "p/here.jpg"}, nil)
	client.On("StatObject", "photos", "p/gone.jpg").Return(minio.ObjectInfo{}, noSuchKey)
	client.On("StatObject", "photos", "p/broken.jpg").Return(minio.ObjectInfo{}, errors.New("connection refused"))
	client.On("RemoveObject", "photos", "p/here.jpg").Return(nil)

	ok, err := store.Exists(ctx, "gone.jpg")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Exists(ctx, "broken.jpg")
	assert.Error(t, err)

	removed, err := store.Delete(ctx, "here.jpg")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Delete(ctx, "gone.jpg")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = store.Open(ctx, "gone.jpg")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestMinioList(t *testing.T) {
	client := new(mockMinioClient)
	store := NewMinioWithClient(client, "photos", "p")

	client.On("ListObjects", "photos", "p/").Return(objects(
		minio.ObjectInfo{Key: "p/b.jpg"},
		minio.ObjectInfo{Key: "p/a.jpg"},
	))

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, names)
}

func TestMinioListError(t *testing.T) {
	client := new(mockMinioClient)
	store := NewMinioWithClient(client, "photos", "")

	client.On("ListObjects", "photos", "").Return(objects(minio.ObjectInfo{Err: errors.New("denied")}))

	_, err := store.List(context.Background())
	assert.ErrorContains(t, err, "denied")
}
