package summary

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"testing"
	"time"

	"country-exchange/core/storage/mocks"
	"country-exchange/feature/countries/models"

	"github.com/minio/minio-go/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func gdp(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestFormatGDP(t *testing.T) {
	tests := []struct {
		in   decimal.NullDecimal
		want string
	}{
		{decimal.NullDecimal{}, "N/A"},
		{gdp("0"), "$0.00"},
		{gdp("999.5"), "$999.50"},
		{gdp("1000"), "$1,000.00"},
		{gdp("128818725.43"), "$128,818,725.43"},
		{gdp("-1234567.891"), "-$1,234,567.89"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatGDP(tt.in))
	}
}

func TestPNGRenderer_Render(t *testing.T) {
	r := NewPNGRenderer(Config{})
	ts := time.Date(2025, 10, 22, 18, 0, 0, 0, time.UTC)

	data, err := r.Render(Summary{
		TotalCountries: 250,
		Top: []models.Country{
			{Name: "Germany", EstimatedGDP: gdp("135000000000.55")},
			{Name: "Atlantis"},
		},
		LastRefreshedAt: &ts,
	})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
	assert.Equal(t, "image/png", r.ContentType())
}

func TestPNGRenderer_EmptySummary(t *testing.T) {
	data, err := NewPNGRenderer(Config{Width: 320, Height: 240, TopN: 3}).Render(Summary{})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
}

func TestBucketStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Put", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PutObject", ctx, "bucket", "summary.png", mock.Anything, int64(3),
			minio.PutObjectOptions{ContentType: "image/png"}).Return(minio.UploadInfo{}, nil)

		s := NewBucketStore(client, "bucket", "summary.png")
		require.NoError(t, s.Put(ctx, []byte("png"), "image/png"))
		client.AssertExpectations(t)
	})

	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", ctx, "bucket", "summary.png", mock.Anything).Return(minio.ObjectInfo{Key: "summary.png"}, nil)

		ok, err := NewBucketStore(client, "bucket", "summary.png").Exists(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", ctx, "bucket", "summary.png", mock.Anything).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})

		ok, err := NewBucketStore(client, "bucket", "summary.png").Exists(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Stat Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", ctx, "bucket", "summary.png", mock.Anything).
			Return(minio.ObjectInfo{}, errors.New("connection reset"))

		_, err := NewBucketStore(client, "bucket", "summary.png").Exists(ctx)
		assert.Error(t, err)
	})

	t.Run("Get", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", ctx, "bucket", "summary.png", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("png-bytes"))), nil)

		data, err := NewBucketStore(client, "bucket", "summary.png").Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)
	})

	t.Run("Get Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", ctx, "bucket", "summary.png", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		_, err := NewBucketStore(client, "bucket", "summary.png").Get(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	ok, err := s.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, []byte("a"), "image/png"))
	require.NoError(t, s.Put(ctx, []byte("b"), "image/png"))

	data, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), data)
}

type fakeSource struct {
	total int64
	top   []models.Country
	last  *time.Time
	err   error
	topN  int
}

func (f *fakeSource) Count(context.Context) (int64, error) { return f.total, f.err }
func (f *fakeSource) TopByGDP(_ context.Context, n int) ([]models.Country, error) {
	f.topN = n
	return f.top, nil
}
func (f *fakeSource) MaxTimestamp(context.Context) (*time.Time, error) { return f.last, nil }

type failingRenderer struct{}

func (failingRenderer) Render(Summary) ([]byte, error) { return nil, errors.New("no font") }
func (failingRenderer) ContentType() string            { return "image/png" }

func TestTrigger_Run(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 10, 22, 18, 0, 0, 0, time.UTC)
	src := &fakeSource{total: 2, top: []models.Country{{Name: "Ghana", EstimatedGDP: gdp("10")}}, last: &ts}
	artifacts := NewMemoryStore()

	trig := NewTrigger(src, NewPNGRenderer(Config{}), artifacts, Config{TopN: 3}, zap.NewNop())
	assert.True(t, trig.Run(ctx))
	assert.Equal(t, 3, src.topN)

	ok, err := artifacts.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTrigger_RunSwallowsFailures(t *testing.T) {
	ctx := context.Background()

	artifacts := NewMemoryStore()
	trig := NewTrigger(&fakeSource{}, failingRenderer{}, artifacts, Config{}, zap.NewNop())
	assert.False(t, trig.Run(ctx))

	ok, _ := artifacts.Exists(ctx)
	assert.False(t, ok)

	trig = NewTrigger(&fakeSource{err: errors.New("db gone")}, NewPNGRenderer(Config{}), artifacts, Config{}, zap.NewNop())
	assert.False(t, trig.Run(ctx))
	assert.ErrorContains(t, trig.Generate(ctx), "db gone")
}

func TestConfig_Timeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, Config{}.Timeout())
	assert.Equal(t, time.Second, Config{TimeoutSeconds: 1}.Timeout())
}
