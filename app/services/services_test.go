package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"aparecida-web/app/database"
	"aparecida-web/app/dates"
	"aparecida-web/app/models"
	"aparecida-web/app/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	raw, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { raw.Close() })

	db := database.New(raw, "sqlite")
	require.NoError(t, database.RunMigrations(db))
	return db
}

func TestSiteSettingsCacheIsInvalidatedOnSave(t *testing.T) {
	ctx := context.Background()
	svc := NewSiteSettings(openTestDB(t), time.Minute)

	s, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSiteSettings().ChurchName, s.ChurchName)
	assert.Empty(t, s.HeroImageURL)

	s.HeroImagePath = "settings/hero-1.png"
	s.Phone = "(11) 4002-8922"
	require.NoError(t, svc.Save(ctx, &s))
	assert.Equal(t, "/uploads/settings/hero-1.png", s.HeroImageURL)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "(11) 4002-8922", got.Phone)
	assert.Equal(t, "/uploads/settings/hero-1.png", got.HeroImageURL)
}

func TestSanitizeCEP(t *testing.T) {
	got, err := SanitizeCEP("01310-100")
	require.NoError(t, err)
	assert.Equal(t, "01310100", got)

	for _, bad := range []string{"", "1234567", "123456789", "abcdefgh"} {
		_, err := SanitizeCEP(bad)
		assert.ErrorIs(t, err, ErrInvalidCEP, bad)
	}
}

func TestCEPLookup(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/01310100/json/":
			w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
		case "/99999999/json/":
			w.Write([]byte(`{"erro": "true"}`))
		case "/11111111/json/":
			w.Write([]byte(`<html>manutenção</html>`))
		case "/22222222/json/":
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	c := NewCEPClient(srv.URL+"/", time.Second)
	ctx := context.Background()

	addr, err := c.Lookup(ctx, "01310-100")
	require.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", addr.Street)
	assert.Equal(t, "Avenida Paulista, Bela Vista, São Paulo/SP", addr.Line())

	_, err = c.Lookup(ctx, "01310100")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	_, err = c.Lookup(ctx, "99999-999")
	assert.ErrorIs(t, err, ErrCEPNotFound)

	_, err = c.Lookup(ctx, "00000-000")
	assert.ErrorIs(t, err, ErrCEPNotFound)

	for _, cep := range []string{"11111111", "22222222"} {
		_, err = c.Lookup(ctx, cep)
		require.Error(t, err, cep)
		assert.NotErrorIs(t, err, ErrCEPNotFound, cep)
	}

	_, err = c.Lookup(ctx, "12")
	assert.ErrorIs(t, err, ErrInvalidCEP)
}

func newJobs(t *testing.T) (*Jobs, *storage.Store) {
	t.Helper()
	store := storage.NewMemory()
	return &Jobs{Settings: NewSiteSettings(openTestDB(t), time.Minute), Store: store}, store
}

func TestPruneBannersKeepsCurrentBanner(t *testing.T) {
	ctx := context.Background()
	jobs, store := newJobs(t)

	for _, p := range []string{"settings/hero-1.png", "settings/hero-2.png", "other/keep.txt"} {
		_, err := store.Upload(ctx, p, strings.NewReader("x"))
		require.NoError(t, err)
	}
	s, err := jobs.Settings.Get(ctx)
	require.NoError(t, err)
	s.HeroImagePath = "settings/hero-2.png"
	require.NoError(t, jobs.Settings.Save(ctx, &s))

	removed, err := jobs.PruneBanners(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"settings/hero-1.png"}, removed)

	left, err := store.List("settings")
	require.NoError(t, err)
	assert.Equal(t, []string{"settings/hero-2.png"}, left)

	other, err := store.List("other")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestPruneBannersKeepsFreshUploads(t *testing.T) {
	ctx := context.Background()
	jobs, store := newJobs(t)
	now := time.Date(2024, 5, 20, 3, 0, 0, 0, time.UTC)

	fresh := fmt.Sprintf("settings/hero-%d.jpg", now.Add(-time.Minute).Unix())
	stale := fmt.Sprintf("settings/hero-%d.jpg", now.Add(-time.Hour).Unix())
	for _, p := range []string{fresh, stale} {
		_, err := store.Upload(ctx, p, strings.NewReader("x"))
		require.NoError(t, err)
	}

	removed, err := jobs.PruneBanners(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []string{stale}, removed)

	left, err := store.List("settings")
	require.NoError(t, err)
	assert.Equal(t, []string{fresh}, left)

	removed, err = jobs.PruneBanners(ctx, now.Add(bannerGrace))
	require.NoError(t, err)
	assert.Equal(t, []string{fresh}, removed)
}

func TestBannerStamp(t *testing.T) {
	at, ok := bannerStamp("settings/hero-1716174000.webp")
	require.True(t, ok)
	assert.Equal(t, int64(1716174000), at.Unix())

	for _, p := range []string{"settings/hero-old.png", "settings/logo-1.png", "settings/hero-.png"} {
		_, ok := bannerStamp(p)
		assert.False(t, ok, p)
	}
}

func TestSiteNowUsesParishZone(t *testing.T) {
	prev := dates.Location
	zone := time.FixedZone("BRT", -3*60*60)
	dates.Location = zone
	t.Cleanup(func() { dates.Location = prev })

	assert.Equal(t, zone, siteNow().Location())
}

func TestSchedulerRunsAtHourAndStops(t *testing.T) {
	jobs, store := newJobs(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	_, err := store.Upload(ctx, "settings/hero-old.png", strings.NewReader("x"))
	require.NoError(t, err)

	at3 := func() time.Time { return time.Date(2024, 5, 20, 3, 0, 0, 0, time.UTC) }
	done := startScheduler(ctx, jobs, 3, 5*time.Millisecond, at3)

	require.Eventually(t, func() bool {
		files, err := store.List("settings")
		return err == nil && len(files) == 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestSchedulerSkipsOtherHours(t *testing.T) {
	jobs, store := newJobs(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	_, err := store.Upload(ctx, "settings/hero-old.png", strings.NewReader("x"))
	require.NoError(t, err)

	at10 := func() time.Time { return time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC) }
	done := startScheduler(ctx, jobs, 3, time.Millisecond, at10)
	time.Sleep(30 * time.Millisecond)
	cancel()
	<-done

	files, err := store.List("settings")
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
