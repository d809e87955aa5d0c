package services

import (
	"context"
	"path"
	"strconv"
	"strings"
	"time"

	"aparecida-web/app/dates"
	"aparecida-web/app/logger"
	"aparecida-web/app/metrics"
	"aparecida-web/app/storage"

	"go.uber.org/zap"
)

const (
	// bannerPrefix is where uploaded hero banners are stored.
	bannerPrefix = "settings/"
	// bannerGrace keeps fresh uploads whose settings save may still be in
	// flight.
	bannerGrace = 15 * time.Minute
)

// bannerStamp reads the upload time from a settings/hero-<unix>.<ext> path.
func bannerStamp(p string) (time.Time, bool) {
	name := strings.TrimPrefix(path.Base(p), "hero-")
	if name == path.Base(p) {
		return time.Time{}, false
	}
	name = strings.TrimSuffix(name, path.Ext(name))
	secs, err := strconv.ParseInt(name, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0), true
}

// Jobs are the maintenance tasks run by the scheduler.
type Jobs struct {
	Settings *SiteSettings
	Store    *storage.Store
	Metrics  *metrics.Metrics
}

// PruneBanners removes uploaded banners that the site settings no longer
// point at and returns the removed paths. Banners stamped within bannerGrace
// of now are kept.
func (j *Jobs) PruneBanners(ctx context.Context, now time.Time) ([]string, error) {
	settings, err := j.Settings.Get(ctx)
	if err != nil {
		j.Metrics.Error("settings.get")
		return nil, err
	}
	files, err := j.Store.List(bannerPrefix)
	if err != nil {
		j.Metrics.Error("storage.list")
		return nil, err
	}

	current := strings.TrimPrefix(settings.HeroImagePath, "/")
	removed := []string{}
	for _, f := range files {
		if f == current {
			continue
		}
		if at, ok := bannerStamp(f); ok && now.Sub(at) < bannerGrace {
			continue
		}
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := j.Store.Delete(f); err != nil {
			j.Metrics.Error("storage.delete")
			return removed, err
		}
		removed = append(removed, f)
	}
	return removed, nil
}

// StartScheduler runs the daily jobs once per day at hour in the parish
// time zone, checking every minute, until ctx is cancelled. The returned
// channel closes when the loop has exited.
func StartScheduler(ctx context.Context, jobs *Jobs, hour int) <-chan struct{} {
	return startScheduler(ctx, jobs, hour, time.Minute, siteNow)
}

// siteNow is the current time in the parish time zone.
func siteNow() time.Time {
	return time.Now().In(dates.Location)
}

func startScheduler(ctx context.Context, jobs *Jobs, hour int, every time.Duration, now func() time.Time) <-chan struct{} {
	done := make(chan struct{})
	log := logger.Named("scheduler")

	go func() {
		defer close(done)
		log.Info("scheduler started", zap.Int("hour", hour))
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		lastRun := ""
		for {
			select {
			case <-ctx.Done():
				log.Info("scheduler stopped")
				return
			case <-ticker.C:
				t := now()
				day := t.Format("2006-01-02")
				if t.Hour() != hour || day == lastRun {
					continue
				}
				lastRun = day

				removed, err := jobs.PruneBanners(ctx, t)
				if err != nil {
					log.Error("banner cleanup failed", zap.Error(err))
					continue
				}
				log.Info("banner cleanup finished", zap.Strings("removed", removed))
			}
		}
	}()
	return done
}
