package trips

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"veloviz.transitdata.no/internal/logging"
	"veloviz.transitdata.no/internal/utils"
)

// DefaultBaseURL is the upstream trip dump endpoint.
const DefaultBaseURL = "https://data.urbansharing.com/oslobysykkel.no/trips/v1"

// Downloader fetches monthly trip dumps into DataDir/<year>/<MM>.json. The
// loop is best-effort: months already on disk are skipped, failed months
// are logged and cleaned up, the batch never aborts.
type Downloader struct {
	BaseURL    string
	DataDir    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Run walks the published calendar, restricted to filter when non-nil.
// It returns how many months were fetched and how many failed.
func (d *Downloader) Run(ctx context.Context, filter *utils.YearMonth) (downloaded, failed int) {
	client := d.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	for _, ym := range Months() {
		if filter != nil && *filter != ym {
			continue
		}
		fetched, err := d.downloadMonth(ctx, client, ym)
		if err != nil {
			failed++
			logging.LogError(d.Logger, "month download failed", err,
				slog.String("month", ym.String()))
			continue
		}
		if fetched {
			downloaded++
		}
	}
	return downloaded, failed
}

// downloadMonth reports whether a fetch happened; an existing file short-
// circuits without touching the network.
func (d *Downloader) downloadMonth(ctx context.Context, client *http.Client, ym utils.YearMonth) (bool, error) {
	outPath := filepath.Join(d.DataDir, strconv.Itoa(ym.Year), fmt.Sprintf("%02d.json", ym.Month))
	if _, err := os.Stat(outPath); err == nil {
		d.Logger.Info("skip existing month", slog.String("path", outPath))
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return false, err
	}

	url := fmt.Sprintf("%s/%d/%02d.json", d.BaseURL, ym.Year, ym.Month)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer logging.SafeCloseWithLogging(resp.Body, d.Logger, "trip_download")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("HTTP %d: %s", resp.StatusCode, url)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return false, err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		// A partial file would poison the skip-if-exists check next run.
		_ = os.Remove(outPath)
		return false, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(outPath)
		return false, err
	}

	d.Logger.Info("downloaded month",
		slog.String("url", url),
		slog.String("path", outPath))
	return true, nil
}
