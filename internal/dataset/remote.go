package dataset

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"discovery-insights-go/internal/logger"
)

var httpClient = &http.Client{
	Timeout: 12 * time.Second,
}

// FetchRemote downloads a JSON corpus export from a URL, retrying
// transient failures with exponential backoff. Client errors (4xx) are
// permanent. Retrying lives here, on the caller side of the engine; the
// engine itself never retries.
func FetchRemote(url string, maxElapsed time.Duration) (Corpus, error) {
	log := logger.New().WithField("component", "dataset.remote").WithField("url", url)

	var body []byte
	op := func() error {
		resp, err := httpClient.Get(url)
		if err != nil {
			log.WithError(err).Warn("corpus fetch failed")
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(fmt.Errorf("corpus fetch: status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			log.WithField("status", resp.StatusCode).Warn("corpus fetch returned non-200")
			return fmt.Errorf("corpus fetch: status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read corpus body: %w", err)
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxElapsed
	if err := backoff.Retry(op, b); err != nil {
		return Corpus{}, err
	}

	log.WithField("bytes", len(body)).Info("corpus downloaded")
	return ParseJSON(body)
}
