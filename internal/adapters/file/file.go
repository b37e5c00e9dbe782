package file

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"pixbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// MaxDownloadBytes caps a single download, Telegram bots cannot fetch files above 20 MB anyway.
const MaxDownloadBytes = 20 << 20

// DownloadFile returns the byte content of a file on a provided URL.
func DownloadFile(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		err = fmt.Errorf("error creating request %w", err)
		log.Error().Err(err).Send()
		return nil, err
	}

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		err = fmt.Errorf("error executing request %w", err)
		log.Error().Err(err).Send()
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}

	if res.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected status code on download: %d", res.StatusCode)
		log.Error().Err(err).Send()
		return nil, err
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, MaxDownloadBytes+1))
	if err != nil {
		err = fmt.Errorf("error reading response %w", err)
		log.Error().Err(err).Send()
		return nil, err
	}

	if len(buf) > MaxDownloadBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrDecode, MaxDownloadBytes)
	}

	log.Debug().Int("bytes", len(buf)).Msg("downloaded file")

	return buf, nil
}
