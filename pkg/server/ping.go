package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
)

// pingTimeout bounds how long PingUntil waits for the api to come up
var pingTimeout = time.Minute

// PingUntil polls the ping endpoint until it answers, then calls callback once.
func PingUntil(ctx context.Context, baseURL string, callback func()) {
	pingURL := baseURL + "/api/ping"

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	policy := backoff.NewConstantBackOff(time.Second)
	op := func() error {
		var response map[string]interface{}
		return getJSON(ctx, pingURL, &response)
	}

	if err := backoff.Retry(op, backoff.WithContext(policy, ctx)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warnf("ping hits %s timeout", pingTimeout)
		}
		return
	}

	callback()
}

func getJSON(ctx context.Context, url string, data interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %s from %s", resp.Status, url)
	}

	return json.NewDecoder(resp.Body).Decode(data)
}
