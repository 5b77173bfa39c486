package bom

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/bomlens/bomlens/internal/utils"
)

// LoadSources reads each location into a Source. Locations starting with
// http:// or https:// are fetched over the network with bounded retries;
// everything else is read from disk.
func LoadSources(locations []string) ([]Source, error) {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = log.New(io.Discard, "", 0)
	retryClient.RetryMax = 5

	var sources []Source
	for _, loc := range locations {
		var data []byte
		var err error

		if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
			data, err = fetchURL(retryClient, loc)
		} else {
			data, err = os.ReadFile(loc)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", loc, err)
		}

		utils.Log.Debugf("loaded %s (%d bytes)", loc, len(data))
		sources = append(sources, Source{Name: loc, Data: data})
	}
	return sources, nil
}

func fetchURL(client *retryablehttp.Client, url string) ([]byte, error) {
	res, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return io.ReadAll(res.Body)
}
