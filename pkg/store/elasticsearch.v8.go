package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/everhype/monthclose/pkg/domain"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/rs/zerolog"
)

const (
	esIndex = "monthclose"
	esFlush = 2048

	envEsAddr = "ELASTICSEARCH_SERVICE_HOST"
	envEsPort = "ELASTICSEARCH_SERVICE_PORT"
)

type ElasticsearchV8 struct {
	addresses []string
	log       zerolog.Logger
}

func NewElasticsearchV8(log zerolog.Logger, urls ...string) Store {
	if len(urls) == 0 {
		address := os.Getenv(envEsAddr)
		port := os.Getenv(envEsPort)
		if port == "" {
			port = "9200" // default port
		}
		if address == "" {
			address = "localhost" // default address
		}
		urls = []string{fmt.Sprintf("http://%s:%s", address, port)}
	}

	return &ElasticsearchV8{addresses: urls, log: log}
}

func (e *ElasticsearchV8) Write(txns []*domain.Transaction) error {
	retryBackoff := backoff.NewExponentialBackOff()

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: e.addresses,

		// Retry on 429 TooManyRequests statuses
		RetryOnStatus: []int{502, 503, 504, 429},

		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},

		MaxRetries: 5,
	})
	if err != nil {
		return err
	}

	// one worker; the run is sequential and order is worth keeping
	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         esIndex,
		FlushBytes:    esFlush,
		Client:        es,
		NumWorkers:    1,
		FlushInterval: 10 * time.Second,
	})
	if err != nil {
		return err
	}

	_, err = es.Indices.Create(esIndex)
	if err != nil {
		e.log.Debug().Err(err).Str("index", esIndex).Msg("attempted to create index")
	}

	for _, t := range txns {
		data, err := t.JSON()
		if err != nil {
			return err
		}

		err = bi.Add(
			context.Background(),
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: t.ID,
				Body:       bytes.NewReader(data),
				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					if err != nil {
						e.log.Error().Err(err).Msg("failed to index transaction")
					} else {
						e.log.Error().Str("type", res.Error.Type).Str("reason", res.Error.Reason).Msg("failed to index transaction")
					}
				},
			},
		)
		if err != nil {
			return err
		}
	}

	if err := bi.Close(context.Background()); err != nil {
		return err
	}

	stats := bi.Stats()
	if stats.NumFailed > 0 {
		return fmt.Errorf("failed indexing %d transactions", int64(stats.NumFailed))
	}

	e.log.Info().Uint64("indexed", stats.NumFlushed).Msg("archived transactions")
	return nil
}
