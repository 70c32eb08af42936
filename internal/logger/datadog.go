package logger

import (
	"context"
	"os"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

const (
	defaultDataDogTimeout   = 5 * time.Second
	defaultDataDogQueueSize = 1024
	submitLogOperation      = "v2.LogsApi.SubmitLog"
)

// DataDogWriter ships every log line to the Datadog logs intake from a
// background goroutine. Lines are dropped when the queue is full so logging
// never blocks a request.
type DataDogWriter struct {
	api     *datadogV2.LogsApi
	ctx     context.Context //nolint:containedctx
	cfg     DataDog
	service string
	host    string
	queue   chan []byte
}

// NewDataDogWriter starts the shipping goroutine and returns the writer.
func NewDataDogWriter(cfg DataDog, service string) *DataDogWriter {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultDataDogTimeout
	}

	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultDataDogQueueSize
	}

	if cfg.ServiceName != "" {
		service = cfg.ServiceName
	}

	configuration := datadog.NewConfiguration()
	if len(cfg.Servers) > 0 {
		configuration.OperationServers[submitLogOperation] = cfg.Servers
	}

	ctx := context.WithValue(context.Background(), datadog.ContextAPIKeys, map[string]datadog.APIKey{
		"apiKeyAuth": {Key: cfg.APIKey},
	})

	if cfg.Site != "" {
		ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{"site": cfg.Site})
	}

	host, _ := os.Hostname()

	w := &DataDogWriter{
		api:     datadogV2.NewLogsApi(datadog.NewAPIClient(configuration)),
		ctx:     ctx,
		cfg:     cfg,
		service: service,
		host:    host,
		queue:   make(chan []byte, cfg.QueueSize),
	}

	go w.run()

	return w
}

// Write queues a copy of p. It never blocks.
func (w *DataDogWriter) Write(p []byte) (int, error) {
	line := make([]byte, len(p))
	copy(line, p)

	select {
	case w.queue <- line:
	default:
		ErrorHandler(errDataDogQueueFull)
	}

	return len(p), nil
}

func (w *DataDogWriter) run() {
	for line := range w.queue {
		item := datadogV2.HTTPLogItem{
			Ddsource: datadog.PtrString("adcu-admin"),
			Hostname: datadog.PtrString(w.host),
			Message:  string(line),
			Service:  datadog.PtrString(w.service),
		}

		if w.cfg.Tags != "" {
			item.Ddtags = datadog.PtrString(w.cfg.Tags)
		}

		ctx, cancel := context.WithTimeout(w.ctx, w.cfg.Timeout)
		_, _, err := w.api.SubmitLog(ctx, []datadogV2.HTTPLogItem{item}, *datadogV2.NewSubmitLogOptionalParameters())

		cancel()

		if err != nil {
			ErrorHandler(err)
		}
	}
}
