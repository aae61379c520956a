package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

const metricsPrefix = "bloodlink_"

func metricsHandler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}

// serveMetrics exposes /metrics on addr until ctx is done. It returns the
// bound address, which differs from addr when addr asks for port 0.
func (a *App) serveMetrics(ctx context.Context, addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", err
	}
	srv := &http.Server{Handler: metricsHandler(a.gatherer), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		a.log.Info(ctx, "metrics HTTP server starting", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error(ctx, "metrics HTTP server error", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	return ln.Addr().String(), nil
}

// Metrics prints the client's own metric families in the text exposition
// format; an optional argument narrows them by name.
func (a *App) Metrics(_ context.Context, args []string) error {
	families, err := a.gatherer.Gather()
	if err != nil {
		return err
	}

	shown := 0
	for _, mf := range families {
		name := mf.GetName()
		if !strings.HasPrefix(name, metricsPrefix) {
			continue
		}
		if len(args) > 0 && !strings.Contains(name, args[0]) {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(a.out, mf); err != nil {
			return err
		}
		shown++
	}
	if shown == 0 {
		a.println("No API calls recorded yet.")
	}
	return nil
}
