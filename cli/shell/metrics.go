package shell

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/VictoriaMetrics/metrics"
)

// WriteMetricsFile writes set in the Prometheus text format to path, along
// with build and process metrics, for node_exporter's textfile collector.
// The file is replaced atomically so that a scrape never sees a partial write.
func WriteMetricsFile(path string, set *metrics.Set, version string) error {
	var buf bytes.Buffer
	fmt.Fprint(&buf, joinQuote("addressbook_build_info{goversion=", runtime.Version(), ",version=", version, "} 1\n"))
	set.WritePrometheus(&buf)
	metrics.WriteProcessMetrics(&buf)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("shell: write metrics: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint: errcheck // already renamed on success

	_, err = tmp.Write(buf.Bytes())
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o644) //nolint: gosec // read by the exporter
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		return fmt.Errorf("shell: write metrics: %w", err)
	}
	return nil
}
