package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
)

const (
	logFileName  = "cp_master.log"
	maxSizeBytes = 10 * 1024 * 1024 // 10 MB
	maxArchives  = 3
)

// Setup routes the std logger. Verbose logs go to stderr, file logging writes
// cp_master.log with size-based rotation (10MB, max 3 archives). With neither,
// logs are discarded.
func Setup(enableFileLogging, verbose bool) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(output(logFileName, maxSizeBytes, enableFileLogging, verbose))
}

func output(path string, limit int64, enableFileLogging, verbose bool) io.Writer {
	var writers []io.Writer
	if verbose {
		writers = append(writers, os.Stderr)
	}
	if enableFileLogging {
		w, err := openRotating(path, limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		} else {
			writers = append(writers, w)
		}
	}

	switch len(writers) {
	case 0:
		return io.Discard
	case 1:
		return writers[0]
	default:
		return io.MultiWriter(writers...)
	}
}

type rotatingWriter struct {
	path  string
	limit int64
	f     *os.File
}

func openRotating(path string, limit int64) (*rotatingWriter, error) {
	rotateIfNeeded(path, limit)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	return &rotatingWriter{path: path, limit: limit, f: f}, nil
}

// Write is called under the log.Logger mutex.
func (w *rotatingWriter) Write(p []byte) (int, error) {
	if st, err := w.f.Stat(); err == nil && st.Size()+int64(len(p)) > w.limit {
		_ = w.f.Close()
		rotate(w.path)
		nf, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return 0, err
		}
		w.f = nf
	}
	return w.f.Write(p)
}

func rotateIfNeeded(path string, limit int64) {
	if st, err := os.Stat(path); err == nil && st.Size() > limit {
		rotate(path)
	}
}

// rotate shifts path to path.1, path.1 to path.2 and so on. The oldest archive is discarded.
func rotate(path string) {
	_ = os.Remove(archiveName(path, maxArchives))
	for i := maxArchives - 1; i >= 1; i-- {
		_ = os.Rename(archiveName(path, i), archiveName(path, i+1))
	}
	_ = os.Rename(path, archiveName(path, 1))
}

func archiveName(path string, n int) string { return fmt.Sprintf("%s.%d", path, n) }
