package device

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smazurov/kbcontrol/internal/device/devicetest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_MissingFileIsUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acer-gkbbl-0")

	_, err := Open(EndpointDynamic, path, testLogger())
	if !IsUnavailable(err) {
		t.Fatalf("Open() error = %v, want DEVICE_UNAVAILABLE", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("Open() must not create the device file")
	}
}

func TestOpen_DoesNotTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev")
	if err := os.WriteFile(path, []byte("0123456789abcdef"), 0o644); err != nil {
		t.Fatal(err)
	}

	ch, err := Open(EndpointStatic, path, testLogger())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer ch.Close()

	data, _ := os.ReadFile(path)
	if string(data) != "0123456789abcdef" {
		t.Errorf("file truncated on open: %q", data)
	}

	if err := ch.Send([]byte{1, 2, 3, 4, 5, 6, 7, 8}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	data, _ = os.ReadFile(path)
	if len(data) != 16 || data[0] != 1 || data[7] != 8 {
		t.Errorf("unexpected file contents after send: %v", data)
	}
}

func TestSend_WriteErrorIsWriteFailure(t *testing.T) {
	rec := devicetest.NewRecorder()
	rec.FailWith(errors.New("EIO"))
	ch := NewChannel(EndpointDynamic, "/dev/null", rec, testLogger())

	err := ch.Send(make([]byte, 16))
	if !IsWriteFailure(err) {
		t.Fatalf("Send() error = %v, want WRITE_FAILURE", err)
	}
	var devErr *Error
	if !errors.As(err, &devErr) || devErr.Endpoint != EndpointDynamic {
		t.Errorf("error endpoint = %+v", devErr)
	}
}

func TestSend_ShortWriteIsWriteFailure(t *testing.T) {
	rec := devicetest.NewRecorder()
	rec.ShortWrites(true)
	ch := NewChannel(EndpointStatic, "/dev/null", rec, testLogger())

	err := ch.Send(make([]byte, 8))
	if !IsWriteFailure(err) {
		t.Fatalf("Send() error = %v, want WRITE_FAILURE", err)
	}
	if !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("Send() error should wrap io.ErrShortWrite, got %v", err)
	}
	if len(rec.Frames()) != 0 {
		t.Error("short write must not be retried")
	}
}

func TestOpenPair(t *testing.T) {
	dir := t.TempDir()
	dynPath := filepath.Join(dir, "acer-gkbbl-0")
	staticPath := filepath.Join(dir, "acer-gkbbl-static-0")

	if err := os.WriteFile(dynPath, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := OpenPair(dynPath, staticPath, testLogger())
	if !IsUnavailable(err) {
		t.Fatalf("OpenPair() error = %v, want DEVICE_UNAVAILABLE", err)
	}
	if !strings.Contains(err.Error(), staticPath) {
		t.Errorf("error should name the missing device: %v", err)
	}

	if err := os.WriteFile(staticPath, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	pair, err := OpenPair(dynPath, staticPath, testLogger())
	if err != nil {
		t.Fatalf("OpenPair() error = %v", err)
	}
	if pair.Dynamic.Name() != EndpointDynamic || pair.Static.Path() != staticPath {
		t.Errorf("unexpected pair: %s %s", pair.Dynamic.Name(), pair.Static.Path())
	}
	if err := pair.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if err := Probe(dynPath, staticPath, testLogger()); err != nil {
		t.Errorf("Probe() error = %v", err)
	}
}

func TestOpenPair_BothMissing(t *testing.T) {
	dir := t.TempDir()
	err := Probe(filepath.Join(dir, "a"), filepath.Join(dir, "b"), testLogger())
	if !IsUnavailable(err) {
		t.Fatalf("Probe() error = %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, filepath.Join(dir, "a")) || !strings.Contains(msg, filepath.Join(dir, "b")) {
		t.Errorf("error should name both devices: %v", msg)
	}
}

func TestDryRunPair(t *testing.T) {
	pair := DryRunPair(testLogger())
	if err := pair.Dynamic.Send(make([]byte, 16)); err != nil {
		t.Errorf("dry-run Send() error = %v", err)
	}
	if err := pair.Static.Send(make([]byte, 8)); err != nil {
		t.Errorf("dry-run Send() error = %v", err)
	}
	if err := pair.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
