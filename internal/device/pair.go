package device

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Pair holds both endpoint channels. Both are open or neither is.
type Pair struct {
	Dynamic *Channel
	Static  *Channel
}

// OpenPair opens both device files. If either cannot be opened, any channel
// already opened is closed again and a single DEVICE_UNAVAILABLE error naming
// every missing endpoint is returned.
func OpenPair(dynamicPath, staticPath string, logger *slog.Logger) (*Pair, error) {
	dynamic, dynErr := Open(EndpointDynamic, dynamicPath, logger)
	static, staticErr := Open(EndpointStatic, staticPath, logger)

	if dynErr == nil && staticErr == nil {
		if logger != nil {
			logger.Info("Keyboard devices opened", "dynamic", dynamicPath, "static", staticPath)
		}
		return &Pair{Dynamic: dynamic, Static: static}, nil
	}

	var missing []string
	if dynErr != nil {
		missing = append(missing, dynamicPath)
	} else {
		_ = dynamic.Close()
	}
	if staticErr != nil {
		missing = append(missing, staticPath)
	} else {
		_ = static.Close()
	}

	return nil, newError(ErrCodeDeviceUnavailable, "",
		fmt.Sprintf("could not open %s; make sure the acer-gkbbl kernel module is loaded",
			strings.Join(missing, " and ")),
		errors.Join(dynErr, staticErr))
}

// DryRunPair returns channels that log frames instead of writing them.
func DryRunPair(logger *slog.Logger) *Pair {
	return &Pair{
		Dynamic: NewChannel(EndpointDynamic, "dry-run", newLogWriter(EndpointDynamic, logger), logger),
		Static:  NewChannel(EndpointStatic, "dry-run", newLogWriter(EndpointStatic, logger), logger),
	}
}

// Probe checks that both device files can be opened for writing and closes
// them again.
func Probe(dynamicPath, staticPath string, logger *slog.Logger) error {
	pair, err := OpenPair(dynamicPath, staticPath, logger)
	if err != nil {
		return err
	}
	return pair.Close()
}

// Close closes both channels.
func (p *Pair) Close() error {
	return errors.Join(p.Dynamic.Close(), p.Static.Close())
}
