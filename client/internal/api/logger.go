package api

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// restyLogger routes resty's internal messages into zerolog at debug level.
// Request failures are already logged once by the Requester.
type restyLogger struct{ l zerolog.Logger }

func (r restyLogger) Errorf(format string, v ...interface{}) { r.debugf(format, v...) }

func (r restyLogger) Warnf(format string, v ...interface{}) { r.debugf(format, v...) }

func (r restyLogger) Debugf(format string, v ...interface{}) { r.debugf(format, v...) }

func (r restyLogger) debugf(format string, v ...interface{}) {
	r.l.Debug().Str("component", "resty").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
