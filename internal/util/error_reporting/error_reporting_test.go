package error_reporting

import (
	"errors"
	"sync"
	"testing"

	"importhub/internal/util/logger"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ReportError_CapturesExceptionWithTags(t *testing.T) {
	var mutex sync.Mutex
	var events []*sentry.Event

	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mutex.Lock()
			defer mutex.Unlock()

			events = append(events, event)
			return nil
		},
	})
	require.NoError(t, err)

	reporter := NewSentryErrorReporter(sentry.NewHub(client, sentry.NewScope()), logger.GetLogger())

	reporter.ReportError(errors.New("webhook failed"), map[string]string{"importerId": "42"})
	reporter.ReportError(nil, nil)

	mutex.Lock()
	defer mutex.Unlock()

	require.Len(t, events, 1)
	require.NotEmpty(t, events[0].Exception)
	assert.Equal(t, "webhook failed", events[0].Exception[len(events[0].Exception)-1].Value)
	assert.Equal(t, "42", events[0].Tags["importerId"])
}
