package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestPrintfCarriesContextTags(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(logrus.StandardLogger().Out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	ctx := WithContext(context.Background(), RequestIDKey, "req-1")
	ctx = WithContext(ctx, LanguageKey, "json")
	Printf(FromContext(ctx), "parsed %d bytes", 12)

	out := buf.String()
	require.Contains(t, out, `msg="parsed 12 bytes"`)
	require.Contains(t, out, "RequestID=req-1")
	require.Contains(t, out, "Language=json")
	require.NotContains(t, out, "ConnID")
}

func TestPrintlnUntagged(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(logrus.StandardLogger().Out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	Println(Background, "serving on", ":9999")
	require.Contains(t, buf.String(), "serving on :9999")
}

func TestSetLevel(t *testing.T) {
	defer logger.SetLevel(logrus.InfoLevel)

	require.NoError(t, SetLevel("debug"))
	require.Equal(t, logrus.DebugLevel, Logger().GetLevel())

	err := SetLevel("loud")
	require.Error(t, err)
	require.Contains(t, err.Error(), `invalid log level "loud"`)
}
