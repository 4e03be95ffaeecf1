package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("debug", &buf)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("town", "iqaluit").Debug("town selected")
	assert.Contains(t, buf.String(), "town selected")
	assert.Contains(t, buf.String(), "town=iqaluit")
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New("chatty", &buf)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), `unknown log level \"chatty\"`)
}
