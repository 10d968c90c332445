package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/repomcp/repomcp/internal"
	"github.com/repomcp/repomcp/internal/repodata"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type brokenReader struct{}

func (b brokenReader) Read(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestRunBatch(t *testing.T) {
	resolver := repodata.NewResolver(repodata.DefaultConfig())

	t.Run("happy path: stdout only carries json lines", func(t *testing.T) {
		input := "# urls\nhttps://github.com/microsoft/playwright-mcp\ntest.com/o\nmrdoob.repomcp.com/three.js\n"
		var out, logs bytes.Buffer
		logger := logrus.New()
		logger.SetOutput(&logs)
		logger.SetLevel(logrus.DebugLevel)

		err := runBatch(internal.NewRepoBatch(resolver, ""), strings.NewReader(input), &out, logger)
		assert.Nil(t, err)

		lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
		assert.Equal(t, 3, len(lines))
		for _, line := range lines {
			var entry internal.BatchEntry
			assert.Nil(t, json.Unmarshal([]byte(line), &entry), line)
			assert.NotContains(t, line, "level=")
		}

		assert.Contains(t, logs.String(), "no repository found in test.com/o")
		assert.Contains(t, logs.String(), "2 urls resolved, 1 without repository")
	})

	t.Run("not happy path: nothing is written when the input fails", func(t *testing.T) {
		var out, logs bytes.Buffer
		logger := logrus.New()
		logger.SetOutput(&logs)

		err := runBatch(internal.NewRepoBatch(resolver, ""), brokenReader{}, &out, logger)
		assert.NotNil(t, err)
		assert.Equal(t, "", out.String())
	})
}

func TestUseStderrForLogs(t *testing.T) {
	previous := logrus.StandardLogger().Out
	defer logrus.SetOutput(previous)

	useStderrForLogs()
	assert.Equal(t, os.Stderr, logrus.StandardLogger().Out)
}
